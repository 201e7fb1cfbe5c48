package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/abstractreview/internal/report"
)

func renderCMD() *cobra.Command {
	var (
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "render <report.json>",
		Short: "Re-render a saved review report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := report.ReadJSON(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "console":
				fmt.Fprintln(out, report.RenderConsole(rec))
			case "markdown":
				fmt.Fprintln(out, report.RenderMarkdown(rec, time.Now()))
			case "html":
				html, err := report.RenderHTML(report.RenderMarkdown(rec, time.Now()))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, html)
			case "all":
				paths, err := report.WriteAll(outDir, rec, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s, %s, %s\n", paths.JSON, paths.Markdown, paths.HTML)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "console, markdown, html or all")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for --format all artifacts")

	cmd.Long = "Render reads a previously saved review JSON and re-renders it " +
		"without contacting any agent service."

	return cmd
}
