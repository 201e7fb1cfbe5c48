package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leofalp/abstractreview/core/session"
	"github.com/leofalp/abstractreview/internal/article"
	"github.com/leofalp/abstractreview/internal/config"
	"github.com/leofalp/abstractreview/internal/report"
	"github.com/leofalp/abstractreview/providers/agents/openai"
)

func reviewCMD() *cobra.Command {
	var (
		abstractFile string
		articlePath  string
		commands     string
		outDir       string
		tuningPath   string
		model        string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run a full review of an abstract and write the report artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine, the variables may already be set.
			_ = godotenv.Load()

			settings, err := config.FromEnv()
			if err != nil {
				return err
			}
			if model == "" {
				model = settings.Model
			}

			tuning, err := config.LoadTuning(tuningPath)
			if err != nil {
				return err
			}

			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			input, err := gatherInput(in, out, abstractFile, articlePath, commands)
			if err != nil {
				return err
			}

			var opts []openai.Option
			if settings.Endpoint != "" {
				opts = append(opts, openai.WithBaseURL(settings.Endpoint))
			}
			client, err := openai.New(settings.APIKey, model, opts...)
			if err != nil {
				return err
			}

			sess := session.New(client, model,
				session.WithConfig(tuning),
				session.WithLogger(slog.Default()))
			rec, err := sess.Run(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, report.RenderConsole(rec))

			paths, err := report.WriteAll(outDir, rec, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Report saved to %s (plus %s, %s)\n",
				paths.JSON, paths.Markdown, paths.HTML)
			return nil
		},
	}

	cmd.Flags().StringVar(&abstractFile, "abstract-file", "", "read the abstract from a file instead of prompting")
	cmd.Flags().StringVar(&articlePath, "article", "", "path to the full article (skips the prompt)")
	cmd.Flags().StringVar(&commands, "commands", "", "custom review commands (skips the prompt)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for the report artifacts")
	cmd.Flags().StringVarP(&tuningPath, "config", "c", "", "optional YAML tuning file")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model deployment override")

	return cmd
}

// gatherInput collects the abstract, review commands and article through
// flags where given and interactive prompts otherwise.
func gatherInput(in *bufio.Reader, out io.Writer, abstractFile, articlePath, commands string) (session.Input, error) {
	var input session.Input

	if abstractFile != "" {
		data, err := os.ReadFile(abstractFile)
		if err != nil {
			return input, fmt.Errorf("reading abstract: %w", err)
		}
		input.Abstract = strings.TrimSpace(string(data))
	} else {
		abstract, err := readAbstract(in, out)
		if err != nil {
			return input, err
		}
		input.Abstract = abstract
	}
	if input.Abstract == "" {
		return input, fmt.Errorf("abstract is empty")
	}

	if commands == "" {
		fmt.Fprint(out, "Any custom review commands or preferences? (press Enter for none): ")
		line, err := readLine(in)
		if err != nil {
			return input, err
		}
		commands = line
	}
	if commands == "" {
		commands = "none"
	}
	input.CustomCommands = commands

	if articlePath == "" {
		fmt.Fprint(out, "Path to the full article file (press Enter to skip): ")
		line, err := readLine(in)
		if err != nil {
			return input, err
		}
		articlePath = line
	}

	for articlePath != "" {
		doc, err := article.Load(articlePath)
		if err == nil {
			input.ArticlePath = articlePath
			input.ArticleContent = article.Truncate(doc.Content, article.DefaultWordBudget)
			fmt.Fprintf(out, "Loaded article (%s encoding).\n", doc.Encoding)
			break
		}

		fmt.Fprintf(out, "Could not load article: %v\n", err)
		fmt.Fprint(out, "[r]etry with another path, [c]ontinue without article, or [e]xit? ")
		choice, rerr := readLine(in)
		if rerr != nil {
			return input, rerr
		}
		switch strings.ToLower(choice) {
		case "r", "retry":
			fmt.Fprint(out, "Path to the full article file: ")
			articlePath, err = readLine(in)
			if err != nil {
				return input, err
			}
		case "c", "continue", "":
			articlePath = ""
		case "e", "exit":
			return input, fmt.Errorf("aborted: article could not be loaded")
		}
	}

	return input, nil
}

// readAbstract reads lines until the first empty one and joins them with
// single spaces.
func readAbstract(in *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Enter your abstract (finish with an empty line):")
	var lines []string
	for {
		line, err := readLine(in)
		if err != nil {
			if err == io.EOF && len(lines) > 0 {
				break
			}
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, " "), nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
