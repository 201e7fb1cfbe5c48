// Package article loads the optional full-article text used to
// cross-check an abstract. Files are read through an encoding fallback
// chain (utf-8, then the common legacy single-byte encodings, then a
// lossy last resort), HTML files are converted to markdown, and content
// is truncated to a word budget before it is ever placed in a prompt.
package article

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/text/encoding/charmap"
)

// DefaultWordBudget caps article content included in prompts.
const DefaultWordBudget = 2000

// ErrNotFound reports that the article path does not exist.
var ErrNotFound = errors.New("article: file not found")

// Document is a loaded article.
type Document struct {
	// Path is the expanded path the content was read from.
	Path string
	// Content is the decoded (and for HTML sources, converted) text.
	Content string
	// Encoding names the decoding step that succeeded: "utf-8",
	// "latin-1", "cp1252", or "binary" for the lossy last resort.
	Encoding string
}

// Load reads the article at path. A leading "~" is expanded to the
// user's home directory. The raw bytes go through the encoding fallback
// chain, and files with an .html or .htm extension are converted to
// markdown so prompts receive readable text rather than markup.
func Load(path string) (Document, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return Document{}, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, fmt.Errorf("%w: %s", ErrNotFound, expanded)
		}
		return Document{}, fmt.Errorf("article: reading %s: %w", expanded, err)
	}

	content, enc := decode(data)
	doc := Document{Path: expanded, Content: content, Encoding: enc}

	switch strings.ToLower(filepath.Ext(expanded)) {
	case ".html", ".htm":
		markdown, err := htmltomarkdown.ConvertString(doc.Content)
		if err != nil {
			return Document{}, fmt.Errorf("article: converting HTML %s: %w", expanded, err)
		}
		doc.Content = markdown
	}

	return doc, nil
}

// decode tries the fallback chain in order and reports which step
// produced the result. The chain never fails: the final step replaces
// undecodable bytes instead of erroring.
func decode(data []byte) (string, string) {
	if utf8.Valid(data) {
		return string(data), "utf-8"
	}

	legacy := []struct {
		name string
		cm   *charmap.Charmap
	}{
		{"latin-1", charmap.ISO8859_1},
		{"cp1252", charmap.Windows1252},
	}
	for _, enc := range legacy {
		if decoded, err := enc.cm.NewDecoder().Bytes(data); err == nil {
			return string(decoded), enc.name
		}
	}

	return strings.ToValidUTF8(string(data), ""), "binary"
}

// Truncate limits content to maxWords words, appending a marker that
// records both the cap and the original length when truncation was
// applied. Content within budget is returned untouched.
func Truncate(content string, maxWords int) string {
	words := strings.Fields(content)
	if len(words) <= maxWords {
		return content
	}
	return fmt.Sprintf("%s\n\n[Content truncated to %d words. Full article has %d words.]",
		strings.Join(words[:maxWords], " "), maxWords, len(words))
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("article: resolving home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
