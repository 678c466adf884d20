// Package fs provides file-based storage for pipeline artifacts:
// scraped HTML, parsed statutes, reference listings, and markdown
// exports. All writes are atomic (temp file + rename).
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sheikhomar/paraglide"
)

// WriteFile writes data to path atomically, creating parent directories
// as needed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}

// ReadFile reads the file at path.
// Returns ENOTFOUND if the file does not exist.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, paraglide.Errorf(paraglide.ENOTFOUND, "no file at %q", path)
		}
		return nil, err
	}
	return data, nil
}

// Exists reports whether a file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteStatute writes a parsed statute as indented JSON.
func WriteStatute(path string, statute *paraglide.Statute) error {
	if err := statute.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(statute, "", "  ")
	if err != nil {
		return err
	}

	return WriteFile(path, append(data, '\n'))
}

// ReadStatute reads a parsed statute from a JSON file.
// Returns ENOTFOUND if the file does not exist.
func ReadStatute(path string) (*paraglide.Statute, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	var statute paraglide.Statute
	if err := json.Unmarshal(data, &statute); err != nil {
		return nil, fmt.Errorf("decoding statute from %q: %w", path, err)
	}

	return &statute, nil
}

// WriteRefs writes a paragraph reference listing as indented JSON.
func WriteRefs(path string, refs []paraglide.ParagraphRef) error {
	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return err
	}
	return WriteFile(path, append(data, '\n'))
}

// FormatMarkdown formats a markdown export with YAML frontmatter.
func FormatMarkdown(sourceURL, title, content string, fetchedAt time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(sourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(title)
	b.WriteString("\nscraped: ")
	b.WriteString(fetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(content)
	return b.String()
}
