package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/formdeck/formdeck/pkg/binder"
)

// ExportFileName derives the download filename for a form's response export.
// The form title is used as-is apart from path separators, matching the
// client-side "<title>.json" convention.
func ExportFileName(title string) string {
	if title == "" {
		title = "response"
	}
	title = strings.NewReplacer("/", "-", string(os.PathSeparator), "-").Replace(title)
	return title + ".json"
}

// Export writes one response document as indented JSON into dir, named after
// the form title. Returns the written path.
func Export(dir, title string, doc binder.Document) (string, error) {
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("preset: export: encode: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(title))
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", fmt.Errorf("preset: export: %w", err)
	}
	return path, nil
}
