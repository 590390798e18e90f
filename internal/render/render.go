package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	JSON = "json"
	YAML = "yaml"
)

// Write encodes v to w in the requested format.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case "", JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return nil
	case YAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: json, yaml)", format)
	}
}
