package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brandstudio/promptdesk/internal/drive"
	"github.com/brandstudio/promptdesk/internal/fields"
)

func TestWrite(t *testing.T) {
	rec := fields.PromptRecord{Subject: "dragon", Background: "city & sky"}

	tests := []struct {
		name     string
		format   string
		contains []string
	}{
		{"json default", "", []string{`"subject": "dragon"`, `"mood": ""`, `"background": "city & sky"`}},
		{"yaml", YAML, []string{"subject: dragon", `mood: ""`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.format, rec); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestWriteNullRefs(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, drive.Refs{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"fileId": null`) {
		t.Errorf("Expected null fileId, got %s", buf.String())
	}
}

func TestWriteUnsupported(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("Expected an error for unsupported format")
	}
}
