package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandstudio/promptdesk/internal/drive"
	"github.com/brandstudio/promptdesk/internal/fields"
	"github.com/brandstudio/promptdesk/internal/payload"
	"github.com/brandstudio/promptdesk/internal/render"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a workflow reply read from a file or stdin",
		Long: `Normalize a raw workflow reply into its canonical shape.

The input may be a bare record, an array of records, or records wrapped under
"data" or "result". Malformed input yields empty fields instead of an error.`,
	}

	cmd.AddCommand(newNormalizeSubCmd("prompt", "Normalize a prompt reply into a canonical prompt record",
		func(v any) any { return fields.BuildPromptRecord(v) }))
	cmd.AddCommand(newNormalizeSubCmd("image", "Normalize an image reply into canonical hosted-image links",
		func(v any) any { return drive.Canonicalize(v) }))

	return cmd
}

func newNormalizeSubCmd(use, short string, normalize func(any) any) *cobra.Command {
	var file string
	var output string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: fmt.Sprintf(`  # Normalize a saved reply
  promptdesk normalize %[1]s --file reply.json

  # Pipe a reply and print YAML
  curl -s $WEBHOOK | promptdesk normalize %[1]s --output yaml`, use),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), output, normalize(payload.Decode(data)))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Input file (- for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", render.JSON, "Output format (json or yaml)")

	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
