package cmd

import (
	"github.com/spf13/cobra"

	"github.com/brandstudio/promptdesk/internal/drive"
	"github.com/brandstudio/promptdesk/internal/render"
)

func newDriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Work with hosted-image links",
	}

	var output string
	resolve := &cobra.Command{
		Use:   "resolve URL...",
		Short: "Canonicalize one or more hosted-image links",
		Long: `Extract the file id from each link and print the canonical display, edit and
thumbnail URLs. Links without a recognizable id are passed through unchanged.`,
		Example: `  promptdesk drive resolve "https://drive.google.com/open?id=abc123XYZ_-"
  promptdesk drive resolve https://drive.google.com/file/d/abc123XYZ_-/view --output yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return render.Write(cmd.OutOrStdout(), output, drive.CanonicalizeURL(args[0]))
			}
			refs := make([]drive.Refs, 0, len(args))
			for _, arg := range args {
				refs = append(refs, drive.CanonicalizeURL(arg))
			}
			return render.Write(cmd.OutOrStdout(), output, refs)
		},
	}
	resolve.Flags().StringVarP(&output, "output", "o", render.JSON, "Output format (json or yaml)")

	cmd.AddCommand(resolve)
	return cmd
}
