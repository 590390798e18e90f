package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brandstudio/promptdesk/internal/catalog"
	"github.com/brandstudio/promptdesk/internal/config"
	"github.com/brandstudio/promptdesk/internal/dataset"
	"github.com/brandstudio/promptdesk/internal/render"
	"github.com/brandstudio/promptdesk/internal/storage"
)

func newCatalogCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the reference catalog for a brand",
		Long: `Load reference rows for a brand from the record store (or a local export) and
show the grouped options or resolve a composite name to its record id.

Set CATALOG_SOURCE or pass --source to read a .jsonl, .json or .parquet export
instead of the record store.`,
	}

	cmd.PersistentFlags().StringVar(&source, "source", "", "Local export to read instead of the record store")

	loadSource := func() (catalog.Source, error) {
		cfg := config.Load()
		if source != "" {
			cfg.CatalogSource = source
		}
		return newCatalogSource(cfg)
	}

	cmd.AddCommand(newCatalogListCmd(loadSource))
	cmd.AddCommand(newCatalogLookupCmd(loadSource))
	cmd.AddCommand(newCatalogExportCmd(loadSource))

	return cmd
}

// loadCatalog fetches and builds the catalog snapshot for one brand.
func loadCatalog(cmd *cobra.Command, loadSource func() (catalog.Source, error), brand string) (*storage.Snapshot, error) {
	src, err := loadSource()
	if err != nil {
		return nil, err
	}
	return storage.New(src).Load(cmd.Context(), brand)
}

func newCatalogListCmd(loadSource func() (catalog.Source, error)) *cobra.Command {
	var brand string
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print grouped reference options for a brand",
		Example: `  promptdesk catalog list --brand Acme
  promptdesk catalog list --brand Acme --source refs.parquet --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadCatalog(cmd, loadSource, brand)
			if err != nil {
				return err
			}
			groups := snap.Catalog.Groups()
			if groups == nil {
				groups = []catalog.Group{}
			}
			return render.Write(cmd.OutOrStdout(), output, groups)
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "Brand name (required)")
	cmd.Flags().StringVarP(&output, "output", "o", render.YAML, "Output format (json or yaml)")
	_ = cmd.MarkFlagRequired("brand")

	return cmd
}

func newCatalogLookupCmd(loadSource func() (catalog.Source, error)) *cobra.Command {
	var brand string
	var name string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve a composite reference name to its record id",
		Example: `  promptdesk catalog lookup --brand Acme --name "Neon Dragon — A fierce dragon"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadCatalog(cmd, loadSource, brand)
			if err != nil {
				return err
			}
			id := snap.Catalog.RecordID(name, brand)
			if id == "" {
				return fmt.Errorf("no reference named %q for brand %q", name, brand)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "Brand name (required)")
	cmd.Flags().StringVar(&name, "name", "", "Composite reference name (required)")
	_ = cmd.MarkFlagRequired("brand")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCatalogExportCmd(loadSource func() (catalog.Source, error)) *cobra.Command {
	var brand string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a brand's reference rows to a .parquet or .jsonl export",
		Example: `  promptdesk catalog export --brand Acme --out refs.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource()
			if err != nil {
				return err
			}
			refs, err := src.References(cmd.Context(), brand)
			if err != nil {
				return fmt.Errorf("failed to fetch references: %w", err)
			}
			if err := dataset.Export(out, refs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d references to %s\n", len(refs), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "Brand name (empty for all brands)")
	cmd.Flags().StringVar(&out, "out", "references.parquet", "Output file (.parquet or .jsonl)")

	return cmd
}
