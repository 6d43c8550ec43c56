package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/zenedit/internal/catalog"
	"github.com/zjrosen/zenedit/internal/completion"
	"github.com/zjrosen/zenedit/internal/presentation"
)

var catalogDB string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the stored completion catalog",
	Long: `Manage the SQLite catalog used for completion when no catalog file is
configured. The store lives at catalog.db_path (default:
~/.config/zenedit/catalog.db).`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a YAML or TOML catalog file into the store",
	Example: `  zenedit catalog import catalog.yaml
  zenedit catalog import icons.toml --db ./catalog.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		store, err := openCatalogStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		n, err := store.Import(cmd.Context(), c)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d candidates into %s\n", n, store.Path())
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored candidates",
	Example: `  zenedit catalog list
  zenedit catalog list --category symbols --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories := completion.Categories()
		if name, _ := cmd.Flags().GetString("category"); name != "" {
			cat, err := catalog.ParseCategory(name)
			if err != nil {
				return err
			}
			categories = []completion.Category{cat}
		}

		store, err := openCatalogStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		dtos := []presentation.CandidateDTO{}
		for _, cat := range categories {
			cands, err := store.List(cmd.Context(), cat)
			if err != nil {
				return err
			}
			dtos = append(dtos, presentation.FromCandidates(cat, cands)...)
		}

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return formatter.FormatJSON(dtos)
		}
		return formatter.FormatCandidates(dtos)
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:     "remove <category> <name>",
	Short:   "Remove one stored candidate",
	Example: `  zenedit catalog remove symbols '#admin'`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.ParseCategory(args[0])
		if err != nil {
			return err
		}
		store, err := openCatalogStore()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		name := catalog.NormalizeName(cat, args[1])
		removed, err := store.Delete(cmd.Context(), cat, name)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no %s candidate named %q", cat, name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s %s\n", cat, name)
		return nil
	},
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogDB, "db", "", "catalog database (default: catalog.db_path)")
	catalogListCmd.Flags().String("category", "", "only list one category (keys, symbols, icons, annotations)")
	catalogListCmd.Flags().Bool("json", false, "print JSON")

	catalogCmd.AddCommand(catalogImportCmd, catalogListCmd, catalogRemoveCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalogStore() (*catalog.Store, error) {
	path := catalogDB
	if path == "" {
		path = cfg.Catalog.DBPath
	}
	if path == "" {
		return nil, fmt.Errorf("no catalog database configured")
	}
	return catalog.OpenStore(path)
}
