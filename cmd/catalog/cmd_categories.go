package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"TechMart/internal/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the category set the service would be seeded with",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		store, err := loadStore(cmd.Context(), cfg, zap.NewNop())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, c := range store.Categories() {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
		return w.Flush()
	},
}

func init() {
	categoriesCmd.Flags().String("seed-dsn", "", "postgres DSN to seed from (overrides SEED_DATABASE_URL)")
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the SQL schema expected by --seed-dsn",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), catalog.SeedSchema)
	},
}
