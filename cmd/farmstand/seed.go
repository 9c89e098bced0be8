package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ivhu/farmstand"
	"github.com/ivhu/farmstand/config"
	"github.com/ivhu/farmstand/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the starter catalog",
	Long: `Insert the starter product catalog into the database.

Products already present (by id) are left alone, so seeding an
existing database only fills in what is missing.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	repos, closeDB, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeDB()

	existing, err := repos.Products.List(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	present := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		present[p.ID] = struct{}{}
	}

	added := 0
	for _, p := range farmstand.DefaultCatalog {
		if _, ok := present[p.ID]; ok {
			continue
		}
		if err := repos.Products.Add(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		added++
	}

	slog.Info("seed complete", "products_added", added, "products_skipped", len(farmstand.DefaultCatalog)-added)
	return nil
}
