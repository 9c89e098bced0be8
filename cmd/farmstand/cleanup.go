package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivhu/farmstand"
	"github.com/ivhu/farmstand/config"
	"github.com/ivhu/farmstand/database"
	"github.com/ivhu/farmstand/filesystem"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove orphaned image files",
	Long: `Remove stored image files that no product and no gallery item
references.

Orphans accumulate when an image is uploaded but the product that
would reference it is never created, and when a record delete
outlives its file delete. Run this periodically to reclaim space.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
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

	storagePath := cfg.Storage.Path
	if _, err := os.Stat(storagePath); os.IsNotExist(err) {
		return fmt.Errorf("image directory does not exist: %s", storagePath)
	}

	root, err := os.OpenRoot(storagePath)
	if err != nil {
		return fmt.Errorf("open image root: %w", err)
	}
	defer func() { _ = root.Close() }()

	images := filesystem.NewImageStore(root)
	service := farmstand.NewStoreService(repos.Products, repos.Gallery, images)

	slog.Info("starting cleanup", "path", storagePath)

	removed, err := service.SweepOrphans(ctx)
	if err != nil {
		return fmt.Errorf("sweep orphans: %w", err)
	}

	slog.Info("cleanup complete", "files_removed", removed)
	return nil
}
