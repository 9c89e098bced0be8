package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivhu/farmstand/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "farmstand",
	Short:   "Storefront and gallery server for a small farm shop",
	Long: `Farmstand serves a product catalog and an image gallery over a
REST API, with a session-authenticated admin surface for managing
products, gallery items, and uploaded images.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var configFiles []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			configFiles = append(configFiles, configFile)
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres (default: sqlite, env: FARMSTAND_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: data/farmstand.db, env: FARMSTAND_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("images", "", "image directory path (default: ./images, env: FARMSTAND_STORAGE_PATH)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
