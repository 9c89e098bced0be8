package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter config.yaml in the current directory with the
default settings spelled out, ready to edit.`,
	RunE: runInitConfig,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// starterConfig mirrors the config file layout with every default spelled
// out.
type starterConfig struct {
	Server struct {
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`
	Database struct {
		Type   string `yaml:"type"`
		DSN    string `yaml:"dsn"`
		Tables struct {
			Products string `yaml:"products"`
			Gallery  string `yaml:"gallery"`
		} `yaml:"tables"`
	} `yaml:"database"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Session struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"`
	} `yaml:"session"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	const configPath = "config.yaml"

	if _, err := os.Stat(configPath); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", configPath),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	var cfg starterConfig
	cfg.Server.Port = 3000
	cfg.Server.Env = "development"
	cfg.Database.Type = "sqlite"
	cfg.Database.DSN = "data/farmstand.db"
	cfg.Database.Tables.Products = "products"
	cfg.Database.Tables.Gallery = "gallery"
	cfg.Storage.Path = "./images"
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "admin"
	cfg.Session.Secret = "dev-secret"
	cfg.Session.TTL = 86400
	cfg.Log.Level = "info"

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		return errors.New("cancelled")
	}
	if errors.Is(err, promptui.ErrAbort) {
		return errors.New("aborted")
	}
	return err
}
