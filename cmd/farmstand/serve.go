package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivhu/farmstand"
	"github.com/ivhu/farmstand/config"
	"github.com/ivhu/farmstand/database"
	"github.com/ivhu/farmstand/filesystem"
	farmhttp "github.com/ivhu/farmstand/http"
	"github.com/ivhu/farmstand/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the Farmstand HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 3000, "HTTP server port")
	serveCmd.Flags().String("env", "development", "server environment (development, production)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	repos, closeDB, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeDB()

	slog.Info("connected to database", "type", cfg.Database.Type)

	images, closeImages, err := openImageStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer closeImages()

	service := farmstand.NewStoreService(repos.Products, repos.Gallery, images)

	sessions := session.NewMemoryStore(cfg.SessionTTL())
	codec := session.NewCodec(cfg.Session.Secret)
	credentials := farmstand.NewStaticCredentials(cfg.Admin.Username, cfg.Admin.Password)

	handlerConfig := farmhttp.HandlerConfig{
		SecureCookies: cfg.IsProduction(),
		CORS:          cfg.CORS,
	}

	handler := farmhttp.NewHandler(&handlerConfig, service, credentials, sessions, codec, images.FS())

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "env", cfg.Server.Env)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func openImageStore(storagePath string) (*filesystem.Store, func(), error) {
	if err := os.MkdirAll(storagePath, 0o750); err != nil {
		return nil, nil, fmt.Errorf("create image directory: %w", err)
	}

	root, err := os.OpenRoot(storagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open image root: %w", err)
	}

	cleanup := func() { _ = root.Close() }
	return filesystem.NewImageStore(root), cleanup, nil
}
