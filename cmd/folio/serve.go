package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the content directory as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		ctx, stop := signalContext()
		defer stop()

		store := content.NewStore(cfg.ContentDir, logger.Named("content"))
		if cfg.WatchContent {
			done, err := store.Watch(ctx)
			if err != nil {
				logger.Warn("content watch disabled", zap.Error(err))
			} else {
				defer func() { <-done }()
			}
		}

		srv := server.New(server.Config{
			Addr:           cfg.Addr,
			StaticDir:      cfg.StaticDir,
			SiteURL:        cfg.SiteURL,
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}, store, logger.Named("http"))
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}
