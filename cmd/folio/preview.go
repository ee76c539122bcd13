package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/preview"
)

var previewScript string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open the page in a preview window",
	Long: `Open the page in a preview window. Each run is one browsing session:
the loader intro plays once per run unless reduced motion is set in the
config, and only the theme persists in the state file. Mouse wheel
scrolls, T toggles the theme, M the mobile menu and S takes a snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		pc := cfg.Preview
		local, err := folio.OpenFileKV(pc.StateFile)
		if err != nil {
			return err
		}
		session := folio.NewBrowsingSession(local, folio.Preferences{ReducedMotion: pc.ReducedMotion})
		logger.Debug("session", zap.Stringer("id", session.ID))

		doc := folio.NewDocument(float64(pc.Width), float64(pc.Height))
		doc.SetLogger(logger.Named("doc"))
		doc.SetDebugMode(pc.Debug)
		folio.BuildSkeleton(doc, folio.DefaultBrand)

		script := pc.Script
		if previewScript != "" {
			script = previewScript
		}
		if script != "" {
			data, err := os.ReadFile(script)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := folio.LoadScript(data)
			if err != nil {
				return fmt.Errorf("script %s: %w", script, err)
			}
			doc.SetScript(runner)
		}

		page := folio.NewPage(doc, session, content.NewClient(pc.ContentURL, nil), folio.PageConfig{})
		page.OnPaint = func() { logger.Info("content painted", zap.Int("reveal_entries", len(page.Reveal.Entries()))) }
		page.Boot(ctx)
		// Cancel the fetch before waiting on it, so closing the window
		// never blocks on the client timeout.
		defer func() {
			stop()
			page.Wait()
		}()

		return preview.Run(doc, page, preview.RunConfig{
			Width:       pc.Width,
			Height:      pc.Height,
			ShowFPS:     pc.ShowFPS,
			SnapshotDir: pc.SnapshotDir,
			Logger:      logger.Named("preview"),
		})
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewScript, "script", "", "JSON script of scroll, wait, toggle-theme and snapshot steps")
}
