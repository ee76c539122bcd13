package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/folio/content"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch every page section from the content server and report failures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		b, err := content.NewClient(cfg.Preview.ContentURL, nil).Fetch(ctx)
		out := cmd.OutOrStdout()
		if b.Profile != nil {
			fmt.Fprintf(out, "profile     %s\n", b.Profile.FullName())
		}
		fmt.Fprintf(out, "metrics     %d\n", len(b.Metrics))
		fmt.Fprintf(out, "services    %d\n", len(b.Services))
		fmt.Fprintf(out, "projects    %d\n", len(b.Projects))
		fmt.Fprintf(out, "experience  %d\n", len(b.Experience))
		if err == nil {
			return nil
		}

		failed := 0
		for _, e := range unjoin(err) {
			var se *content.SectionError
			if errors.As(e, &se) {
				logger.Warn("section failed", zap.String("section", se.Section), zap.Error(se.Err))
				failed++
			}
		}
		return &exitError{code: 2, err: fmt.Errorf("%d of %d sections failed", failed, len(content.PageSections))}
	},
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
