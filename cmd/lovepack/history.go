package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bamsammich/lovepack/internal/config"
	"github.com/bamsammich/lovepack/internal/history"
	"github.com/bamsammich/lovepack/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent builds recorded with --history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("-n must be positive, got %d", limit)
			}
			path := filepath.Join(config.StateDir(), history.FileName)
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), "no builds recorded")
				return nil
			}

			db, err := history.Open(path)
			if err != nil {
				return err
			}
			defer db.Close()

			builds, err := db.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(builds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no builds recorded")
				return nil
			}
			for _, b := range builds {
				fmt.Fprintln(cmd.OutOrStdout(), formatBuild(b))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of builds to show")
	return cmd
}

// formatBuild renders one history row on a single line.
func formatBuild(b history.Build) string {
	digest := b.Digest
	if len(digest) > 12 {
		digest = digest[:12]
	}
	return fmt.Sprintf("%s  %s  %-9s  %6s files  %10s  %s  %s -> %s",
		b.CreatedAt.Local().Format(time.DateTime),
		b.PackageUUID,
		b.Mode,
		ui.FormatCount(int64(b.Files)),
		ui.FormatBytes(int64(b.TotalSize)),
		digest,
		b.Input,
		b.Output,
	)
}
