package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newDocsCmd generates man pages or markdown for every command. It is
// hidden and meant for packaging.
func newDocsCmd() *cobra.Command {
	var dir, format string
	cmd := &cobra.Command{
		Use:    "gen-docs",
		Short:  "Write lovepack's man pages or markdown docs",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, ok := docGenerators[format]
			if !ok {
				return fmt.Errorf("unknown format %q (use man or markdown)", format)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			return gen(cmd.Root(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "docs", "output directory")
	cmd.Flags().StringVar(&format, "format", "man", "man or markdown")
	return cmd
}

var docGenerators = map[string]func(*cobra.Command, string) error{
	"man": func(root *cobra.Command, dir string) error {
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   "LOVEPACK",
			Section: "1",
			Source:  "lovepack " + version,
			Manual:  "LÖVE web packaging",
		}, dir)
	},
	"markdown": doc.GenMarkdownTree,
}
