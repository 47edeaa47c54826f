package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bookmarks/internal/sources/seed"
)

func newSeedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Work with seed files",
	}

	seedCmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a seed file without starting the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.NewLoader(args[0]).Load()
			if err != nil {
				return err
			}
			if err := f.Check(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bookmarks OK\n", args[0], len(f.Bookmarks))
			return nil
		},
	})

	return seedCmd
}
