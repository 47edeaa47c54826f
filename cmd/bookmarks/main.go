package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bookmarks: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "bookmarks",
		Short:         "A small bookmark API",
		Long:          "bookmarks serves an in-memory bookmark collection over HTTP, guarded by a static bearer token.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configFile)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./bookmarks.yaml if present)")

	rootCmd.AddCommand(newServeCmd(&configFile))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSeedCmd())
	return rootCmd
}
