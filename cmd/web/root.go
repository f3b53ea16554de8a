package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "booktracker",
	Short: "Server-rendered BookTracker web client",
	Long: `BookTracker renders the book catalog, search, author and book pages and
the personal profile of each browser client, backed by the BookTracker API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "booktracker.yml", "config file path")
	rootCmd.AddCommand(serveCmd, routesCmd)
}
