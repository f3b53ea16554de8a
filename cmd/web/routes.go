package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"booktracker/internal/router"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the page routes and how their pages are kept",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes(cmd.OutOrStdout())
	},
}

func printRoutes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tPAGE\tSTRATEGY")
	for _, r := range router.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.Route, r.Strategy)
	}
	return tw.Flush()
}
