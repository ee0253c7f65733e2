package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodeTest-git/testovoe-otsivy/internal/placeid"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>...",
	Short: "Print the organization identifier of each listing URL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		unresolved := 0
		for _, u := range args {
			id, ok := placeid.Extract(u)
			if !ok {
				unresolved++
				fmt.Fprintf(out, "%s\t-\n", u)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", u, id)
		}
		if unresolved > 0 {
			return fmt.Errorf("%d of %d URLs could not be resolved", unresolved, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
