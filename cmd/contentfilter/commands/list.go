package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contentfilter/internal/version"
	"github.com/jmylchreest/contentfilter/pkg/filter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range filter.Available() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return err
			}
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().Full())
		return err
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}
