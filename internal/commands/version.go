package commands

import (
	"fmt"

	nest "github.com/simonhull/firebird-suite/nest"
	"github.com/spf13/cobra"
)

// VersionCmd prints the version
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nest version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nest version %s\n", nest.Version)
		},
	}
}
