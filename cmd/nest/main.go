package main

import (
	"os"

	"github.com/simonhull/firebird-suite/nest/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.ValidateCmd())
	rootCmd.AddCommand(commands.WatchCmd())
	rootCmd.AddCommand(commands.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
