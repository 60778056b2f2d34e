package commands

import (
	nest "github.com/simonhull/firebird-suite/nest"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the nest CLI
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nest",
		Short: "Validate a directory tree against a JSON Schema",
		Long: `Nest turns a folder into a nested document and validates it against a
draft-7 JSON Schema.

Directories become objects keyed by entry name, .yaml files become their
parsed contents and every other file (.gitkeep included) becomes null.

Settings come from flags, environment variables (FOLDER, JSON_SCHEMA,
RAISE_ERROR, ...) and a .env file, in that order of precedence.`,
		Version:       nest.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}

// isVerbose reads the inherited --verbose flag, if the command has one
func isVerbose(cmd *cobra.Command) bool {
	flag := cmd.Flag("verbose")
	return flag != nil && flag.Value.String() == "true"
}
