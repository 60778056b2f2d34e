package commands

import (
	"fmt"
	"time"

	"github.com/simonhull/firebird-suite/nest/internal/schema"
	"github.com/simonhull/firebird-suite/nest/internal/settings"
	"github.com/simonhull/firebird-suite/nest/internal/structure"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ValidateCmd creates the validate command
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [folder]",
		Short: "Validate a folder once",
		Long: `Materialize the folder and validate it against the schema.

Violations are reported in a stable order (by location). With --raise-error
(the default) the command exits with status 1 when the structure is invalid.

Examples:
  nest validate ./deploy --json-schema schema.json
  nest validate -f ./deploy -s schema.yaml -o text
  JSON_SCHEMA=schema.json nest validate ./deploy --raise-error=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, afero.NewOsFs())
		},
	}

	settings.RegisterFlags(cmd.Flags())

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, fs afero.Fs) error {
	rc, err := setup(cmd, args, fs)
	if err != nil {
		return err
	}
	s := rc.settings
	rc.reporter.Verbose("Folder: " + s.Folder)
	rc.reporter.Verbose("Schema: " + s.JSONSchema)

	start := time.Now()
	st, err := structure.Load(fs, s.Folder, s.JSONSchema, s.TreeOptions(), rc.log)
	if err != nil {
		return reportFailure(rc.reporter, err)
	}

	var result *schema.Result
	err = rc.spin("Validating "+s.Folder, func() error {
		var err error
		result, err = st.Validate(cmd.Context())
		return err
	})
	if err != nil {
		return reportFailure(rc.reporter, err)
	}

	rc.reporter.Verbose(fmt.Sprintf("Validated in %s", time.Since(start).Round(time.Millisecond)))
	if err := rc.reporter.Result(result); err != nil {
		return err
	}

	if s.RaiseError {
		return result.Err()
	}
	return nil
}
