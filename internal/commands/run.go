package commands

import (
	"io"

	"github.com/simonhull/firebird-suite/nest/internal/logger"
	"github.com/simonhull/firebird-suite/nest/internal/output"
	"github.com/simonhull/firebird-suite/nest/internal/settings"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// runContext is what every validating command needs after flag parsing
type runContext struct {
	settings *settings.Settings
	reporter *output.Reporter
	log      logger.Logger
	errOut   io.Writer
}

// setup loads settings for cmd. A positional argument overrides the folder.
// On failure the error has already been reported and is returned for the exit code.
func setup(cmd *cobra.Command, args []string, fs afero.Fs) (*runContext, error) {
	out := cmd.OutOrStdout()
	verbose := isVerbose(cmd)

	v, err := settings.NewViper(fs, cmd.Flags())
	if err != nil {
		return nil, reportFailure(output.NewReporter(out, output.ResolveFormat(settings.OutputAuto, out), verbose), err)
	}
	if len(args) == 1 {
		v.Set(settings.KeyFolder, args[0])
	}

	s, err := settings.Load(v, fs)
	if err != nil {
		return nil, reportFailure(output.NewReporter(out, output.ResolveFormat(v.GetString(settings.KeyOutput), out), verbose), err)
	}

	level := s.LogLevel
	if verbose {
		level = logger.LevelDebug
	}
	logFormat := logger.FormatJSON
	if output.IsTerminal(cmd.ErrOrStderr()) {
		logFormat = logger.FormatConsole
	}

	return &runContext{
		settings: s,
		reporter: output.NewReporter(out, output.ResolveFormat(s.Output, out), verbose),
		log:      logger.New(level, logFormat, cmd.ErrOrStderr()),
		errOut:   cmd.ErrOrStderr(),
	}, nil
}

// spin shows a progress spinner on stderr while fn runs, for text output only
func (rc *runContext) spin(message string, fn func() error) error {
	if rc.reporter.Format() != output.FormatText {
		return fn()
	}
	return output.Spin(rc.errOut, message, fn)
}

func reportFailure(r *output.Reporter, err error) error {
	if renderErr := r.Failure(err); renderErr != nil {
		return renderErr
	}
	return err
}
