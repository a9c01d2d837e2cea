package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/redline/internal/compare"
)

// NewRevisionsCommand creates the revisions command.
func NewRevisionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revisions <document>",
		Short: "List the revision records of an annotated document",
		Long: `List the revision records carried by a revision-annotated document.

This is a pure projection of existing markup - no comparison is re-run,
so it works on compare output and on externally authored documents
alike. A wrapper missing mandatory metadata (author, date, or id) fails
the command.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true, // the formatter renders errors itself
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRevisions(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRevisions(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	d, err := LoadDocument(path)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return err
	}

	revs, err := compare.Revisions(d, compare.Settings{})
	if err != nil {
		_ = formatter.Error(errCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "revision extraction failed", err)
	}

	return outputResult(formatter, summarize(revs))
}
