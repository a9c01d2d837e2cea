package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/redline/internal/compare"
	"github.com/roach88/redline/internal/doc"
	"github.com/roach88/redline/internal/store"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	Author          string
	Date            string // RFC 3339; empty means now
	DetectFormat    bool
	CaseInsensitive bool
	KeepDeletions   bool
	OutPath         string
	DBPath          string
}

// CompareResult is the compare command's output payload.
type CompareResult struct {
	Revisions     []compare.Revision `json:"revisions"`
	Inserted      int                `json:"inserted"`
	Deleted       int                `json:"deleted"`
	FormatChanged int                `json:"format_changed"`
	RunToken      string             `json:"run_token,omitempty"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{}

	cmd := &cobra.Command{
		Use:   "compare <old> <new>",
		Short: "Compare two document versions",
		Long: `Compare two document versions and report the revisions that turn the
old version into the new one.

Inputs are YAML document files or .docx containers. With --out, the
merged document (new content with revision markup woven in) is written
as YAML. With --db, the run and its revision records are appended to a
SQLite audit log.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true, // the formatter renders errors itself
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Author, "author", "redline", "author stamped on generated revisions")
	cmd.Flags().StringVar(&opts.Date, "date", "", "revision date, RFC 3339 (default: now)")
	cmd.Flags().BoolVar(&opts.DetectFormat, "detect-format", true, "detect format-only changes")
	cmd.Flags().BoolVar(&opts.CaseInsensitive, "case-insensitive", false, "match content case-insensitively")
	cmd.Flags().BoolVar(&opts.KeepDeletions, "keep-deletions", true, "keep deleted content in the output inside deletion wrappers")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "write the merged document to this path as YAML")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record the run in this SQLite audit log")

	return cmd
}

func runCompare(rootOpts *RootOptions, opts *CompareOptions, oldPath, newPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   rootOpts.Verbose,
	}

	settings, err := compareSettings(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeBadFlag, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid flag", err)
	}

	a, err := LoadDocument(oldPath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return err
	}
	b, err := LoadDocument(newPath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return err
	}

	formatter.VerboseLog("Comparing %s (%d blocks) against %s (%d blocks)", oldPath, len(a.Body), newPath, len(b.Body))

	merged, err := compare.Compare(a, b, settings)
	if err != nil {
		_ = formatter.Error(errCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "comparison failed", err)
	}

	revs, err := compare.Revisions(merged, settings)
	if err != nil {
		_ = formatter.Error(errCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "revision extraction failed", err)
	}

	if opts.OutPath != "" {
		data, err := doc.ToYAML(merged)
		if err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "serialize merged document", err)
		}
		if err := os.WriteFile(opts.OutPath, data, 0o644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "write merged document", err)
		}
		formatter.VerboseLog("Wrote merged document to %s", opts.OutPath)
	}

	result := summarize(revs)

	if opts.DBPath != "" {
		token, err := recordRun(cmd, opts, settings, oldPath, newPath, revs)
		if err != nil {
			_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "record run", err)
		}
		result.RunToken = token
		formatter.VerboseLog("Recorded run %s", token)
	}

	return outputResult(formatter, result)
}

func compareSettings(opts *CompareOptions) (compare.Settings, error) {
	s := compare.Settings{
		Author:              opts.Author,
		DetectFormatChanges: opts.DetectFormat,
		CaseInsensitive:     opts.CaseInsensitive,
		RetainDeletions:     opts.KeepDeletions,
	}
	if opts.Date != "" {
		date, err := time.Parse(time.RFC3339, opts.Date)
		if err != nil {
			return compare.Settings{}, fmt.Errorf("invalid --date %q: %w", opts.Date, err)
		}
		s.Date = date
	}
	return s, nil
}

func summarize(revs []compare.Revision) CompareResult {
	result := CompareResult{Revisions: revs}
	for _, rev := range revs {
		switch rev.Kind {
		case compare.RevisionInserted:
			result.Inserted++
		case compare.RevisionDeleted:
			result.Deleted++
		case compare.RevisionFormatChanged:
			result.FormatChanged++
		}
	}
	return result
}

func recordRun(cmd *cobra.Command, opts *CompareOptions, settings compare.Settings, oldPath, newPath string, revs []compare.Revision) (string, error) {
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	token := store.NewRunToken()
	run := store.Run{
		Token:         token,
		Author:        settings.Author,
		CreatedAt:     time.Now().UTC(),
		SourceA:       oldPath,
		SourceB:       newPath,
		RevisionCount: len(revs),
	}
	if err := st.WriteRun(cmd.Context(), run, revs); err != nil {
		return "", err
	}
	return token, nil
}

// outputResult renders a revision summary in the configured format.
// Shared with the revisions command.
func outputResult(formatter *OutputFormatter, result CompareResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%d revision(s): %d inserted, %d deleted, %d format-changed\n",
		len(result.Revisions), result.Inserted, result.Deleted, result.FormatChanged)
	for _, rev := range result.Revisions {
		line := fmt.Sprintf("  [%d] %-14s %s", rev.ID, rev.Kind, rev.Path)
		if rev.Text != "" {
			line += fmt.Sprintf(" %q", rev.Text)
		}
		if len(rev.ChangedProperties) > 0 {
			line += fmt.Sprintf(" (%v)", rev.ChangedProperties)
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	if result.RunToken != "" {
		fmt.Fprintf(formatter.Writer, "run token: %s\n", result.RunToken)
	}
	return nil
}
