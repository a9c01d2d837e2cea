package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/redline/internal/compare"
	"github.com/roach88/redline/internal/store"
)

// RunSummary is one run in the runs command's list output.
type RunSummary struct {
	Token         string    `json:"token"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	SourceA       string    `json:"source_a"`
	SourceB       string    `json:"source_b"`
	RevisionCount int       `json:"revision_count"`
}

// RunDetail is the runs command's output for a single token.
type RunDetail struct {
	Run       RunSummary         `json:"run"`
	Counts    map[string]int     `json:"counts"`
	Revisions []compare.Revision `json:"revisions"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "runs [token]",
		Short: "Inspect the comparison audit log",
		Long: `Inspect the SQLite audit log written by compare --db.

Without a token, lists recorded runs in creation order. With a token,
shows that run's revision records and per-kind counts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true, // the formatter renders errors itself
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			}
			return runRuns(rootOpts, dbPath, token, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite audit log path (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(rootOpts *RootOptions, dbPath, token string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", dbPath))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open audit log", err)
	}
	defer st.Close()

	if token == "" {
		return listRuns(formatter, st, cmd)
	}
	return showRun(formatter, st, token, cmd)
}

func listRuns(formatter *OutputFormatter, st *store.Store, cmd *cobra.Command) error {
	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list runs", err)
	}

	summaries := make([]RunSummary, len(runs))
	for i, run := range runs {
		summaries[i] = runSummary(run)
	}

	if formatter.Format == "json" {
		return formatter.Success(summaries)
	}

	fmt.Fprintf(formatter.Writer, "%d run(s)\n", len(summaries))
	for _, s := range summaries {
		fmt.Fprintf(formatter.Writer, "  %s  %s  %s -> %s  %d revision(s)\n",
			s.Token, s.CreatedAt.Format(time.RFC3339), s.SourceA, s.SourceB, s.RevisionCount)
	}
	return nil
}

func showRun(formatter *OutputFormatter, st *store.Store, token string, cmd *cobra.Command) error {
	run, err := st.ReadRun(cmd.Context(), token)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "run not found", err)
		}
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read run", err)
	}

	revs, err := st.ListRevisions(cmd.Context(), token)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list revisions", err)
	}

	counts, err := st.CountByKind(cmd.Context(), token)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "count revisions", err)
	}

	detail := RunDetail{
		Run:       runSummary(run),
		Counts:    map[string]int{},
		Revisions: revs,
	}
	for kind, n := range counts {
		detail.Counts[string(kind)] = n
	}

	if formatter.Format == "json" {
		return formatter.Success(detail)
	}

	fmt.Fprintf(formatter.Writer, "run %s\n", run.Token)
	fmt.Fprintf(formatter.Writer, "  author:    %s\n", run.Author)
	fmt.Fprintf(formatter.Writer, "  created:   %s\n", run.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(formatter.Writer, "  compared:  %s -> %s\n", run.SourceA, run.SourceB)
	return outputResult(formatter, summarize(revs))
}

func runSummary(run store.Run) RunSummary {
	return RunSummary{
		Token:         run.Token,
		Author:        run.Author,
		CreatedAt:     run.CreatedAt,
		SourceA:       run.SourceA,
		SourceB:       run.SourceB,
		RevisionCount: run.RevisionCount,
	}
}
