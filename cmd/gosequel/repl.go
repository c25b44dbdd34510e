package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Build and run datasets interactively",
		Long: `Start an interactive session. Each command derives a new dataset from the
current one; 'undo' steps back. With database.url configured (or --db) the
session connects on start and 'run', 'count' and 'first' execute the query.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, rootOpts)
		},
	}
}

func runREPL(cmd *cobra.Command, opts *RootOptions) error {
	out := cmd.OutOrStdout()
	sess := NewSession(cmd.Context(), opts.dialect(), out, opts.Logger)
	if q := opts.Config.QuoteIdentifiers; q != nil {
		v := *q
		sess.quote = &v
	}
	defer func() { _ = sess.Close() }()

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          "gosequel> ",
		HistoryFile:     historyPath(),
		HistoryLimit:    500,
		AutoComplete:    &replCompleter{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          out,
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer func() { _ = rl.Close() }()

	if dsn := opts.Config.Database.URL; dsn != "" {
		if err := sess.connect(dsn); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  Warning: connect failed: %v\n", err)
		}
	}

	_, _ = fmt.Fprintf(out, "\ngosequel REPL (%s), type 'help' for commands, 'exit' to quit\n\n", sess.dialect)
	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) || err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		}
		if err := sess.Execute(line); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  Error: %v\n", err)
		}
	}
	_, _ = fmt.Fprintln(out)
	return nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gosequel_history")
}
