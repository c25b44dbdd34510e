package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bawdo/gosequel/visitors"
)

// RootOptions holds global flags and the configuration they resolve to.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	Dialect    string
	Quote      bool
	DBURL      string

	Config     *Config
	ConfigPath string
	Logger     *slog.Logger
}

// NewRootCommand creates the gosequel command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gosequel",
		Short: "Compose SQL datasets from the command line",
		Long: `gosequel - composable SQL datasets

Build SELECT, INSERT, UPDATE and DELETE statements from chained dataset
operations and render them for PostgreSQL, MySQL, SQLite or generic SQL.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return opts.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: auto-discover gosequel.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().StringVarP(&opts.Dialect, "dialect", "d", "", "SQL dialect (generic|postgres|mysql|sqlite)")
	cmd.PersistentFlags().BoolVar(&opts.Quote, "quote", false, "quote identifiers")
	cmd.PersistentFlags().StringVar(&opts.DBURL, "db", "", "database URL for commands that execute SQL")

	cmd.AddCommand(NewSQLCommand(opts))
	cmd.AddCommand(NewREPLCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// load resolves configuration; explicitly set flags win over everything.
func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, path, err := LoadConfig(o.ConfigFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Dialect = o.Dialect
	}
	if flags.Changed("quote") {
		q := o.Quote
		cfg.QuoteIdentifiers = &q
	}
	if flags.Changed("db") {
		cfg.Database.URL = o.DBURL
	}
	if _, err := visitors.ParseDialect(cfg.Dialect); err != nil {
		return err
	}

	level := cfg.LogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	o.Config = cfg
	o.ConfigPath = path
	o.Logger.Debug("configuration loaded", "path", path, "dialect", cfg.Dialect)
	return nil
}

// dialect is the configured dialect. load has already validated it.
func (o *RootOptions) dialect() visitors.Dialect {
	d, _ := visitors.ParseDialect(o.Config.Dialect)
	return d
}
