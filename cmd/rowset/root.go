package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kndndrj/rowset/adapters"
	"github.com/kndndrj/rowset/core"
	"github.com/kndndrj/rowset/logger"
	"github.com/kndndrj/rowset/sources"
)

var version = "dev"

// options are shared by every subcommand.
type options struct {
	typ      string
	url      string
	config   string
	conn     string
	logFile  string
	logLevel string

	log *logger.Logger
}

func execute(args []string) int {
	rootCmd := newRootCmd(os.Stdout)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "rowset",
		Short:         "Run queries against embedded databases",
		Long:          "Open a sqlite or duckdb database (file or in-memory) and print query results.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("config") {
				if v := os.Getenv("ROWSET_CONFIG"); v != "" {
					opts.config = v
				}
			}

			level, err := logger.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}

			if opts.logFile == "" {
				opts.log = logger.New(cmd.ErrOrStderr(), level)
				return nil
			}

			opts.log, err = logger.NewFile(opts.logFile, level)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.log != nil {
				return opts.log.Close()
			}
			return nil
		},
	}
	rootCmd.SetOut(stdout)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.typ, "type", "t", adapters.DefaultType, "database engine (see `rowset engines`)")
	pf.StringVarP(&opts.url, "url", "u", core.MemoryURL, "database file path, or :memory:")
	pf.StringVar(&opts.config, "config", "", "JSON file with named connections (env: ROWSET_CONFIG)")
	pf.StringVarP(&opts.conn, "conn", "c", "", "id or name of a connection from --config")
	pf.StringVar(&opts.logFile, "log-file", "", "append logs to this file instead of stderr")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")

	rootCmd.AddCommand(
		newQueryCmd(opts),
		newConnectionsCmd(opts),
		newEnginesCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// params resolves the connection to open: a named config entry wins over --type/--url.
func (o *options) params() (*core.ConnectionParams, error) {
	if o.conn == "" {
		return &core.ConnectionParams{
			Type: o.typ,
			URL:  o.url,
		}, nil
	}

	if o.config == "" {
		return nil, fmt.Errorf("--conn %q needs --config", o.conn)
	}

	p, err := sources.NewFile(o.config).Get(o.conn)
	if err != nil {
		return nil, err
	}

	// a broken template would otherwise be opened as a literal path
	if _, err := p.ExpandStrict(); err != nil {
		return nil, fmt.Errorf("connection %q: %w", o.conn, err)
	}
	return p, nil
}

func (o *options) open() (*core.Connection, error) {
	params, err := o.params()
	if err != nil {
		return nil, err
	}

	opts := []core.ConnectionOption{core.WithLogger(o.log)}
	if o.conn == "" {
		// only entries of the connection file are templates
		opts = append(opts, core.WithoutExpansion())
	}

	conn, err := adapters.NewConnection(params, opts...)
	if err != nil {
		return nil, err
	}

	desc, err := json.Marshal(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	o.log.Infof("opened connection %s", desc)
	return conn, nil
}

func newConnectionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "connections",
		Short: "List the connections defined in --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.config == "" {
				return errors.New("no connection file given: set --config or ROWSET_CONFIG")
			}

			params, err := sources.NewFile(opts.config).Load()
			if err != nil {
				return err
			}

			for _, p := range params {
				if p == nil {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), p.String())
			}
			return nil
		},
	}
}

func newEnginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the database engines compiled into this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, typ := range new(adapters.Mux).Types() {
				fmt.Fprintln(cmd.OutOrStdout(), typ)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "rowset version %s\n", version)
			return nil
		},
	}
}
