package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kndndrj/rowset/core"
	"github.com/kndndrj/rowset/core/format"
	"github.com/kndndrj/rowset/output"
)

func newQueryCmd(opts *options) *cobra.Command {
	var (
		formatName string
		outPath    string
		must       bool
		setup      []string
	)

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a query and print every row",
		Long: "Run a single read query and print the materialized rows.\n" +
			"Every cell is printed as text: NULL, integers, reals, text, or BLOB for binary data.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, ok := format.ByName(formatName)
			if !ok {
				return fmt.Errorf("output format %q is not supported", formatName)
			}

			conn, err := opts.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			for _, stmt := range setup {
				if _, err := conn.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("setup statement %q: %w", stmt, err)
				}
			}

			query := strings.Join(args, " ")

			var rs *core.ResultSet
			if must {
				rs = conn.MustFetch(query)
			} else {
				rs, err = conn.Fetch(ctx, query)
				if err != nil {
					return describeFetchError(err)
				}
			}

			if outPath != "" {
				return output.NewFile(outPath, formatter, opts.log).Write(rs)
			}
			return output.NewWriter(cmd.OutOrStdout(), formatter).Write(rs)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&formatName, "format", "f", "table", "output format: table, csv or json")
	f.StringVarP(&outPath, "output", "o", "", "write to this file instead of stdout")
	f.BoolVar(&must, "must", false, "abort with a panic on any query failure")
	f.StringArrayVar(&setup, "exec", nil, "statement to execute before the query (repeatable)")

	return cmd
}

func describeFetchError(err error) error {
	switch {
	case errors.Is(err, core.ErrPrepare):
		return fmt.Errorf("query rejected by the engine: %w", err)
	case errors.Is(err, core.ErrValueDecode):
		return fmt.Errorf("query returned a value that cannot be shown as text: %w", err)
	default:
		return err
	}
}
