package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oleg578/swiftchar"
)

type csvRow struct {
	Row    int      `json:"row"`
	Fields []string `json:"fields"`
}

func newCSVCmd(g *globals) *cobra.Command {
	var comma string
	var lineDelimiter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Parse a CSV file and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.cfg.Options()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("comma") {
				g.cfg.CSV.Comma = comma
			}
			if flags.Changed("line-delimiter") {
				g.cfg.CSV.LineDelimiter = lineDelimiter
			}
			csvOpts, err := g.cfg.CSVOptions()
			if err != nil {
				return err
			}

			emit := printRow(cmd.OutOrStdout(), asJSON)
			row := csvRow{}
			var emitErr error
			err = swiftchar.ReadFileCSV(args[0], opts, csvOpts,
				func(field string, r, _ int) bool {
					row.Row = r
					row.Fields = append(row.Fields, field)
					return true
				},
				func(r int) bool {
					emitErr = emit(row)
					row = csvRow{Row: r + 1}
					return emitErr == nil
				})
			if err != nil {
				return fmt.Errorf("parse csv: %w", err)
			}
			if emitErr == nil && len(row.Fields) > 0 {
				emitErr = emit(row)
			}
			return emitErr
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&comma, "comma", ",", "field delimiter, a single character")
	flags.StringVar(&lineDelimiter, "line-delimiter", `\r\n`, `record terminator, Go escapes allowed (e.g. '\n')`)
	flags.BoolVar(&asJSON, "json", false, "print one JSON object per record")
	return cmd
}

func printRow(w io.Writer, asJSON bool) func(csvRow) error {
	if asJSON {
		enc := json.NewEncoder(w)
		return func(row csvRow) error {
			if row.Fields == nil {
				row.Fields = []string{}
			}
			return enc.Encode(row)
		}
	}
	return func(row csvRow) error {
		for i, field := range row.Fields {
			if _, err := fmt.Fprintf(w, "%d:%d=%q\n", row.Row, i, field); err != nil {
				return err
			}
		}
		return nil
	}
}
