package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/lrc/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tablesFlags = struct {
	format *string
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tables",
		Short:   "Export the CFSM or the action table of the expression grammar",
		Example: `  lrc tables --format dot -o expr.dot`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	tablesFlags.format = cmd.Flags().StringP("format", "f", "html", "output format [html|dot]")
	tablesFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) (retErr error) {
	expr, err := newExpr(*rootFlags.lexmachine)
	if err != nil {
		return err
	}
	pterm.Info.Printf("%d states, %d table entries\n", expr.Gen.CFSM().StateCount(),
		expr.Gen.ActionTable().EntryCount())
	for _, c := range expr.Gen.Conflicts() {
		pterm.Warning.Println(c.String())
	}
	var w io.Writer = os.Stdout
	if *tablesFlags.output != "" {
		f, err := os.Create(*tablesFlags.output)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil && retErr == nil {
				retErr = err
			}
		}()
		w = f
	}
	switch *tablesFlags.format {
	case "html":
		return lr.ActionTableAsHTML(expr.Gen, w)
	case "dot":
		return expr.Gen.CFSM().ToGraphViz(w)
	}
	return fmt.Errorf("unknown output format %q", *tablesFlags.format)
}
