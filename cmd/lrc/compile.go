package main

import (
	"strings"

	"github.com/npillmayer/lrc"
	"github.com/npillmayer/lrc/lr/driver"
	"github.com/npillmayer/lrc/tree"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	module *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <expression>",
		Short:   "Compile an expression, print its tree and its value",
		Example: `  lrc compile "1 + 2 * -3"`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.module = cmd.Flags().Bool("module", false, "compile with source type 'module'")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	expr, err := newExpr(*rootFlags.lexmachine)
	if err != nil {
		return err
	}
	st := lrc.Script
	if *compileFlags.module {
		st = lrc.Module
	}
	program, err := expr.Compiler.Compile(strings.Join(args, " "), driver.WithSourceType(st))
	if err != nil {
		return err
	}
	return printProgram(program)
}

// printProgram renders the expression tree of a program and prints its value.
func printProgram(program *lrc.Program) error {
	if len(program.Body) != 2 {
		pterm.Info.Println(program.String())
		return nil
	}
	root := pterm.NewTreeFromLeveledList(leveledList(program.Body[0]))
	if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("%v\n", program.Body[1])
	return nil
}

func leveledList(x interface{}) pterm.LeveledList {
	var ll pterm.LeveledList
	tree.Walk(x, func(node interface{}, depth int) bool {
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: tree.Label(node)})
		return true
	})
	tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
	return ll
}
