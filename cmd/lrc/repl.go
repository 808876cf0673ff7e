package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Compile expressions interactively",
		Args:  cobra.NoArgs,
		RunE:  runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	expr, err := newExpr(*rootFlags.lexmachine)
	if err != nil {
		return err
	}
	repl, err := readline.New("lrc> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to lrc")
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		program, err := expr.Compiler.CompileScript(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if err = printProgram(program); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	println("Good bye!")
	return nil
}
