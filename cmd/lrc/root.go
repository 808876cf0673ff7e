package main

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace      *string
	lexmachine *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "lrc",
	Short: "Experiment with an LR parser for arithmetic expressions",
	Long: `lrc builds LR tables for a built-in expression grammar and provides
- the token stream for an input,
- the CFSM and action table for the grammar,
- compilation of expressions to a tree, including evaluation.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Info", "trace level [Debug|Info|Error]")
	rootFlags.lexmachine = rootCmd.PersistentFlags().Bool("lexmachine", false, "tokenize with lexmachine instead of the default scanner")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// tracedPackages are the trace keys of the packages in use.
var tracedPackages = []string{"lrc.cli", "lrc.lr", "lrc.scanner", "lrc.driver", "lrc.tree"}

func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range tracedPackages {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *rootFlags.trace)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
