package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "tokens <expression>",
		Short:   "Print the token stream for an input",
		Example: `  lrc tokens "1 + 2 * -3"`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runTokens,
	}
	rootCmd.AddCommand(cmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	expr, err := newExpr(*rootFlags.lexmachine)
	if err != nil {
		return err
	}
	input := strings.Join(args, " ")
	data := [][]string{{"Type", "Lexeme", "Location"}}
	tokens := expr.Tokenizer.Tokenize(input)
	for tokens.Next() {
		token := tokens.Token()
		data = append(data, []string{token.Type, fmt.Sprintf("%q", token.Lexeme()), token.Loc.String()})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	return tokens.Err()
}
