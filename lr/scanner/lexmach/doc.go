/*
Package lexmach provides an adapter to use the lexmachine scanner generator as
a tokenizer for the parser driver.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine is initialized from the same lexical classes as the default scanner:

	LM, err := lexmach.NewLMAdapter([]scanner.Class{
		{Type: "num", Pattern: `[0-9]+`},
		{Type: "+", Pattern: `\+`},
		{Pattern: `( |\t|\n)+`},          // skip
	})
	if err != nil {
		// do error handling
	}

Be aware that lexmachine compiles all the classes into a single DFA and prefers
the longest match, falling back to declaration order for matches of equal length.
The default scanner, in contrast, lets the first matching class win. Patterns have to use
lexmachine's regular expression dialect.

A token stream is instantiated for each concrete input sequence.

	tokens := LM.Tokenize("input string to tokenize")
	for tokens.Next() {
		token := tokens.Token()
		…
	}

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
