package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spiel0meister/fun/pkg/driver"
	"github.com/spiel0meister/fun/pkg/lexer"
)

// runTokens prints one token per line as "line:col<TAB>description". Tokens
// scanned before a lexical error are still printed.
func runTokens(args []string, opts cliOptions) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "fun tokens requires exactly one source file")
		return 1
	}
	src, err := driver.FileProvider{Path: args[0]}.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	opts.tracef("scanning %s", src.Path)

	scanner := lexer.NewScanner(src.Text)
	count := 0
	for {
		tok, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			reportError(err, displayPath(src.Path))
			return 1
		}
		fmt.Fprintf(os.Stdout, "%s\t%s\n", tok.Pos, tok.Describe())
		count++
	}
	opts.tracef("%d tokens", count)
	return 0
}
