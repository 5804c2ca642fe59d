package interpreter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spiel0meister/fun/pkg/ast"
	"github.com/spiel0meister/fun/pkg/lexer"
	"github.com/spiel0meister/fun/pkg/parser"
	"github.com/spiel0meister/fun/pkg/runtime"
)

// ExecMode selects how a token sequence is executed.
type ExecMode string

const (
	// ExecTreewalker parses the whole program into an AST before evaluating it.
	ExecTreewalker ExecMode = "treewalker"
	// ExecStream executes statements straight off the token sequence.
	ExecStream ExecMode = "stream"
)

// ParseExecMode validates a mode name. The empty string selects the treewalker.
func ParseExecMode(value string) (ExecMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ExecTreewalker):
		return ExecTreewalker, nil
	case string(ExecStream):
		return ExecStream, nil
	default:
		return ExecTreewalker, fmt.Errorf("unknown exec mode '%s' (expected treewalker or stream)", value)
	}
}

// Interpreter owns the symbol table and output sink of one program run.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
}

// New returns an interpreter with an empty symbol table writing to stdout.
func New() *Interpreter {
	return &Interpreter{
		global: runtime.NewEnvironment(),
		out:    os.Stdout,
	}
}

// SetOutput redirects print output.
func (i *Interpreter) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	i.out = w
}

// GlobalEnvironment returns the interpreter's symbol table.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Run lexes source and executes it in the requested mode.
func (i *Interpreter) Run(source string, mode ExecMode) error {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}
	switch mode {
	case ExecStream:
		return i.ExecuteTokens(tokens)
	case ExecTreewalker, "":
		module, err := parser.ParseTokens(tokens)
		if err != nil {
			return err
		}
		_, err = i.EvaluateModule(module)
		return err
	default:
		return fmt.Errorf("unknown exec mode '%s'", mode)
	}
}

// EvaluateModule executes every statement in order and returns the symbol table.
func (i *Interpreter) EvaluateModule(module *ast.Module) (*runtime.Environment, error) {
	if module == nil {
		return i.global, nil
	}
	for _, stmt := range module.Body {
		if err := i.evaluateStatement(stmt); err != nil {
			return i.global, err
		}
	}
	return i.global, nil
}
