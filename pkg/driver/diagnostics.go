package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spiel0meister/fun/pkg/interpreter"
	"github.com/spiel0meister/fun/pkg/lexer"
	"github.com/spiel0meister/fun/pkg/parser"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticStage names the phase that produced a diagnostic.
type DiagnosticStage string

const (
	StageLexer   DiagnosticStage = "lexer"
	StageParser  DiagnosticStage = "parser"
	StageRuntime DiagnosticStage = "runtime"
	StageDriver  DiagnosticStage = "driver"
)

// DiagnosticLocation references a source position for diagnostics.
type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

// Diagnostic is a structured report of a failed run or check.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Stage    DiagnosticStage
	Message  string
	Location DiagnosticLocation
}

// DiagnosticFromError classifies err by the stage that raised it.
func DiagnosticFromError(err error, path string) Diagnostic {
	diag := Diagnostic{
		Severity: SeverityError,
		Stage:    StageDriver,
		Location: DiagnosticLocation{Path: path},
	}
	if err == nil {
		return diag
	}
	var (
		lexErr   *lexer.Error
		parseErr *parser.ParseError
		rtErr    *interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		diag.Stage = StageLexer
		diag.Message = lexErr.Message
		diag.Location.Line = lexErr.Pos.Line
		diag.Location.Column = lexErr.Pos.Column
	case errors.As(err, &parseErr):
		diag.Stage = StageParser
		diag.Message = parseErr.Message
		diag.Location.Line = parseErr.Location.Line
		diag.Location.Column = parseErr.Location.Column
	case errors.As(err, &rtErr):
		diag.Stage = StageRuntime
		diag.Message = rtErr.Message
		diag.Location.Line = rtErr.Location.Line
		diag.Location.Column = rtErr.Location.Column
	default:
		diag.Message = err.Error()
	}
	return diag
}

// DescribeDiagnostic formats a diagnostic for CLI output.
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	stage := string(diag.Stage)
	if stage == "" {
		stage = string(StageDriver)
	}
	message = strings.TrimSpace(strings.TrimPrefix(message, stage+":"))
	prefix := stage + ": "
	if diag.Severity == SeverityWarning {
		prefix = "warning: " + prefix
	}
	if location := formatDiagnosticLocation(diag.Location); location != "" {
		return fmt.Sprintf("%s%s %s", prefix, location, message)
	}
	return prefix + message
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	line := loc.Line
	column := loc.Column
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("line %d, column %d", line, column)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}
