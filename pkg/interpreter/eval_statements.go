package interpreter

import (
	"fmt"

	"github.com/spiel0meister/fun/pkg/ast"
	"github.com/spiel0meister/fun/pkg/lexer"
	"github.com/spiel0meister/fun/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	switch n := node.(type) {
	case *ast.LetStatement:
		return i.evaluateLetStatement(n)
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n)
	case *ast.AssignmentStatement:
		return i.evaluateAssignmentStatement(n)
	case *ast.EmptyStatement:
		return nil
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateLetStatement(stmt *ast.LetStatement) error {
	if stmt.Name == nil {
		return fmt.Errorf("let statement requires a name")
	}
	var annotation lexer.LiteralType
	if stmt.TypeAnnotation != nil {
		annotation = stmt.TypeAnnotation.Type
		if annotation == 0 {
			name := ""
			if stmt.TypeAnnotation.Name != nil {
				name = stmt.TypeAnnotation.Name.Name
			}
			return newRuntimeError(stmt.TypeAnnotation.Span().Start, fmt.Errorf("unknown type %q", name))
		}
	}
	if stmt.Value == nil {
		if annotation == 0 {
			return fmt.Errorf("let statement for %q requires a type or an initializer", stmt.Name.Name)
		}
		return i.declare(stmt.Name.Name, annotation, nil, stmt.Name.Span().Start)
	}
	val, err := i.evaluateLiteral(stmt.Value)
	if err != nil {
		return err
	}
	return i.declare(stmt.Name.Name, annotation, val, stmt.Value.Span().Start)
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement) error {
	val, err := i.evaluateExpression(stmt.Argument)
	if err != nil {
		return err
	}
	return i.emit(val)
}

func (i *Interpreter) evaluateAssignmentStatement(stmt *ast.AssignmentStatement) error {
	if stmt.Name == nil || stmt.Value == nil {
		return fmt.Errorf("assignment requires a name and a value")
	}
	val, err := i.evaluateLiteral(stmt.Value)
	if err != nil {
		return err
	}
	return i.assign(stmt.Name.Name, stmt.Name.Span().Start, val, stmt.Value.Span().Start)
}

func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		return i.lookup(n.Name, n.Span().Start)
	case ast.Literal:
		return i.evaluateLiteral(n)
	case nil:
		return nil, fmt.Errorf("print requires an argument")
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateLiteral(lit ast.Literal) (runtime.Value, error) {
	return i.literalValue(lit.LiteralType(), ast.LiteralText(lit), lit.Span().Start)
}
