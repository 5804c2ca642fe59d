package ast

import "github.com/spiel0meister/fun/pkg/lexer"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Num(text string) *NumberLiteral {
	return NewNumberLiteral(text)
}

// Type annotation helpers. Unknown names yield a zero Type.

func Ty(name string) *TypeAnnotation {
	typ, _ := lexer.LookupType(name)
	return NewTypeAnnotation(ID(name), typ)
}

// Statement helpers.

func Let(name string, value Literal) *LetStatement {
	return NewLetStatement(ID(name), nil, value)
}

func LetTyped(name, typeName string, value Literal) *LetStatement {
	return NewLetStatement(ID(name), Ty(typeName), value)
}

func Print(argument Expression) *PrintStatement {
	return NewPrintStatement(argument, true)
}

func PrintBare(argument Literal) *PrintStatement {
	return NewPrintStatement(argument, false)
}

func Assign(name string, value Literal) *AssignmentStatement {
	return NewAssignmentStatement(ID(name), value)
}

func Empty() *EmptyStatement {
	return NewEmptyStatement()
}

func Mod(body ...Statement) *Module {
	return NewModule(body)
}
