package ast

import "github.com/spiel0meister/fun/pkg/lexer"

type NodeType string

const (
	NodeIdentifier          NodeType = "Identifier"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeTypeAnnotation      NodeType = "TypeAnnotation"
	NodeLetStatement        NodeType = "LetStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeAssignmentStatement NodeType = "AssignmentStatement"
	NodeEmptyStatement      NodeType = "EmptyStatement"
	NodeModule              NodeType = "Module"
)

// Span locates a node in source. The zero value means "unknown".
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	span Span
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.span }
func (n *nodeImpl) setSpan(span Span) { n.span = span }
func (nodeImpl) isNode()              {}

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Literal is a constant written directly in source.
type Literal interface {
	Expression
	LiteralType() lexer.LiteralType
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

func (*StringLiteral) LiteralType() lexer.LiteralType { return lexer.LiteralString }

// NumberLiteral keeps the decimal text exactly as scanned.
type NumberLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Text string `json:"text"`
}

func NewNumberLiteral(text string) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Text: text}
}

func (*NumberLiteral) LiteralType() lexer.LiteralType { return lexer.LiteralNumber }

// LiteralText returns the source text carried by a literal node.
func LiteralText(lit Literal) string {
	switch l := lit.(type) {
	case *StringLiteral:
		return l.Value
	case *NumberLiteral:
		return l.Text
	default:
		return ""
	}
}

type TypeAnnotation struct {
	nodeImpl

	Name *Identifier       `json:"name"`
	Type lexer.LiteralType `json:"-"`
}

func NewTypeAnnotation(name *Identifier, typ lexer.LiteralType) *TypeAnnotation {
	return &TypeAnnotation{nodeImpl: newNodeImpl(NodeTypeAnnotation), Name: name, Type: typ}
}

// Statements

// LetStatement declares a variable. At least one of TypeAnnotation and Value is set.
type LetStatement struct {
	nodeImpl
	statementMarker

	Name           *Identifier     `json:"name"`
	TypeAnnotation *TypeAnnotation `json:"typeAnnotation,omitempty"`
	Value          Literal         `json:"value,omitempty"`
}

func NewLetStatement(name *Identifier, annotation *TypeAnnotation, value Literal) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, TypeAnnotation: annotation, Value: value}
}

// PrintStatement writes one rendered value. Argument is an *Identifier or a Literal.
type PrintStatement struct {
	nodeImpl
	statementMarker

	Argument      Expression `json:"argument"`
	Parenthesized bool       `json:"parenthesized"`
}

func NewPrintStatement(argument Expression, parenthesized bool) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Argument: argument, Parenthesized: parenthesized}
}

type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Literal     `json:"value"`
}

func NewAssignmentStatement(name *Identifier, value Literal) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Name: name, Value: value}
}

// EmptyStatement is a stray ';'.
type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement() *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement)}
}

type Module struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewModule(body []Statement) *Module {
	return &Module{nodeImpl: newNodeImpl(NodeModule), Body: body}
}
