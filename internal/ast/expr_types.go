package ast

import (
	"ferrite/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
// The set is closed: code that inspects expressions switches on Kind.
type ExprKind uint8

const (
	// ExprPath represents a plain or `::`-qualified path.
	ExprPath ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprCall represents a function call expression.
	ExprCall
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprUnary represents a unary expression.
	ExprUnary
	// ExprGroup represents a parenthesised expression.
	ExprGroup
	ExprTuple
	ExprArray
	ExprIndex
	ExprMember
	// ExprStruct represents a struct literal `Path { fields.. }`.
	ExprStruct
)

var exprKindNames = [...]string{
	ExprPath:   "Path",
	ExprLit:    "Lit",
	ExprCall:   "Call",
	ExprBinary: "Binary",
	ExprUnary:  "Unary",
	ExprGroup:  "Group",
	ExprTuple:  "Tuple",
	ExprArray:  "Array",
	ExprIndex:  "Index",
	ExprMember: "Member",
	ExprStruct: "Struct",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Unknown"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	// Арифметические
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	// Битовые
	ExprBinaryBitAnd
	ExprBinaryBitOr

	// Логические
	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	// Сравнения
	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	ExprBinaryAssign
	ExprBinaryRange // ..
)

var binaryOpText = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryMod:        "%",
	ExprBinaryBitAnd:     "&",
	ExprBinaryBitOr:      "|",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
	ExprBinaryAssign:     "=",
	ExprBinaryRange:      "..",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota // -x
	ExprUnaryNot                    // !x
	ExprUnaryRef                    // &x
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "!"
	case ExprUnaryRef:
		return "&"
	}
	return "?"
}

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitTrue
	ExprLitFalse
)

type ExprPathData struct {
	Path Path
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprTupleData struct {
	Elements []ExprID
}

type ExprArrayData struct {
	Elements []ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprMemberData struct {
	Target    ExprID
	Field     source.StringID
	FieldSpan source.Span
}

// ExprStructField represents a field in a struct literal.
//
// Span covers `name: value`, or just `name` for a shorthand field.
// A shorthand field's Value is a synthesised single-segment path whose
// span equals NameSpan, so every field has a value expression.
type ExprStructField struct {
	Name      source.StringID
	NameSpan  source.Span
	Value     ExprID
	Shorthand bool
	Span      source.Span
}

// ExprStructData holds struct literal expression details.
// Rest is the `..base` update expression or NoExprID.
type ExprStructData struct {
	Type   Path
	Fields []ExprStructField
	Rest   ExprID
}
