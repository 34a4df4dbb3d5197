package query

import (
	"strings"
)

type operator int

const (
	opNone operator = iota
	opEqual
	opNotEqual
	opGreaterThan
	opGreaterOrEqual
	opLessThan
	opLessOrEqual
	opContains
	opStartsWith
	opEndsWith
	opAnd
	opOr
	opNot
)

var comparisons = map[operator]string{
	opEqual:          "eq",
	opNotEqual:       "ne",
	opGreaterThan:    "gt",
	opGreaterOrEqual: "ge",
	opLessThan:       "lt",
	opLessOrEqual:    "le",
}

var functions = map[operator]string{
	opContains:   "contains",
	opStartsWith: "startswith",
	opEndsWith:   "endswith",
}

// Filter is a node in a $filter expression tree. Filters are values and are
// never modified after creation. Combining filters copies the operands into
// the new node.
//
// Sub expressions are rendered without parentheses, leaving precedence to
// the parser on the server side. As a consequence Not(And(a, b)) renders as
// "not a and b", which the server reads as And(Not(a), b).
type Filter struct {
	op    operator
	field string
	value Attribute

	left  *Filter
	right *Filter
}

func compare(op operator, field string, value Attribute) Filter {
	return Filter{op: op, field: field, value: value}
}

func Equal(field string, value Attribute) Filter {
	return compare(opEqual, field, value)
}

func NotEqual(field string, value Attribute) Filter {
	return compare(opNotEqual, field, value)
}

func GreaterThan(field string, value Attribute) Filter {
	return compare(opGreaterThan, field, value)
}

func GreaterOrEqual(field string, value Attribute) Filter {
	return compare(opGreaterOrEqual, field, value)
}

func LessThan(field string, value Attribute) Filter {
	return compare(opLessThan, field, value)
}

func LessOrEqual(field string, value Attribute) Filter {
	return compare(opLessOrEqual, field, value)
}

func Contains(field string, value Attribute) Filter {
	return compare(opContains, field, value)
}

func StartsWith(field string, value Attribute) Filter {
	return compare(opStartsWith, field, value)
}

func EndsWith(field string, value Attribute) Filter {
	return compare(opEndsWith, field, value)
}

func And(left, right Filter) Filter {
	return Filter{op: opAnd, left: &left, right: &right}
}

func Or(left, right Filter) Filter {
	return Filter{op: opOr, left: &left, right: &right}
}

func Not(f Filter) Filter {
	return Filter{op: opNot, left: &f}
}

func (f Filter) And(other Filter) Filter {
	return And(f, other)
}

func (f Filter) Or(other Filter) Filter {
	return Or(f, other)
}

// NotAnd negates the conjunction of f and other
func (f Filter) NotAnd(other Filter) Filter {
	return Not(And(f, other))
}

// NotOr negates the disjunction of f and other
func (f Filter) NotOr(other Filter) Filter {
	return Not(Or(f, other))
}

func (f Filter) IsEmpty() bool {
	return f.op == opNone
}

func (f Filter) String() string {
	sb := strings.Builder{}
	f.writeTo(&sb)
	return sb.String()
}

func (f Filter) writeTo(sb *strings.Builder) {
	switch f.op {
	case opEqual, opNotEqual, opGreaterThan, opGreaterOrEqual, opLessThan, opLessOrEqual:
		sb.WriteString(f.field)
		sb.WriteString(" ")
		sb.WriteString(comparisons[f.op])
		sb.WriteString(" ")
		sb.WriteString(f.value.String())
	case opContains, opStartsWith, opEndsWith:
		sb.WriteString(functions[f.op])
		sb.WriteString("(")
		sb.WriteString(f.field)
		sb.WriteString(",")
		sb.WriteString(f.value.String())
		sb.WriteString(")")
	case opAnd:
		f.left.writeTo(sb)
		sb.WriteString(" and ")
		f.right.writeTo(sb)
	case opOr:
		f.left.writeTo(sb)
		sb.WriteString(" or ")
		f.right.writeTo(sb)
	case opNot:
		sb.WriteString("not ")
		f.left.writeTo(sb)
	}
}
