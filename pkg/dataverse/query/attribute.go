package query

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type attributeKind int

const (
	kindNull attributeKind = iota
	kindBoolean
	kindInteger
	kindDecimal
	kindString
	kindDateTime
	kindEntityID
)

// Attribute is a literal value that a field is compared against in a filter
// expression. Attributes are only meant for queries and can not be written
// back to an entity.
type Attribute struct {
	kind attributeKind

	b  bool
	i  int64
	f  float64
	s  string
	t  time.Time
	id uuid.UUID
}

func Null() Attribute {
	return Attribute{kind: kindNull}
}

func Boolean(value bool) Attribute {
	return Attribute{kind: kindBoolean, b: value}
}

func Integer(value int64) Attribute {
	return Attribute{kind: kindInteger, i: value}
}

// Decimal creates a floating point attribute. Finite values are written
// without an exponent. Infinity and NaN are written as INF, -INF and NaN.
func Decimal(value float64) Attribute {
	return Attribute{kind: kindDecimal, f: value}
}

// String creates a text attribute. The value is inserted between single quotes
// as is, so any single quote within the value must be escaped by the caller.
func String(value string) Attribute {
	return Attribute{kind: kindString, s: value}
}

func DateTime(value time.Time) Attribute {
	return Attribute{kind: kindDateTime, t: value.UTC()}
}

func EntityID(value uuid.UUID) Attribute {
	return Attribute{kind: kindEntityID, id: value}
}

func (a Attribute) IsNull() bool {
	return a.kind == kindNull
}

// String returns the attribute formatted as an OData literal
func (a Attribute) String() string {
	switch a.kind {
	case kindBoolean:
		return strconv.FormatBool(a.b)
	case kindInteger:
		return strconv.FormatInt(a.i, 10)
	case kindDecimal:
		switch {
		case math.IsNaN(a.f):
			return "NaN"
		case math.IsInf(a.f, 1):
			return "INF"
		case math.IsInf(a.f, -1):
			return "-INF"
		}
		return strconv.FormatFloat(a.f, 'f', -1, 64)
	case kindString:
		return "'" + a.s + "'"
	case kindDateTime:
		return "'" + a.t.Format(time.RFC3339Nano) + "'"
	case kindEntityID:
		return "'" + a.id.String() + "'"
	default:
		return "null"
	}
}
