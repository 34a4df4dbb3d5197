package query

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matryer/is"
)

func TestAttributeLiterals(t *testing.T) {
	is := is.New(t)

	id := uuid.MustParse("12345678-1234-1234-1234-123456789ABC")
	when := time.Date(2023, 4, 5, 6, 7, 8, 0, time.FixedZone("CET", 3600))

	is.Equal(Null().String(), "null")
	is.Equal(Boolean(true).String(), "true")
	is.Equal(Boolean(false).String(), "false")
	is.Equal(Integer(-42).String(), "-42")
	is.Equal(Integer(1234567).String(), "1234567")
	is.Equal(Decimal(1.5).String(), "1.5")
	is.Equal(Decimal(3).String(), "3")
	is.Equal(String("Testy").String(), "'Testy'")
	is.Equal(DateTime(when).String(), "'2023-04-05T05:07:08Z'")
	is.Equal(EntityID(id).String(), "'12345678-1234-1234-1234-123456789abc'")
}

func TestDecimalLiterals(t *testing.T) {
	is := is.New(t)

	is.Equal(Decimal(1e21).String(), "1000000000000000000000")
	is.Equal(Decimal(0.000001).String(), "0.000001")
	is.Equal(Decimal(math.Inf(1)).String(), "INF")
	is.Equal(Decimal(math.Inf(-1)).String(), "-INF")
	is.Equal(Decimal(math.NaN()).String(), "NaN")
}

func TestStringAttributeIsNotEscaped(t *testing.T) {
	is := is.New(t)
	is.Equal(String("O'Brien").String(), "'O'Brien'")
}

func TestDateTimeKeepsFractionalSeconds(t *testing.T) {
	is := is.New(t)
	when := time.Date(2023, 4, 5, 6, 7, 8, 500000000, time.UTC)
	is.Equal(DateTime(when).String(), "'2023-04-05T06:07:08.5Z'")
}

func TestComparisonFilters(t *testing.T) {
	is := is.New(t)

	is.Equal(Equal("name", String("x")).String(), "name eq 'x'")
	is.Equal(NotEqual("name", Null()).String(), "name ne null")
	is.Equal(GreaterThan("age", Integer(3)).String(), "age gt 3")
	is.Equal(GreaterOrEqual("age", Integer(3)).String(), "age ge 3")
	is.Equal(LessThan("score", Decimal(0.25)).String(), "score lt 0.25")
	is.Equal(LessOrEqual("active", Boolean(true)).String(), "active le true")
}

func TestFunctionFilters(t *testing.T) {
	is := is.New(t)

	is.Equal(Contains("name", String("est")).String(), "contains(name,'est')")
	is.Equal(StartsWith("name", String("Te")).String(), "startswith(name,'Te')")
	is.Equal(EndsWith("name", String("face")).String(), "endswith(name,'face')")
}

func TestCombinedFilters(t *testing.T) {
	is := is.New(t)

	a := Equal("firstname", String("Testy"))
	b := EndsWith("lastname", String("face"))
	c := GreaterThan("rank", Integer(1))

	is.Equal(And(a, b).String(), "firstname eq 'Testy' and endswith(lastname,'face')")
	is.Equal(a.Or(b).String(), "firstname eq 'Testy' or endswith(lastname,'face')")
	is.Equal(Not(a).String(), "not firstname eq 'Testy'")
	is.Equal(Or(And(a, b), c).String(), "firstname eq 'Testy' and endswith(lastname,'face') or rank gt 1")
}

func TestNegatedCombinationsAreNotParenthesized(t *testing.T) {
	is := is.New(t)

	a := Equal("a", Integer(1))
	b := Equal("b", Integer(2))

	is.Equal(Not(And(a, b)).String(), "not a eq 1 and b eq 2")
	is.Equal(a.NotAnd(b).String(), "not a eq 1 and b eq 2")
	is.Equal(a.NotOr(b).String(), "not a eq 1 or b eq 2")
}

func TestCombiningDoesNotModifyOperands(t *testing.T) {
	is := is.New(t)

	a := Equal("a", Integer(1))
	combined := a.And(Equal("b", Integer(2)))

	is.Equal(a.String(), "a eq 1")
	is.Equal(combined.String(), "a eq 1 and b eq 2")
}

func TestEmptyFilterRendersNothing(t *testing.T) {
	is := is.New(t)
	is.True(Filter{}.IsEmpty())
	is.Equal(Filter{}.String(), "")
}
