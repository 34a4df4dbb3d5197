package query

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is a single $orderby directive
type Order struct {
	Field     string
	Direction Direction
}

func Ascending(field string) Order {
	return Order{Field: field, Direction: Asc}
}

func Descending(field string) Order {
	return Order{Field: field, Direction: Desc}
}

func (o Order) String() string {
	return o.Field + " " + string(o.Direction)
}
