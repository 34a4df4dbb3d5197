// Package query builds the OData query strings used when retrieving multiple
// records from an entity set.
//
//	q := query.New("contacts").
//		Limit(3).
//		Filter(query.Equal("firstname", query.String("Testy"))).
//		OrderBy(query.Ascending("lastname"))
//
//	q.String() // contacts?$top=3&$filter=firstname eq 'Testy'&$orderby=lastname asc
//
// A query without a limit or a filter retrieves every record in the set.
package query

import (
	"slices"
	"strconv"
	"strings"
)

const (
	SelectParam  string = "$select"
	TopParam     string = "$top"
	FilterParam  string = "$filter"
	OrderByParam string = "$orderby"
)

// Query describes a request for multiple records of a single entity set.
// Mutators return a modified copy, leaving the receiver untouched.
type Query struct {
	collection string

	columns []string
	limit   *uint32
	filter  *Filter
	order   []Order
}

func New(collection string) Query {
	return Query{collection: collection}
}

func (q Query) Collection() string {
	return q.collection
}

func (q Query) Select(columns ...string) Query {
	if len(columns) == 0 {
		q.columns = nil
		return q
	}

	q.columns = append([]string{}, columns...)
	return q
}

func (q Query) Limit(count uint32) Query {
	q.limit = &count
	return q
}

func (q Query) Filter(f Filter) Query {
	if f.IsEmpty() {
		q.filter = nil
		return q
	}

	q.filter = &f
	return q
}

func (q Query) OrderBy(order ...Order) Query {
	if len(order) == 0 {
		q.order = nil
		return q
	}

	q.order = append([]Order{}, order...)
	return q
}

// String renders the query as <collection>[?<params>]
func (q Query) String() string {
	params := q.Params()
	if params == "" {
		return q.collection
	}

	return q.collection + "?" + params
}

// Params renders the query options, without the collection name and the
// leading question mark. The options are always written in the order
// $select, $top, $filter and $orderby.
func (q Query) Params() string {
	params := make([]string, 0, 4)

	if len(q.columns) > 0 {
		params = append(params, SelectParam+"="+strings.Join(q.columns, ","))
	}

	if q.limit != nil {
		params = append(params, TopParam+"="+strconv.FormatUint(uint64(*q.limit), 10))
	}

	if q.filter != nil {
		params = append(params, FilterParam+"="+q.filter.String())
	}

	if len(q.order) > 0 {
		order := make([]string, 0, len(q.order))
		for _, o := range q.order {
			order = append(order, o.String())
		}
		params = append(params, OrderByParam+"="+strings.Join(order, ","))
	}

	return strings.Join(params, "&")
}

// WithColumns renders the query with the given columns added to any columns
// already selected, as used when a result type decides which fields it needs.
// A column is only selected once.
func (q Query) WithColumns(columns []string) string {
	if len(columns) == 0 {
		return q.String()
	}

	merged := append([]string{}, q.columns...)
	for _, column := range columns {
		if !slices.Contains(merged, column) {
			merged = append(merged, column)
		}
	}

	return q.Select(merged...).String()
}
