package main

import (
	"math"
	"strconv"
	"time"

	"github.com/diwise/dataverse-client/pkg/dataverse/query"
	"github.com/google/uuid"
)

func parseAttribute(value string) query.Attribute {
	if value == "null" {
		return query.Null()
	}

	if b, err := strconv.ParseBool(value); err == nil && (value == "true" || value == "false") {
		return query.Boolean(b)
	}

	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return query.Integer(i)
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return query.Decimal(f)
	}

	if id, err := uuid.Parse(value); err == nil && len(value) == 36 {
		return query.EntityID(id)
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return query.DateTime(t)
	}

	return query.String(value)
}
