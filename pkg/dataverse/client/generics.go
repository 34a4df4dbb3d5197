package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/diwise/dataverse-client/pkg/dataverse/errors"
	"github.com/diwise/dataverse-client/pkg/dataverse/query"
	"github.com/diwise/dataverse-client/pkg/dataverse/types"
)

// Retrieve fetches a single record, selecting the columns declared by T
func Retrieve[T types.ReadEntity](ctx context.Context, c DataverseClient, ref types.Reference) (T, error) {
	var result T

	err := c.Retrieve(ctx, ref, result.Columns(), &result)

	return result, err
}

// QueryEntities executes q, selecting the columns declared by T, and passes
// every record to callback
func QueryEntities[T types.ReadEntity](ctx context.Context, c DataverseClient, q query.Query, callback func(t T)) (int, error) {
	var zero T

	return c.RetrieveMultiple(ctx, q, zero.Columns(), func(raw json.RawMessage) error {
		var t T

		err := json.Unmarshal(raw, &t)
		if err != nil {
			return fmt.Errorf("failed to unmarshal entity: %s (%w)", err.Error(), errors.ErrBadResponse)
		}

		callback(t)
		return nil
	})
}
