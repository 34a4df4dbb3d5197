package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Reference is implemented by anything that can point out a single record
type Reference interface {
	Reference() EntityReference
}

// WriteEntity is a record that can be serialized and sent to the service
type WriteEntity interface {
	Reference
	MarshalJSON() ([]byte, error)
}

// ReadEntity declares the columns that should be retrieved for a type
type ReadEntity interface {
	Columns() []string
}

// EntityReference identifies a record by entity set and id
type EntityReference struct {
	entitySet string
	id        uuid.UUID
}

func NewEntityReference(entitySet string, id uuid.UUID) EntityReference {
	return EntityReference{
		entitySet: entitySet,
		id:        id,
	}
}

func (r EntityReference) EntitySet() string {
	return r.entitySet
}

func (r EntityReference) ID() uuid.UUID {
	return r.id
}

func (r EntityReference) Reference() EntityReference {
	return r
}

// Path returns the reference formatted as <set>(<id>)
func (r EntityReference) Path() string {
	return fmt.Sprintf("%s(%s)", r.entitySet, r.id.String())
}

func (r EntityReference) String() string {
	return fmt.Sprintf("%s:(%s)", r.entitySet, strings.ReplaceAll(r.id.String(), "-", ""))
}

type MergeRequest struct {
	EntityName             string
	Target                 uuid.UUID
	Subordinate            uuid.UUID
	PerformParentingChecks bool
}

func NewMergeRequest(entityName string, target, subordinate uuid.UUID, checkParents bool) MergeRequest {
	return MergeRequest{
		EntityName:             entityName,
		Target:                 target,
		Subordinate:            subordinate,
		PerformParentingChecks: checkParents,
	}
}

func (mr MergeRequest) MarshalJSON() ([]byte, error) {
	ref := func(id uuid.UUID) map[string]any {
		return map[string]any{
			"@odata.type":        "Microsoft.Dynamics.CRM." + mr.EntityName,
			mr.EntityName + "id": id.String(),
		}
	}

	return json.Marshal(map[string]any{
		"Target":                 ref(mr.Target),
		"Subordinate":            ref(mr.Subordinate),
		"PerformParentingChecks": mr.PerformParentingChecks,
	})
}
