// Package batch encodes a sequence of write requests into a single multipart
// request body for the $batch endpoint. All requests share one changeset, so
// the service applies them as one unit.
//
// The service limits a batch to 1000 requests and two minutes of execution
// time. The execution time depends on the complexity of the entity, so the
// number of requests that fit varies between entity types. Batches of 50
// requests have proven to be safe for all entity types. None of these limits
// are enforced here.
package batch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/diwise/dataverse-client/pkg/dataverse/errors"
	"github.com/diwise/dataverse-client/pkg/dataverse/types"
	"github.com/google/uuid"
)

const DefaultVersion string = "9.2"

// Batch accumulates framed requests. A Batch must not be modified from more
// than one goroutine at a time. Callers that need to build batches
// concurrently should use one Batch per goroutine.
type Batch struct {
	url     string
	version string
	newID   func() uuid.UUID

	batchID     uuid.UUID
	changesetID uuid.UUID

	payload       bytes.Buffer
	nextContentID int
}

// Version selects the web api version used in request urls, an empty version
// keeps the default
func Version(version string) func(*Batch) {
	return func(b *Batch) {
		if version != "" {
			b.version = version
		}
	}
}

// New creates an empty batch for the instance at url, such as
// https://instance.crm.dynamics.com/
func New(url string, options ...func(*Batch)) *Batch {
	b := &Batch{
		url:     url,
		version: DefaultVersion,
		newID:   uuid.New,
	}

	for _, option := range options {
		option(b)
	}

	b.Reset()

	return b
}

// Reset clears the batch and generates new batch and changeset ids. The
// underlying buffer is kept for reuse.
func (b *Batch) Reset() {
	b.batchID = b.newID()
	b.changesetID = b.newID()
	b.payload.Reset()
	b.nextContentID = 1
}

func (b *Batch) BatchID() uuid.UUID {
	return b.batchID
}

func (b *Batch) ChangesetID() uuid.UUID {
	return b.changesetID
}

// Count returns the number of requests added since creation or the last reset
func (b *Batch) Count() int {
	return b.nextContentID - 1
}

// ContentType returns the value of the Content-Type header that must be sent
// together with the rendered batch
func (b *Batch) ContentType() string {
	return "multipart/mixed; boundary=batch_" + simple(b.batchID)
}

// Create adds a request that creates the entity
func (b *Batch) Create(entity types.WriteEntity) error {
	reference := entity.Reference()

	body, err := entity.MarshalJSON()
	if err != nil {
		return errors.NewSerializationError(err)
	}

	b.append(
		fmt.Sprintf("POST %s%s HTTP/1.1\nContent-Type: application/json;type=entry\n\n%s\n",
			b.base(), reference.EntitySet(), body,
		),
	)

	return nil
}

// Update adds a request that updates the entity. The request fails if the
// entity does not exist.
func (b *Batch) Update(entity types.WriteEntity) error {
	reference := entity.Reference()

	body, err := entity.MarshalJSON()
	if err != nil {
		return errors.NewSerializationError(err)
	}

	b.append(
		fmt.Sprintf("PATCH %s%s HTTP/1.1\nContent-Type: application/json;type=entry\nIf-Match: *\n\n%s\n",
			b.base(), reference.Path(), body,
		),
	)

	return nil
}

// Upsert adds a request that updates the entity, or creates it if it does
// not exist.
func (b *Batch) Upsert(entity types.WriteEntity) error {
	reference := entity.Reference()

	body, err := entity.MarshalJSON()
	if err != nil {
		return errors.NewSerializationError(err)
	}

	b.append(
		fmt.Sprintf("PATCH %s%s HTTP/1.1\nContent-Type: application/json;type=entry\n\n%s\n",
			b.base(), reference.Path(), body,
		),
	)

	return nil
}

// Delete adds a request that deletes the referenced entity
func (b *Batch) Delete(ref types.Reference) error {
	reference := ref.Reference()

	b.append(
		fmt.Sprintf("DELETE %s%s HTTP/1.1\n\n", b.base(), reference.Path()),
	)

	return nil
}

func (b *Batch) append(request string) {
	fmt.Fprintf(&b.payload,
		"--changeset_%s\nContent-Type: application/http\nContent-Transfer-Encoding:binary\nContent-Id: %d\n\n%s",
		simple(b.changesetID), b.nextContentID, request,
	)

	b.nextContentID++
}

func (b *Batch) base() string {
	return fmt.Sprintf("%sapi/data/v%s/", b.url, b.version)
}

// String renders the complete batch request body. Rendering does not modify
// the batch and more requests may be added afterwards.
func (b *Batch) String() string {
	batchID := simple(b.batchID)
	changesetID := simple(b.changesetID)

	return fmt.Sprintf(
		"--batch_%s\nContent-Type: multipart/mixed; boundary=changeset_%s\n\n%s--changeset_%s--\n--batch_%s--",
		batchID, changesetID, b.payload.String(), changesetID, batchID,
	)
}

func (b *Batch) Bytes() []byte {
	return []byte(b.String())
}

func simple(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
