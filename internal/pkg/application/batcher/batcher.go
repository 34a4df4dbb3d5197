package batcher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/diwise/dataverse-client/pkg/dataverse/batch"
	"github.com/diwise/dataverse-client/pkg/dataverse/client"
	"github.com/diwise/dataverse-client/pkg/dataverse/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate moq -rm -out batcher_mock.go . Batcher

// Batcher collects write operations into a single changeset that is sent to
// the service when it is full, when Flush is called or when the batcher is
// stopped. A failed changeset is dropped, no attempt is made to resend it.
type Batcher interface {
	Start() error
	Stop() error

	Create(ctx context.Context, entitySet string, body json.RawMessage) error
	Upsert(ctx context.Context, entitySet string, id uuid.UUID, body json.RawMessage) error
	Delete(ctx context.Context, entitySet string, id uuid.UUID) error

	Flush(ctx context.Context) (int, error)
}

var (
	ErrNotStarted          = fmt.Errorf("batcher is not started")
	ErrEntitySetNotAllowed = fmt.Errorf("entity set not allowed")
)

const DefaultBatchSize int = 50

var tracer = otel.Tracer("dataverse-gateway/batcher")

type action func()

type batcher struct {
	mu      sync.RWMutex
	started bool

	size    int
	allowed map[string]struct{}

	client client.DataverseClient
	batch  *batch.Batch

	queue chan action
}

func BatchSize(size int) func(*batcher) {
	return func(b *batcher) {
		if size > 0 {
			b.size = size
		}
	}
}

// AllowedEntitySets restricts the entity sets that operations may target. All
// entity sets are allowed if none are given.
func AllowedEntitySets(entitySets ...string) func(*batcher) {
	return func(b *batcher) {
		for _, set := range entitySets {
			b.allowed[set] = struct{}{}
		}
	}
}

func New(c client.DataverseClient, b *batch.Batch, options ...func(*batcher)) Batcher {
	bt := &batcher{
		size:    DefaultBatchSize,
		allowed: map[string]struct{}{},
		client:  c,
		batch:   b,
	}

	for _, option := range options {
		option(bt)
	}

	return bt
}

func (bt *batcher) Start() error {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	if bt.started {
		return fmt.Errorf("already started")
	}

	bt.started = true
	bt.queue = make(chan action, 32)

	go bt.run(bt.queue)

	return nil
}

// Stop sends any pending operations before the worker is shut down
func (bt *batcher) Stop() error {
	bt.mu.Lock()
	defer bt.mu.Unlock()

	if !bt.started {
		return nil
	}

	bt.started = false

	var err error
	done := make(chan bool)
	queue := bt.queue

	queue <- func() {
		_, err = bt.flush(context.Background())
		close(queue)
		done <- true
	}

	<-done

	return err
}

type rawEntity struct {
	ref  types.EntityReference
	body json.RawMessage
}

func (e rawEntity) Reference() types.EntityReference {
	return e.ref
}

func (e rawEntity) MarshalJSON() ([]byte, error) {
	if !json.Valid(e.body) {
		return nil, fmt.Errorf("body is not valid json")
	}
	return e.body, nil
}

func (bt *batcher) Create(ctx context.Context, entitySet string, body json.RawMessage) error {
	entity := rawEntity{ref: types.NewEntityReference(entitySet, uuid.Nil), body: body}

	return bt.enqueue(ctx, "create", entitySet, func(b *batch.Batch) error {
		return b.Create(entity)
	})
}

func (bt *batcher) Upsert(ctx context.Context, entitySet string, id uuid.UUID, body json.RawMessage) error {
	entity := rawEntity{ref: types.NewEntityReference(entitySet, id), body: body}

	return bt.enqueue(ctx, "upsert", entitySet, func(b *batch.Batch) error {
		return b.Upsert(entity)
	})
}

func (bt *batcher) Delete(ctx context.Context, entitySet string, id uuid.UUID) error {
	ref := types.NewEntityReference(entitySet, id)

	return bt.enqueue(ctx, "delete", entitySet, func(b *batch.Batch) error {
		return b.Delete(ref)
	})
}

func (bt *batcher) Flush(ctx context.Context) (int, error) {
	type result struct {
		count int
		err   error
	}

	resultChan := make(chan result, 1)

	err := bt.send(func() {
		count, err := bt.flush(ctx)
		resultChan <- result{count, err}
	})
	if err != nil {
		return 0, err
	}

	r := <-resultChan
	return r.count, r.err
}

func (bt *batcher) enqueue(ctx context.Context, operation, entitySet string, apply func(*batch.Batch) error) error {
	if len(bt.allowed) > 0 {
		if _, ok := bt.allowed[entitySet]; !ok {
			return fmt.Errorf("%w: %s", ErrEntitySetNotAllowed, entitySet)
		}
	}

	// a full batch is sent in the background after the caller has been released
	flushCtx := context.WithoutCancel(ctx)
	errChan := make(chan error, 1)

	err := bt.send(func() {
		err := apply(bt.batch)
		errChan <- err

		if err != nil {
			return
		}

		operationsQueued.WithLabelValues(operation).Inc()

		if bt.batch.Count() >= bt.size {
			bt.flush(flushCtx)
		}
	})
	if err != nil {
		return err
	}

	return <-errChan
}

func (bt *batcher) send(a action) error {
	bt.mu.RLock()
	defer bt.mu.RUnlock()

	if !bt.started {
		return ErrNotStarted
	}

	bt.queue <- a

	return nil
}

func (bt *batcher) flush(ctx context.Context) (int, error) {
	count := bt.batch.Count()
	if count == 0 {
		return 0, nil
	}

	var err error

	ctx, span := tracer.Start(ctx, "flush-batch", trace.WithAttributes(attribute.Int("batch-size", count)))
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	logger := logging.GetFromContext(ctx)

	_, err = bt.client.Execute(ctx, bt.batch)
	bt.batch.Reset()

	if err != nil {
		flushFailures.Inc()
		logger.Error("failed to execute batch", "count", count, "err", err.Error())
		return 0, err
	}

	operationsFlushed.Add(float64(count))
	logger.Info("batch executed", "count", count)

	return count, nil
}

func (bt *batcher) run(queue <-chan action) {
	// repeat until the queue is closed
	for action := range queue {
		action()
	}
}
