package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"regexp"
	"strings"
	"time"

	"github.com/diwise/dataverse-client/pkg/dataverse/auth"
	"github.com/diwise/dataverse-client/pkg/dataverse/batch"
	"github.com/diwise/dataverse-client/pkg/dataverse/errors"
	"github.com/diwise/dataverse-client/pkg/dataverse/query"
	"github.com/diwise/dataverse-client/pkg/dataverse/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

//go:generate moq -rm -out ../test/dataverseclient_mock.go . DataverseClient

type DataverseClient interface {
	Create(ctx context.Context, entity types.WriteEntity) (uuid.UUID, error)
	Update(ctx context.Context, entity types.WriteEntity) error
	Upsert(ctx context.Context, entity types.WriteEntity) error
	Delete(ctx context.Context, ref types.Reference) error
	Retrieve(ctx context.Context, ref types.Reference, columns []string, result any) error
	RetrieveMultiple(ctx context.Context, q query.Query, columns []string, callback func(json.RawMessage) error) (int, error)
	Execute(ctx context.Context, b *batch.Batch) (*ExecuteBatchResult, error)
	Merge(ctx context.Context, request types.MergeRequest) error
}

func Debug(enabled string) func(*dvClient) {
	return func(c *dvClient) {
		c.debug = (enabled == "true")
	}
}

// Version selects the web api version, defaults to 9.2
func Version(version string) func(*dvClient) {
	return func(c *dvClient) {
		if version != "" {
			c.version = version
		}
	}
}

func WithTokenProvider(provider auth.TokenProvider) func(*dvClient) {
	return func(c *dvClient) {
		c.auth = provider
	}
}

// RateLimit paces outgoing requests so that the service protection limits
// of the instance are not exceeded. A limit of zero disables pacing.
func RateLimit(limit rate.Limit, burst int) func(*dvClient) {
	return func(c *dvClient) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(limit, max(burst, 1))
	}
}

func Timeout(timeout time.Duration) func(*dvClient) {
	return func(c *dvClient) {
		c.httpClient.Timeout = timeout
	}
}

// NewDataverseClient creates a client for the instance at instanceURL, such as
// https://instance.crm.dynamics.com/
func NewDataverseClient(instanceURL string, options ...func(*dvClient)) DataverseClient {
	if !strings.HasSuffix(instanceURL, "/") {
		instanceURL += "/"
	}

	c := &dvClient{
		url:     instanceURL,
		version: batch.DefaultVersion,
		auth:    auth.NoAuth(),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   120 * time.Second,
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const (
	TraceAttributeEntitySet string = "entity-set"
	TraceAttributeEntityID  string = "entity-id"
)

var tracer = otel.Tracer("dataverse-client")

var uuidRegex = regexp.MustCompile("[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}")

type dvClient struct {
	url     string
	version string
	debug   bool

	auth       auth.TokenProvider
	limiter    *rate.Limiter
	httpClient http.Client
}

func (c *dvClient) Create(ctx context.Context, entity types.WriteEntity) (uuid.UUID, error) {
	var err error

	reference := entity.Reference()

	ctx, span := tracer.Start(ctx, "create-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntitySet, reference.EntitySet())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := entity.MarshalJSON()
	if err != nil {
		err = errors.NewSerializationError(err)
		return uuid.Nil, err
	}

	resp, respBody, err := c.call(
		ctx, http.MethodPost, c.base()+reference.EntitySet(), bytes.NewBuffer(body), jsonContent,
	)
	if err != nil {
		return uuid.Nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = errors.NewErrorFromResponse(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
		return uuid.Nil, err
	}

	entityID := uuidRegex.FindString(resp.Header.Get("OData-EntityId"))
	if entityID == "" {
		err = fmt.Errorf("service provided no entity id (%w)", errors.ErrMissingEntityID)
		return uuid.Nil, err
	}

	id, err := uuid.Parse(entityID)
	if err != nil {
		err = fmt.Errorf("failed to parse entity id %s (%w)", entityID, errors.ErrBadResponse)
		return uuid.Nil, err
	}

	return id, nil
}

func (c *dvClient) Update(ctx context.Context, entity types.WriteEntity) error {
	return c.patch(ctx, "update-entity", entity, map[string]string{"If-Match": "*"})
}

func (c *dvClient) Upsert(ctx context.Context, entity types.WriteEntity) error {
	return c.patch(ctx, "upsert-entity", entity, nil)
}

func (c *dvClient) patch(ctx context.Context, spanName string, entity types.WriteEntity, headers map[string]string) error {
	var err error

	reference := entity.Reference()

	ctx, span := tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String(TraceAttributeEntitySet, reference.EntitySet())),
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, reference.ID().String())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := entity.MarshalJSON()
	if err != nil {
		err = errors.NewSerializationError(err)
		return err
	}

	h := map[string]string{}
	for k, v := range jsonContent {
		h[k] = v
	}
	for k, v := range headers {
		h[k] = v
	}

	resp, respBody, err := c.call(ctx, http.MethodPatch, c.base()+reference.Path(), bytes.NewBuffer(body), h)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = errors.NewErrorFromResponse(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
		return err
	}

	return nil
}

func (c *dvClient) Delete(ctx context.Context, ref types.Reference) error {
	var err error

	reference := ref.Reference()

	ctx, span := tracer.Start(ctx, "delete-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntitySet, reference.EntitySet())),
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, reference.ID().String())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, respBody, err := c.call(ctx, http.MethodDelete, c.base()+reference.Path(), nil, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = errors.NewErrorFromResponse(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
		return err
	}

	return nil
}

// Retrieve fetches a single record and unmarshals it into result
func (c *dvClient) Retrieve(ctx context.Context, ref types.Reference, columns []string, result any) error {
	var err error

	reference := ref.Reference()

	ctx, span := tracer.Start(ctx, "retrieve-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntitySet, reference.EntitySet())),
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, reference.ID().String())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	endpoint := c.base() + reference.Path()
	if len(columns) > 0 {
		endpoint += "?" + query.SelectParam + "=" + strings.Join(columns, ",")
	}

	resp, respBody, err := c.call(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		err = c.unexpectedResponse(resp, respBody)
		return err
	}

	err = json.Unmarshal(respBody, result)
	if err != nil {
		err = c.unmarshalError(respBody, err)
		return err
	}

	return nil
}

type entityCollection struct {
	Value    []json.RawMessage `json:"value"`
	NextLink string            `json:"@odata.nextLink"`
}

// RetrieveMultiple executes the query and passes each record to callback. When
// the service returns a next link, that link is followed as is until no more
// pages remain. There is no limit on the number of pages, so a query without
// $top or $filter will retrieve the complete entity set.
func (c *dvClient) RetrieveMultiple(ctx context.Context, q query.Query, columns []string, callback func(json.RawMessage) error) (int, error) {
	var err error

	ctx, span := tracer.Start(ctx, "retrieve-multiple",
		trace.WithAttributes(attribute.String(TraceAttributeEntitySet, q.Collection())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	count := 0
	endpoint := c.base() + escapeQuery(q.WithColumns(columns))

	for endpoint != "" {
		log.Debug("retrieving page", "url", endpoint)

		resp, respBody, callErr := c.call(ctx, http.MethodGet, endpoint, nil, nil)
		if callErr != nil {
			err = callErr
			return count, err
		}

		if resp.StatusCode != http.StatusOK {
			err = c.unexpectedResponse(resp, respBody)
			return count, err
		}

		page := entityCollection{}
		err = json.Unmarshal(respBody, &page)
		if err != nil {
			err = c.unmarshalError(respBody, err)
			return count, err
		}

		for _, e := range page.Value {
			if err = callback(e); err != nil {
				return count, err
			}
			count++
		}

		endpoint = page.NextLink
	}

	return count, nil
}

// Execute sends the batch to the $batch endpoint. An error is returned if the
// batch as a whole or any of its requests failed.
func (c *dvClient) Execute(ctx context.Context, b *batch.Batch) (*ExecuteBatchResult, error) {
	var err error

	ctx, span := tracer.Start(ctx, "execute-batch",
		trace.WithAttributes(attribute.Int("batch-size", b.Count())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, respBody, err := c.call(
		ctx, http.MethodPost, c.base()+"$batch", bytes.NewBufferString(b.String()),
		map[string]string{"Content-Type": b.ContentType()},
	)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = errors.NewErrorFromResponse(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
		return nil, err
	}

	result, err := NewExecuteBatchResult(resp.Header.Get("Content-Type"), respBody)
	if err != nil {
		return nil, err
	}

	if failed, ok := result.FirstFailure(); ok {
		err = fmt.Errorf("batch request %s failed: %w", failed.ContentID,
			errors.NewErrorFromResponse(failed.StatusCode, failed.ContentType, failed.Body),
		)
		return result, err
	}

	return result, nil
}

// Merge merges the subordinate record into the target record
func (c *dvClient) Merge(ctx context.Context, request types.MergeRequest) error {
	var err error

	ctx, span := tracer.Start(ctx, "merge-entities",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, request.Target.String())),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := json.Marshal(request)
	if err != nil {
		err = errors.NewSerializationError(err)
		return err
	}

	resp, respBody, err := c.call(ctx, http.MethodPost, c.base()+"Merge", bytes.NewBuffer(body), jsonContent)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = errors.NewErrorFromResponse(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
		return err
	}

	return nil
}

var jsonContent = map[string]string{"Content-Type": "application/json; charset=utf-8"}

func (c *dvClient) base() string {
	return fmt.Sprintf("%sapi/data/v%s/", c.url, c.version)
}

func (c *dvClient) unexpectedResponse(resp *http.Response, body []byte) error {
	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode >= http.StatusBadRequest {
		return errors.NewErrorFromResponse(resp.StatusCode, contentType, body)
	}

	return fmt.Errorf("unexpected response code %d (%w)", resp.StatusCode, errors.ErrBadResponse)
}

func (c *dvClient) unmarshalError(body []byte, err error) error {
	if c.debug && len(body) < 1000 {
		return fmt.Errorf("unmarshaling of %s failed with err %s (%w)", string(body), err.Error(), errors.ErrBadResponse)
	}

	return fmt.Errorf("failed to unmarshal response: %s (%w)", err.Error(), errors.ErrBadResponse)
}

func (c *dvClient) call(ctx context.Context, method, endpoint string, body io.Reader, headers map[string]string) (*http.Response, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter: %s (%w)", err.Error(), errors.ErrRequest)
		}
	}

	token, err := c.auth.GetValidToken(ctx)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")
	req.Header.Set("Accept", "application/json")

	for header, value := range headers {
		req.Header.Set(header, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if c.debug && resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		req.Header.Del("Authorization")
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error("request failed", "request", string(reqbytes), "response", string(respbytes))
	}

	return resp, respBody, nil
}

// escapeQuery percent encodes the characters of a rendered query that are not
// allowed in a request line, leaving the OData punctuation intact
func escapeQuery(s string) string {
	const hex = "0123456789ABCDEF"

	sb := strings.Builder{}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch <= ' ' || ch >= 0x7f || strings.IndexByte("\"#%+<>\\^`{|}", ch) >= 0 {
			sb.WriteByte('%')
			sb.WriteByte(hex[ch>>4])
			sb.WriteByte(hex[ch&15])
			continue
		}
		sb.WriteByte(ch)
	}

	return sb.String()
}
