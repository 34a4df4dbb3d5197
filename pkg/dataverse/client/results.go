package client

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/diwise/dataverse-client/pkg/dataverse/errors"
	"github.com/google/uuid"
)

// BatchResponse is the response to a single request within a batch
type BatchResponse struct {
	ContentID   string
	StatusCode  int
	ContentType string
	EntityID    uuid.UUID
	Body        []byte
}

func (br BatchResponse) Failed() bool {
	return br.StatusCode >= http.StatusBadRequest
}

type ExecuteBatchResult struct {
	Responses []BatchResponse
}

func (r ExecuteBatchResult) FirstFailure() (BatchResponse, bool) {
	for _, resp := range r.Responses {
		if resp.Failed() {
			return resp, true
		}
	}
	return BatchResponse{}, false
}

// NewExecuteBatchResult reads the multipart body returned from the $batch
// endpoint. Changeset responses are flattened into a single list, in the
// order the service returned them.
func NewExecuteBatchResult(contentType string, body []byte) (*ExecuteBatchResult, error) {
	result := &ExecuteBatchResult{
		Responses: []BatchResponse{},
	}

	if len(body) == 0 {
		return result, nil
	}

	err := readMultipart(contentType, bytes.NewReader(body), result)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch response: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	return result, nil
}

func readMultipart(contentType string, body io.Reader, result *ExecuteBatchResult) error {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		return fmt.Errorf("unexpected content type %s", mediaType)
	}

	mr := multipart.NewReader(body, params["boundary"])

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		partType := part.Header.Get("Content-Type")

		if strings.HasPrefix(partType, "multipart/") {
			err = readMultipart(partType, part, result)
		} else {
			err = readResponse(part, result)
		}

		if err != nil {
			return err
		}
	}
}

func readResponse(part *multipart.Part, result *ExecuteBatchResult) error {
	resp, err := http.ReadResponse(bufio.NewReader(part), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	br := BatchResponse{
		ContentID:   part.Header.Get("Content-ID"),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        bytes.TrimSpace(body),
	}

	if id := uuidRegex.FindString(resp.Header.Get("OData-EntityId")); id != "" {
		br.EntityID, _ = uuid.Parse(id)
	}

	result.Responses = append(result.Responses, br)

	return nil
}
