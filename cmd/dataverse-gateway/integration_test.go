package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diwise/dataverse-client/internal/pkg/application/batcher"
	"github.com/diwise/dataverse-client/pkg/dataverse/auth"
	"github.com/diwise/dataverse-client/pkg/dataverse/client"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var method = expects.RequestMethod
var path = expects.RequestPath
var bodyContaining = expects.RequestBodyContaining

func TestIntegrateWritesAreSentAsOneBatch(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ms := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path("/api/data/v9.2/$batch"),
			bodyContaining("POST "),
			bodyContaining("DELETE "),
		),
		Returns(
			response.ContentType("multipart/mixed; boundary=batchresponse_abc"),
			response.Code(http.StatusOK),
			response.Body([]byte(batchResponse)),
		),
	)
	defer ms.Close()

	cfg, err := batcher.LoadConfiguration(bytes.NewBufferString(newTestConfig(ms.URL())))
	is.NoErr(err)

	dvc := client.NewDataverseClient(ms.URL(), client.WithTokenProvider(auth.Static("token")))

	handler, b, err := initialize(ctx, cfg, bytes.NewBufferString(opaModule), dvc)
	is.NoErr(err)

	is.NoErr(b.Start())
	defer b.Stop()

	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, _ := testRequest(is, ts.URL, http.MethodPost, "/api/v0/entities/contacts", bytes.NewBufferString(`{"firstname":"Testy"}`))
	is.Equal(resp.StatusCode, http.StatusAccepted)

	resp, _ = testRequest(is, ts.URL, http.MethodDelete, "/api/v0/entities/contacts/12345678-1234-1234-1234-123456789012", nil)
	is.Equal(resp.StatusCode, http.StatusAccepted)

	is.Equal(ms.RequestCount(), 0) // nothing should be sent before the flush

	resp, body := testRequest(is, ts.URL, http.MethodPost, "/api/v0/flush", nil)
	is.Equal(resp.StatusCode, http.StatusOK)

	result := struct {
		Count int `json:"count"`
	}{}
	is.NoErr(json.Unmarshal(body, &result))
	is.Equal(result.Count, 2)
	is.Equal(ms.RequestCount(), 1)
}

func TestIntegrateEntitySetsAreRestricted(t *testing.T) {
	is := is.New(t)

	cfg, err := batcher.LoadConfiguration(bytes.NewBufferString(newTestConfig("https://instance.crm.dynamics.com")))
	is.NoErr(err)

	handler, _, err := initialize(context.Background(), cfg, bytes.NewBufferString(opaModule), client.NewDataverseClient(cfg.Instance.URL))
	is.NoErr(err)

	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, _ := testRequest(is, ts.URL, http.MethodDelete, "/api/v0/entities/systemusers/12345678-1234-1234-1234-123456789012", nil)
	is.Equal(resp.StatusCode, http.StatusForbidden)
}

func TestInitializeRequiresInstanceURL(t *testing.T) {
	is := is.New(t)

	_, _, err := initialize(context.Background(), &batcher.Config{}, bytes.NewBufferString(opaModule), client.NewDataverseClient(""))
	is.True(err != nil)
}

func TestRunStopsBatcherOnShutdown(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())

	b := &batcher.BatcherMock{
		StartFunc: func() error { return nil },
		StopFunc:  func() error { return nil },
	}

	cancel()

	err := run(ctx, "127.0.0.1:0", http.NotFoundHandler(), b)
	is.NoErr(err)
	is.Equal(len(b.StopCalls()), 1) // pending operations must be sent on shutdown
}

func testRequest(is *is.I, baseURL, method, path string, body io.Reader) (*http.Response, []byte) {
	req, _ := http.NewRequest(method, baseURL+path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, respBody
}

func newTestConfig(url string) string {
	return `
instance:
  url: ` + url + `
batch:
  size: 10
entitySets:
  - contacts
`
}

const opaModule string = `
package dataverse.authz

default allow := false

allow = response {
    response := {
    }
}
`

const batchResponse string = "--batchresponse_abc\r\n" +
	"Content-Type: multipart/mixed; boundary=changesetresponse_def\r\n" +
	"\r\n" +
	"--changesetresponse_def\r\n" +
	"Content-Type: application/http\r\n" +
	"Content-Transfer-Encoding: binary\r\n" +
	"Content-ID: 1\r\n" +
	"\r\n" +
	"HTTP/1.1 204 No Content\r\n" +
	"OData-Version: 4.0\r\n" +
	"\r\n" +
	"\r\n" +
	"--changesetresponse_def\r\n" +
	"Content-Type: application/http\r\n" +
	"Content-Transfer-Encoding: binary\r\n" +
	"Content-ID: 2\r\n" +
	"\r\n" +
	"HTTP/1.1 204 No Content\r\n" +
	"OData-Version: 4.0\r\n" +
	"\r\n" +
	"\r\n" +
	"--changesetresponse_def--\r\n" +
	"--batchresponse_abc--\r\n"
