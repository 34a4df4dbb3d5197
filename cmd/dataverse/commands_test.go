package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/diwise/dataverse-client/pkg/dataverse/batch"
	"github.com/diwise/dataverse-client/pkg/dataverse/client"
	"github.com/diwise/dataverse-client/pkg/dataverse/query"
	"github.com/diwise/dataverse-client/pkg/dataverse/test"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

func TestQueryCommand(t *testing.T) {
	is, dvc := setupTest(t)

	out, err := execute(dvc,
		"query", "contacts", "--url", "https://instance.crm.dynamics.com",
		"--select", "firstname,lastname", "--top", "5",
		"--filter-eq", "lastname=McTestface", "--filter-eq", "age=42",
		"--order", "firstname desc",
	)

	is.NoErr(err)
	is.Equal(len(dvc.RetrieveMultipleCalls()), 1)
	is.Equal(dvc.RetrieveMultipleCalls()[0].Q.String(),
		"contacts?$select=firstname,lastname&$top=5&$filter=lastname eq 'McTestface' and age eq 42&$orderby=firstname desc")
	is.Equal(out, "{\"firstname\":\"Testy\"}\n{\"firstname\":\"Texty\"}\n") // one record per line
}

func TestQueryCommandWithoutOptionsQueriesTheWholeSet(t *testing.T) {
	is, dvc := setupTest(t)

	_, err := execute(dvc, "query", "contacts", "--url", "https://instance.crm.dynamics.com")

	is.NoErr(err)
	is.Equal(dvc.RetrieveMultipleCalls()[0].Q.String(), "contacts")
}

func TestQueryCommandRejectsInvalidFilter(t *testing.T) {
	is, dvc := setupTest(t)

	_, err := execute(dvc, "query", "contacts", "--url", "https://instance.crm.dynamics.com", "--filter-eq", "lastname")

	is.True(err != nil)
	is.Equal(len(dvc.RetrieveMultipleCalls()), 0)
}

func TestQueryCommandRequiresURL(t *testing.T) {
	is, dvc := setupTest(t)
	t.Setenv("DATAVERSE_URL", "")

	_, err := execute(dvc, "query", "contacts")

	is.True(err != nil)
}

func TestDeleteCommandUsesOneBatch(t *testing.T) {
	is, dvc := setupTest(t)

	out, err := execute(dvc, "delete", "contacts",
		"12345678-1234-1234-1234-123456789012", "87654321-4321-4321-4321-210987654321",
		"--url", "https://instance.crm.dynamics.com", "--api-version", "9.1",
	)

	is.NoErr(err)
	is.Equal(len(dvc.ExecuteCalls()), 1)

	b := dvc.ExecuteCalls()[0].B
	is.Equal(b.Count(), 2)
	is.True(strings.Contains(b.String(), "DELETE https://instance.crm.dynamics.com/api/data/v9.1/contacts(87654321-4321-4321-4321-210987654321) HTTP/1.1"))
	is.Equal(out, "deleted 2 records\n")
}

func TestDeleteCommandRejectsInvalidID(t *testing.T) {
	is, dvc := setupTest(t)

	_, err := execute(dvc, "delete", "contacts", "nope", "--url", "https://instance.crm.dynamics.com")

	is.True(err != nil)
	is.Equal(len(dvc.ExecuteCalls()), 0)
}

func TestParseAttribute(t *testing.T) {
	is := is.New(t)

	is.Equal(parseAttribute("null").String(), "null")
	is.Equal(parseAttribute("true").String(), "true")
	is.Equal(parseAttribute("42").String(), "42")
	is.Equal(parseAttribute("4.5").String(), "4.5")
	is.Equal(parseAttribute("NaN").String(), "'NaN'")
	is.Equal(parseAttribute("12345678-1234-1234-1234-123456789012").String(), "'12345678-1234-1234-1234-123456789012'")
	is.Equal(parseAttribute("2024-01-02T03:04:05Z").String(), query.DateTime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)).String())
	is.Equal(parseAttribute("Testy").String(), "'Testy'")
}

func setupTest(t *testing.T) (*is.I, *test.DataverseClientMock) {
	is := is.New(t)

	dvc := &test.DataverseClientMock{
		RetrieveMultipleFunc: func(ctx context.Context, q query.Query, columns []string, callback func(json.RawMessage) error) (int, error) {
			for _, r := range []string{`{"firstname":"Testy"}`, `{"firstname":"Texty"}`} {
				if err := callback(json.RawMessage(r)); err != nil {
					return 0, err
				}
			}
			return 2, nil
		},
		ExecuteFunc: func(ctx context.Context, b *batch.Batch) (*client.ExecuteBatchResult, error) {
			result := &client.ExecuteBatchResult{}
			for i := 0; i < b.Count(); i++ {
				result.Responses = append(result.Responses, client.BatchResponse{StatusCode: 204, EntityID: uuid.Nil})
			}
			return result, nil
		},
	}

	return is, dvc
}

func execute(dvc client.DataverseClient, args ...string) (string, error) {
	cmd := NewRootCommand(func(context.Context, *RootOptions) client.DataverseClient {
		return dvc
	})

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}
