package problems

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestWriteProblemResponse(t *testing.T) {
	is := is.New(t)
	w := httptest.NewRecorder()

	ReportUpstreamError(w, "[code: 400] Invalid property 'nme'")

	is.Equal(w.Code, http.StatusBadGateway)
	is.Equal(w.Header().Get("Content-Type"), ProblemReportContentType)

	problem := struct {
		Type   string `json:"type"`
		Title  string `json:"title"`
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}{}

	is.NoErr(json.Unmarshal(w.Body.Bytes(), &problem))
	is.Equal(problem.Type, "urn:dataverse-gateway:errors:UpstreamError")
	is.Equal(problem.Status, http.StatusBadGateway)
	is.Equal(problem.Detail, "[code: 400] Invalid property 'nme'")
}

func TestProblemResponseCodes(t *testing.T) {
	is := is.New(t)

	is.Equal(NewBadRequestData("").ResponseCode(), http.StatusBadRequest)
	is.Equal(NewUnauthorizedRequest("").ResponseCode(), http.StatusUnauthorized)
	is.Equal(NewForbiddenEntitySet("").ResponseCode(), http.StatusForbidden)
	is.Equal(NewServiceUnavailable("").ResponseCode(), http.StatusServiceUnavailable)
	is.Equal(NewInternalError("").ResponseCode(), http.StatusInternalServerError)
}
