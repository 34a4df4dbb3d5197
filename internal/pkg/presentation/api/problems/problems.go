package problems

import (
	"encoding/json"
	"net/http"
)

//ProblemDetails stores details about a certain problem according to RFC7807
//See https://tools.ietf.org/html/rfc7807
type ProblemDetails interface {
	ContentType() string
	Type() string
	Title() string
	Detail() string
	ResponseCode() int
	MarshalJSON() ([]byte, error)
	WriteResponse(w http.ResponseWriter)
}

type problemDetailsImpl struct {
	typ    string
	title  string
	detail string
	code   int
}

const (
	//ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"

	typePrefix string = "urn:dataverse-gateway:errors:"
)

func newProblem(name, title, detail string, code int) ProblemDetails {
	return &problemDetailsImpl{
		typ:    typePrefix + name,
		title:  title,
		detail: detail,
		code:   code,
	}
}

//NewBadRequestData reports that the request includes input data which does not meet the requirements of the operation
func NewBadRequestData(detail string) ProblemDetails {
	return newProblem("BadRequestData", "Bad Request Data", detail, http.StatusBadRequest)
}

func ReportNewBadRequestData(w http.ResponseWriter, detail string) {
	NewBadRequestData(detail).WriteResponse(w)
}

//NewUnauthorizedRequest reports that the request was rejected by the authorization policy
func NewUnauthorizedRequest(detail string) ProblemDetails {
	return newProblem("UnauthorizedRequest", "Unauthorized Request", detail, http.StatusUnauthorized)
}

func ReportUnauthorizedRequest(w http.ResponseWriter, detail string) {
	NewUnauthorizedRequest(detail).WriteResponse(w)
}

//NewForbiddenEntitySet reports that the gateway is not configured to write to the entity set
func NewForbiddenEntitySet(detail string) ProblemDetails {
	return newProblem("ForbiddenEntitySet", "Forbidden Entity Set", detail, http.StatusForbidden)
}

func ReportForbiddenEntitySet(w http.ResponseWriter, detail string) {
	NewForbiddenEntitySet(detail).WriteResponse(w)
}

//NewUpstreamError reports that the service rejected a batch or could not be reached
func NewUpstreamError(detail string) ProblemDetails {
	return newProblem("UpstreamError", "Upstream Error", detail, http.StatusBadGateway)
}

func ReportUpstreamError(w http.ResponseWriter, detail string) {
	NewUpstreamError(detail).WriteResponse(w)
}

//NewServiceUnavailable reports that the gateway is not accepting operations
func NewServiceUnavailable(detail string) ProblemDetails {
	return newProblem("ServiceUnavailable", "Service Unavailable", detail, http.StatusServiceUnavailable)
}

func ReportServiceUnavailable(w http.ResponseWriter, detail string) {
	NewServiceUnavailable(detail).WriteResponse(w)
}

func NewInternalError(detail string) ProblemDetails {
	return newProblem("InternalError", "Internal Error", detail, http.StatusInternalServerError)
}

func ReportNewInternalError(w http.ResponseWriter, detail string) {
	NewInternalError(detail).WriteResponse(w)
}

func (p *problemDetailsImpl) ContentType() string {
	return ProblemReportContentType
}

func (p *problemDetailsImpl) Type() string   { return p.typ }
func (p *problemDetailsImpl) Title() string  { return p.title }
func (p *problemDetailsImpl) Detail() string { return p.detail }

//MarshalJSON is called when a problem should be serialized to JSON
func (p *problemDetailsImpl) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Title  string `json:"title"`
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}{
		Type:   p.typ,
		Title:  p.title,
		Status: p.ResponseCode(),
		Detail: p.detail,
	})
}

func (p *problemDetailsImpl) ResponseCode() int {
	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

//WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *problemDetailsImpl) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}
