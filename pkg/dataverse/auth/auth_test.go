package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	dverrors "github.com/diwise/dataverse-client/pkg/dataverse/errors"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath
var bodyContaining = expects.RequestBodyContaining

func TestClientSecretRetrievesToken(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path("/tenant/oauth2/v2.0/token"),
			bodyContaining("grant_type=client_credentials"),
			bodyContaining("client_id=clientid"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(tokenResponse)),
		),
	)
	defer s.Close()

	p := NewClientSecret(context.Background(), "https://instance.crm.dynamics.com/", "tenant", "clientid", "secret",
		TokenURL(s.URL()+"/tenant/oauth2/v2.0/token"),
	)

	token, err := p.GetValidToken(context.Background())
	is.NoErr(err)
	is.Equal(token, "eyJ0eXAiOiJKV1QiLCJhbGciOiJSUzI1NiJ9")
}

func TestClientSecretCachesToken(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(tokenResponse)),
		),
	)
	defer s.Close()

	p := NewClientSecret(context.Background(), "https://instance.crm.dynamics.com/", "tenant", "clientid", "secret",
		TokenURL(s.URL()), Scope("https://other.crm.dynamics.com/.default"),
	)

	for range 3 {
		_, err := p.GetValidToken(context.Background())
		is.NoErr(err)
	}

	is.Equal(s.RequestCount(), 1) // token should only be requested once
}

func TestClientSecretFailsOnRejectedCredentials(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusUnauthorized),
			response.Body([]byte(`{"error":"invalid_client"}`)),
		),
	)
	defer s.Close()

	p := NewClientSecret(context.Background(), "https://instance.crm.dynamics.com/", "tenant", "clientid", "wrong", TokenURL(s.URL()))

	_, err := p.GetValidToken(context.Background())
	is.True(errors.Is(err, dverrors.ErrUnauthorized))
}

func TestStaticToken(t *testing.T) {
	is := is.New(t)

	token, err := Static("abc").GetValidToken(context.Background())
	is.NoErr(err)
	is.Equal(token, "abc")
}

func TestNoAuthFails(t *testing.T) {
	is := is.New(t)

	_, err := NoAuth().GetValidToken(context.Background())
	is.True(errors.Is(err, dverrors.ErrNoAuth))
}

const tokenResponse string = `{"token_type":"Bearer","expires_in":3599,"ext_expires_in":3599,"access_token":"eyJ0eXAiOiJKV1QiLCJhbGciOiJSUzI1NiJ9"}`
