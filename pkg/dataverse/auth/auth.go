package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/diwise/dataverse-client/pkg/dataverse/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenProvider hands out bearer tokens that are valid for at least the
// duration of a single request
type TokenProvider interface {
	GetValidToken(ctx context.Context) (string, error)
}

var tracer = otel.Tracer("dataverse-client/auth")

const loginURLFormat string = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

// TokenURL replaces the Microsoft identity platform token endpoint, an empty
// url keeps the default
func TokenURL(tokenURL string) func(*clientcredentials.Config) {
	return func(cfg *clientcredentials.Config) {
		if tokenURL != "" {
			cfg.TokenURL = tokenURL
		}
	}
}

func Scope(scope string) func(*clientcredentials.Config) {
	return func(cfg *clientcredentials.Config) {
		cfg.Scopes = []string{scope}
	}
}

// NewClientSecret authenticates as an application registered in tenantID
// using the client credentials grant. Tokens are cached until they are about
// to expire. The scope defaults to <instanceURL>.default
func NewClientSecret(ctx context.Context, instanceURL, tenantID, clientID, clientSecret string, options ...func(*clientcredentials.Config)) TokenProvider {
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     fmt.Sprintf(loginURLFormat, tenantID),
		Scopes:       []string{instanceURL + ".default"},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	for _, option := range options {
		option(cfg)
	}

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	ctx = context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient, httpClient)

	return &clientSecret{
		source: cfg.TokenSource(ctx),
	}
}

type clientSecret struct {
	source oauth2.TokenSource
}

func (cs *clientSecret) GetValidToken(ctx context.Context) (string, error) {
	var err error

	_, span := tracer.Start(ctx, "get-valid-token")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	token, err := cs.source.Token()
	if err != nil {
		err = fmt.Errorf("failed to retrieve access token (%w): %s", errors.ErrUnauthorized, err.Error())
		return "", err
	}

	return token.AccessToken, nil
}

// Static returns a provider that always hands out the same token
func Static(token string) TokenProvider {
	return staticToken(token)
}

type staticToken string

func (s staticToken) GetValidToken(context.Context) (string, error) {
	return string(s), nil
}

// NoAuth returns a provider that always fails. It is the default provider of
// a client that has not been configured with a way to authenticate.
func NoAuth() TokenProvider {
	return noAuth{}
}

type noAuth struct{}

func (noAuth) GetValidToken(context.Context) (string, error) {
	return "", errors.ErrNoAuth
}
