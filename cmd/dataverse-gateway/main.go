package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diwise/dataverse-client/internal/pkg/application/batcher"
	"github.com/diwise/dataverse-client/internal/pkg/infrastructure/router"
	"github.com/diwise/dataverse-client/internal/pkg/presentation/api"
	"github.com/diwise/dataverse-client/pkg/dataverse/auth"
	"github.com/diwise/dataverse-client/pkg/dataverse/batch"
	"github.com/diwise/dataverse-client/pkg/dataverse/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"golang.org/x/time/rate"
)

const (
	appName string = "dataverse-gateway"
)

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	flags := parseExternalConfig(ctx, DefaultFlags())

	cfgFile, err := os.Open(flags[configPath])
	if err != nil {
		log.Error("failed to open configuration file", "path", flags[configPath], "err", err.Error())
		os.Exit(1)
	}
	defer cfgFile.Close()

	cfg, err := batcher.LoadConfiguration(cfgFile)
	if err != nil {
		log.Error("failed to load configuration", "err", err.Error())
		os.Exit(1)
	}

	policies, err := os.Open(flags[opaPath])
	if err != nil {
		log.Error("failed to open authz policies", "path", flags[opaPath], "err", err.Error())
		os.Exit(1)
	}
	defer policies.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dvc := newDataverseClient(ctx, flags, cfg)

	handler, b, err := initialize(ctx, cfg, policies, dvc)
	if err != nil {
		log.Error("failed to initialize service", "err", err.Error())
		os.Exit(1)
	}

	err = run(ctx, net.JoinHostPort(flags[listenAddress], flags[servicePort]), handler, b)
	if err != nil {
		log.Error("service failed", "err", err.Error())
		os.Exit(1)
	}

	log.Info("shutdown complete")
}

func DefaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "",
		servicePort:   "8080",

		configPath: "/opt/diwise/config/dataverse-gateway.yaml",
		opaPath:    "/opt/diwise/config/authz.rego",

		debugClient: "false",
	}
}

func parseExternalConfig(ctx context.Context, flags FlagMap) FlagMap {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault
	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[configPath] = envOrDef(ctx, "DATAVERSE_GATEWAY_CONFIG", flags[configPath])
	flags[opaPath] = envOrDef(ctx, "OPA_POLICY_FILE", flags[opaPath])

	flags[tenantID] = envOrDef(ctx, "DATAVERSE_TENANT_ID", flags[tenantID])
	flags[clientID] = envOrDef(ctx, "DATAVERSE_CLIENT_ID", flags[clientID])
	flags[clientSecret] = envOrDef(ctx, "DATAVERSE_CLIENT_SECRET", flags[clientSecret])
	flags[tokenURL] = envOrDef(ctx, "DATAVERSE_TOKEN_URL", flags[tokenURL])
	flags[debugClient] = envOrDef(ctx, "DATAVERSE_DEBUG", flags[debugClient])

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("config", "path to the gateway configuration file", apply(configPath))
	flag.Func("policies", "an authorization policy file", apply(opaPath))
	flag.Parse()

	return flags
}

func newDataverseClient(ctx context.Context, flags FlagMap, cfg *batcher.Config) client.DataverseClient {
	tokens := auth.NewClientSecret(ctx,
		instanceURL(cfg), flags[tenantID], flags[clientID], flags[clientSecret],
		auth.TokenURL(flags[tokenURL]),
	)

	return client.NewDataverseClient(
		instanceURL(cfg),
		client.WithTokenProvider(tokens),
		client.Version(cfg.Instance.Version),
		client.RateLimit(rate.Limit(cfg.Instance.RateLimit), cfg.Instance.Burst),
		client.Debug(flags[debugClient]),
	)
}

func instanceURL(cfg *batcher.Config) string {
	if !strings.HasSuffix(cfg.Instance.URL, "/") {
		return cfg.Instance.URL + "/"
	}
	return cfg.Instance.URL
}

func initialize(ctx context.Context, cfg *batcher.Config, policies io.Reader, dvc client.DataverseClient) (http.Handler, batcher.Batcher, error) {
	if cfg.Instance.URL == "" {
		return nil, nil, errors.New("no instance url configured")
	}

	b := batcher.New(
		dvc,
		batch.New(instanceURL(cfg), batch.Version(cfg.Instance.Version)),
		batcher.BatchSize(cfg.Batch.Size),
		batcher.AllowedEntitySets(cfg.EntitySets...),
	)

	r := router.New(appName)

	err := api.RegisterHandlers(ctx, r, policies, b)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register api handlers: %w", err)
	}

	return r, b, nil
}

func run(ctx context.Context, addr string, handler http.Handler, b batcher.Batcher) error {
	log := logging.GetFromContext(ctx)

	if err := b.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("starting to listen for connections", "addr", addr)
		errChan <- srv.ListenAndServe()
	}()

	var err error

	select {
	case err = <-errChan:
	case <-ctx.Done():
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()

		err = srv.Shutdown(shutdownCtx)
	}

	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	// pending operations are sent before the service exits
	return errors.Join(err, b.Stop())
}
