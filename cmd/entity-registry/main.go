package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/diwise/entity-registry/internal/pkg/application/registry"
	"github.com/diwise/entity-registry/internal/pkg/application/subscriptions"
	"github.com/diwise/entity-registry/internal/pkg/infrastructure/database"
	"github.com/diwise/entity-registry/internal/pkg/infrastructure/router"
	"github.com/diwise/entity-registry/internal/pkg/presentation/api/graphql"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/net/http/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/servicerunner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName string = "entity-registry"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx := context.Background()

	flags, err := parseExternalConfig(ctx, defaultFlags(), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, flags[logFormat])
	defer cleanup()

	store, err := database.New(ctx, database.LoadConfiguration(ctx))
	exitIf(err, logger, "failed to connect to database")
	defer store.Close()

	entityConfig, err := openConfigFile(flags[configPath])
	exitIf(err, logger, "failed to open entity configuration")

	runner, err := initialize(ctx, flags, &AppConfig{
		store:        store,
		registerer:   prometheus.DefaultRegisterer,
		entityConfig: entityConfig,
	})
	exitIf(err, logger, "failed to initialize service")

	err = runner.Run(ctx)
	exitIf(err, logger, "service runner failed")

	logger.Info("shutdown complete")
}

type AppConfig struct {
	store        database.Store
	registerer   prometheus.Registerer
	entityConfig io.ReadCloser

	app        registry.EntityManager
	publicPort string
}

var onstarting = servicerunner.OnStarting[AppConfig]
var onshutdown = servicerunner.OnShutdown[AppConfig]
var webserver = servicerunner.WithHTTPServeMux[AppConfig]
var muxinit = servicerunner.OnMuxInit[AppConfig]
var listen = servicerunner.WithListenAddr[AppConfig]
var withport = servicerunner.WithPort[AppConfig]
var liveness = servicerunner.WithK8SLivenessProbe[AppConfig]
var readiness = servicerunner.WithK8SReadinessProbes[AppConfig]

func initialize(ctx context.Context, flags FlagMap, cfg *AppConfig) (servicerunner.Runner[AppConfig], error) {
	entityCfg := registry.DefaultConfig()

	if cfg.entityConfig != nil {
		defer cfg.entityConfig.Close()

		var err error
		entityCfg, err = registry.LoadConfiguration(cfg.entityConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load entity configuration: %w", err)
		}
	}

	var notifier subscriptions.Notifier
	if endpoint := flags[notifierEndpoint]; endpoint != "" {
		var err error
		notifier, err = subscriptions.NewNotifier(ctx, endpoint)
		if err != nil {
			return nil, err
		}
	}

	cfg.app = registry.New(cfg.store, notifier, entityCfg, cfg.registerer)

	gatherer, ok := cfg.registerer.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}

	checks := map[string]handlers.ServiceProber{
		"database": func(ctx context.Context) (string, error) {
			if err := cfg.store.Ping(ctx); err != nil {
				return "unreachable", err
			}
			return "ok", nil
		},
	}

	_, runner := servicerunner.New(ctx, *cfg,
		webserver("public",
			listen(flags[listenAddress]),
			withport(flags[servicePort]),
			liveness(func() error { return nil }),
			readiness(checks),
			muxinit(func(ctx context.Context, identifier string, port string, appCfg *AppConfig, handler *http.ServeMux) error {
				appCfg.publicPort = port

				r := router.New(serviceName)
				if err := graphql.RegisterHandlers(ctx, r, appCfg.app); err != nil {
					return err
				}
				r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

				handler.Handle("/", r)
				return nil
			}),
		),
		onstarting(func(ctx context.Context, appCfg *AppConfig) error {
			return appCfg.app.Start()
		}),
		onshutdown(func(ctx context.Context, appCfg *AppConfig) error {
			return appCfg.app.Stop()
		}),
	)

	return runner, nil
}

func openConfigFile(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return f, nil
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		os.Exit(1)
	}
}
