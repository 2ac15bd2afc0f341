package main

import (
	"context"
	"flag"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
)

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort

	configPath
	notifierEndpoint

	logFormat
)

func defaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "",
		servicePort:   "8080",
		logFormat:     "json",
	}
}

// parseExternalConfig overlays environment variables and command line flags on
// the supplied defaults. Flags win over environment variables.
func parseExternalConfig(ctx context.Context, flags FlagMap, args []string) (FlagMap, error) {
	apply := func(f FlagType, key string) {
		flags[f] = env.GetVariableOrDefault(ctx, key, flags[f])
	}

	apply(listenAddress, "LISTEN_ADDRESS")
	apply(servicePort, "SERVICE_PORT")
	apply(configPath, "ENTITY_CONFIG_PATH")
	apply(notifierEndpoint, "NOTIFIER_ENDPOINT")
	apply(logFormat, "LOG_FORMAT")

	fs := flag.NewFlagSet("entity-registry", flag.ContinueOnError)

	bind := func(f FlagType, name, usage string) *string {
		return fs.String(name, flags[f], usage)
	}

	values := map[FlagType]*string{
		servicePort:      bind(servicePort, "port", "port to listen for http connections on"),
		configPath:       bind(configPath, "config", "path to a yaml file with entity enumerations"),
		notifierEndpoint: bind(notifierEndpoint, "notifier", "url to post change notifications to"),
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	for f, v := range values {
		flags[f] = *v
	}

	return flags, nil
}
