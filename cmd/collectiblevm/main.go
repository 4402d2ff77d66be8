// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "collectiblevm" runs a single collectible collection node and serves its
// APIs over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/akamensky/argparse"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/collectiblevm/api"
	"github.com/ava-labs/collectiblevm/api/jsonrpc"
	"github.com/ava-labs/collectiblevm/api/ws"
	"github.com/ava-labs/collectiblevm/config"
	"github.com/ava-labs/collectiblevm/consts"
	"github.com/ava-labs/collectiblevm/genesis"
	"github.com/ava-labs/collectiblevm/server"
	"github.com/ava-labs/collectiblevm/vm"
)

const metricsEndpoint = "metrics"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", consts.Name, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	parser := argparse.NewParser(consts.Name, "Runs a bounded collectible collection")
	configPath := parser.String("c", "config", &argparse.Options{
		Help: "path to a JSON or YAML config file",
	})
	genesisPath := parser.String("g", "genesis", &argparse.Options{
		Help:     "path to a JSON or YAML genesis file",
		Required: true,
	})
	if err := parser.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	g, err := loadGenesis(*genesisPath)
	if err != nil {
		return fmt.Errorf("loading genesis: %w", err)
	}

	logFactory := newLogFactory(cfg)
	defer logFactory.Close()
	log, err := logFactory.Make(consts.Name)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	v := vm.New(log, cfg, g)
	if err := v.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing vm: %w", err)
	}
	err = serve(ctx, log, cfg, v)
	return errors.Join(err, v.Shutdown(context.Background()))
}

func loadConfig(path string) (config.Config, error) {
	if len(path) == 0 {
		return config.Load(nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(b)
}

func loadGenesis(path string) (*genesis.Genesis, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return genesis.Parse(b)
}

// addRoutes mounts every enabled API under [server.BaseURL].
func addRoutes(srv server.PathAdder, cfg config.Config, v *vm.VM) error {
	factories := []api.HandlerFactory[api.VM]{
		jsonrpc.JSONRPCServerFactory{},
	}
	if wsFactory := ws.With(v, cfg.WebSocket); wsFactory != nil {
		factories = append(factories, wsFactory)
	}
	for _, factory := range factories {
		handler, err := factory.New(v)
		if err != nil {
			return err
		}
		if err := srv.AddRoute(handler.Handler, strings.TrimPrefix(handler.Path, "/"), ""); err != nil {
			return err
		}
	}
	if cfg.MetricsEnabled {
		return srv.AddRoute(server.NewMetricsHandler(v.Gatherer()), metricsEndpoint, "")
	}
	return nil
}

// serve runs the API server until [ctx] is cancelled or the server fails.
func serve(ctx context.Context, log logging.Logger, cfg config.Config, v *vm.VM) error {
	listener, err := net.Listen("tcp", cfg.HTTP.Address())
	if err != nil {
		return err
	}
	srv := server.New(server.BaseURL, log, listener, cfg.HTTP)
	if err := addRoutes(srv, cfg, v); err != nil {
		_ = listener.Close()
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("shutting down",
			zap.NamedError("cause", context.Cause(egCtx)),
		)
		return srv.Shutdown()
	})
	return eg.Wait()
}
