package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apiserver "github.com/clouddiag/openstack-advisor/internal/api_server"
	"github.com/clouddiag/openstack-advisor/internal/client"
	"github.com/clouddiag/openstack-advisor/internal/config"
	"github.com/clouddiag/openstack-advisor/internal/service"
	"github.com/clouddiag/openstack-advisor/pkg/log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		zap.S().Fatalw("reading configuration", "error", err)
	}

	logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
	if err != nil {
		logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger := log.InitLog(logLvl)
	defer func() { _ = logger.Sync() }()

	undo := zap.ReplaceGlobals(logger)
	defer undo()

	zap.S().Info("Starting advisor service")
	defer zap.S().Info("Advisor service stopped")

	openstack, err := client.NewOpenStack(cfg.OpenStack)
	if err != nil {
		zap.S().Fatalw("creating openstack client", "error", err)
	}
	advisor := service.NewAdvisorService(openstack, cfg.Service)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	monitor := service.NewHealthMonitor(advisor, cfg.Service.HealthCheckInterval)
	go monitor.Run(ctx)

	go func() {
		defer cancel()
		listener, err := newListener(cfg.Service.Address)
		if err != nil {
			zap.S().Fatalw("creating listener", "error", err)
		}

		server := apiserver.New(cfg, advisor, listener)
		if err := server.Run(ctx); err != nil {
			zap.S().Fatalw("running api server", "error", err)
		}
	}()

	go func() {
		defer cancel()
		listener, err := newListener(cfg.Service.MetricsAddress)
		if err != nil {
			zap.S().Fatalw("creating metrics listener", "error", err)
		}

		metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, advisor)
		if err := metricsServer.Run(ctx); err != nil {
			zap.S().Fatalw("running metrics server", "error", err)
		}
	}()

	<-ctx.Done()
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
