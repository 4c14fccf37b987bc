package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/termtris/pkg/config"
	"github.com/qnkhuat/termtris/pkg/logging"
	"github.com/qnkhuat/termtris/pkg/server"
)

const ShutdownTimeout = 10 * time.Second

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg, err := config.LoadServer(fs, os.Args[1:])
	if err != nil {
		logrus.Fatalf("failed to load config: %s", err)
	}

	log, err := logging.New(logging.Options{
		Path:     cfg.Log,
		Fallback: os.Stderr,
		Level:    cfg.LogLevel,
		Prefix:   "server",
		JSON:     cfg.LogJSON,
	})
	if err != nil {
		logrus.Fatalf("failed to initialize logging: %s", err)
	}
	defer logging.Close(log)

	binary, err := exec.LookPath(cfg.Binary)
	if err != nil {
		log.Fatalf("game binary %s not found: %s", cfg.Binary, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.Metrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.WithField("addr", cfg.Metrics).Info("serving metrics")
			if err := http.ListenAndServe(cfg.Metrics, mux); err != nil {
				log.Fatalf("failed to serve metrics: %s", err)
			}
		}()
	}

	s := &server.Server{
		ListenAddress: cfg.Listen,
		Binary:        binary,
		HostKey:       cfg.HostKey,
		IdleTimeout:   cfg.IdleTimeout,
		Metrics:       server.NewMetrics(reg),
		Log:           log,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("ssh server stopped: %s", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("sessions still open at shutdown")
		}
	}
}
