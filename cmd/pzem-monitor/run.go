// cmd/pzem-monitor/run.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/tamzrod/pzem-monitor/internal/metrics"
	"github.com/tamzrod/pzem-monitor/internal/notify"
	"github.com/tamzrod/pzem-monitor/internal/scheduler"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "poll both meters until interrupted",
		Flags:  []cli.Flag{configFlag},
		Action: func(c *cli.Context) error { return run(c.Context, c.String("config")) },
	}
}

func run(parent context.Context, path string) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Monitor.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := schedulerConfig(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	sc.Metrics = metrics.New(reg)
	if addr := cfg.Monitor.Diagnostics.MetricsListen; addr != "" {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srv := serveMetrics(addr, reg, log)
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	sc.Heartbeat = watchdog(log)
	sc.OnStateChange = func(from, to scheduler.State) {
		log.Info().Stringer("from", from).Stringer("to", to).Msg("scheduler state")
	}

	meters, err := buildMeters(cfg)
	if err != nil {
		return err
	}

	n := notify.NewLogNotifier(log, sc.Currency, nil)
	s, err := scheduler.New(sc, meters, n, scheduler.RealClock(), log)
	if err != nil {
		return err
	}

	if err = s.Init(ctx); err == nil {
		sdnotify(log, daemon.SdNotifyReady)
		log.Info().Str("config", path).Msg("monitor running")

		err = s.Run(ctx)
		sdnotify(log, daemon.SdNotifyStopping)
	}

	if errors.Is(err, context.Canceled) {
		log.Info().Msg("shutdown requested")
		return nil
	}
	return err
}

func serveMetrics(addr string, reg *prometheus.Registry, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("listen", addr).Msg("metrics endpoint up")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics endpoint failed")
		}
	}()
	return srv
}

// watchdog returns a heartbeat that pings systemd at half the watchdog
// interval, or nil when no watchdog is configured.
func watchdog(log zerolog.Logger) func() {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		log.Warn().Err(err).Msg("watchdog config unreadable")
		return nil
	}
	if interval <= 0 {
		return nil
	}

	every := interval / 2
	var last time.Time
	return func() {
		now := time.Now()
		if now.Sub(last) < every {
			return
		}
		last = now
		sdnotify(log, daemon.SdNotifyWatchdog)
	}
}

// sdnotify is a no-op outside systemd.
func sdnotify(log zerolog.Logger, state string) bool {
	ok, err := daemon.SdNotify(false, state)
	if err != nil {
		log.Warn().Err(err).Str("state", state).Msg("sdnotify failed")
	}
	return ok
}
