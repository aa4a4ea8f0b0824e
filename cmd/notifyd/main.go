// Package main is the entry point for the notifyd notification daemon.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/averen/notifyd/internal/config"
	"github.com/averen/notifyd/internal/daemon"
	ndbus "github.com/averen/notifyd/internal/dbus"
	"github.com/averen/notifyd/internal/notification"
	"github.com/averen/notifyd/internal/queue"
)

// Build-time variables (set via ldflags)
var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default ~/.config/notifyd/notifyd.toml)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("notifyd version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting notifyd", "version", version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// D-Bus handlers run on the bus goroutine; the config pointer is
	// swapped by the reload callback.
	var cfgVal atomic.Pointer[config.Config]
	cfgVal.Store(cfg)

	screenState := daemon.NewScreenStateTracker()
	engine := daemon.New(cfg, screenState, daemon.NewLogRenderer(logger), logger)

	server := ndbus.NewServer(logger)
	server.SetServerInfo(ndbus.ServerInfo{
		Name:        "notifyd",
		Vendor:      "notifyd",
		Version:     version,
		SpecVersion: "1.2",
	})

	server.SetNotifyHandler(func(raw *ndbus.RawNotification) uint32 {
		rec := daemon.RecordFromDBus(cfgVal.Load(), raw)
		var id uint32
		engine.Exec(func(q *queue.Queues) {
			id = q.Insert(rec)
		})
		if id == 0 {
			logger.Debug("notification stacked onto duplicate", "app", raw.AppName, "summary", raw.Summary)
		}
		return id
	})

	server.SetCloseHandler(func(id uint32) {
		engine.Exec(func(q *queue.Queues) {
			q.CloseByID(id, notification.ReasonClosed)
		})
	})

	// Close signals flow back out on the bus.
	engine.Queues().SetCloseCallback(func(id uint32, reason notification.CloseReason) {
		if err := server.EmitNotificationClosed(id, reason); err != nil {
			logger.Warn("failed to emit close signal", "id", id, "error", err)
		}
	})

	if err := server.Start(); err != nil {
		logger.Error("failed to start D-Bus server", "error", err)
		os.Exit(1)
	}
	defer func() { _ = server.Stop() }()

	control := ndbus.NewControl(engine, logger)
	if err := control.Export(server.Connection()); err != nil {
		logger.Error("failed to export control interface", "error", err)
		os.Exit(1)
	}

	// Hot-reload the config; the new policy values apply on the next
	// engine pass.
	watcher, err := config.NewWatcher(*configPath, logger)
	if err != nil {
		logger.Warn("failed to create config watcher", "error", err)
	} else {
		watcher.SetReloadCallback(func(newConfig *config.Config) {
			engine.Exec(func(q *queue.Queues) {
				q.UpdateConfig(newConfig)
			})
			cfgVal.Store(newConfig)
		})
		if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	logger.Info("notifyd ready", "dbus_interface", ndbus.Interface)

	if err := engine.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("engine exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("notifyd stopped")
}
