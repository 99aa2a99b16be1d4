package internal

import (
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"livevote/internal/controllers"
	"livevote/internal/live"
	"livevote/internal/providers"
	"livevote/internal/services"
	"livevote/internal/storage/interfaces"
	"livevote/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	WebServer *http.Server
}

// NewHandler mounts the local UI routes behind the logging and metrics
// middleware, next to the uninstrumented health and metrics endpoints.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	uiMux := http.NewServeMux()
	router.Mount(uiMux)

	instrumentedUI := providers.InstrumentMiddleware(logger, metrics, uiMux)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedUI)
	return mux
}

// NewApp restores the device's vote status, loads the ballot, follows live
// updates and serves the local UI until SIGINT or SIGTERM.
func NewApp(
	handler http.Handler,
	syncService services.SyncServiceInterface,
	channel live.ChannelInterface,
	scheduler live.SchedulerInterface,
	status interfaces.VoteStatusStoreInterface,
	conf *structures.Config,
	logger providers.Logger,
) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s for device %s against %s", conf.AppName, conf.Client.DeviceID, conf.Backend.BaseURL)
	defer logger.Close()
	defer func() {
		if err := status.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Failed to close vote status store: %s", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := syncService.Bootstrap(ctx); err != nil {
		logger.Errorf(providers.TypeApp, "Initial load failed: %s", err)
	}
	if conf.Client.Admin {
		if err := syncService.ActivateAdmin(ctx); err != nil {
			logger.Errorf(providers.TypeApp, "Admin load failed: %s", err)
		}
	}

	channelDone := make(chan struct{})
	go func() {
		defer close(channelDone)
		if err := channel.Run(ctx); err != nil {
			logger.Errorf(providers.TypeSync, "Live updates stopped: %s", err)
		}
	}()

	scheduler.Init()

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: conf.Backend.Timeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		scheduler.Stop()
		cancel()
		<-channelDone
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()
	cancel()
	<-channelDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.WebServer.Shutdown(shutdownCtx); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
