package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/pixelframe/shop/pkg/logging"
	"github.com/pixelframe/shop/pkg/shutdown"
	"github.com/pixelframe/shop/pkg/tracing"

	"github.com/pixelframe/shop/internal/catalog"
	cataloghttp "github.com/pixelframe/shop/internal/catalog/http"
	orderapp "github.com/pixelframe/shop/internal/order/application"
	orderhttp "github.com/pixelframe/shop/internal/order/infrastructure/http"
	paymentapp "github.com/pixelframe/shop/internal/payment/application"
	paymenthttp "github.com/pixelframe/shop/internal/payment/infrastructure/http"
	"github.com/pixelframe/shop/internal/payment/infrastructure/square"
	"github.com/pixelframe/shop/internal/server"
)

func main() {
	log := logging.New()

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Configuration
	httpAddr := env("HTTP_ADDR", ":8080")
	webDir := env("WEB_DIR", "web")
	otlpEndpoint := env("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	squareCfg := server.SquareConfig{
		ApplicationID: env("SQUARE_APPLICATION_ID", ""),
		LocationID:    env("SQUARE_LOCATION_ID", ""),
		Environment:   env("SQUARE_ENV", "sandbox"),
	}
	squareToken := env("SQUARE_ACCESS_TOKEN", "")

	tp, err := tracing.Init(ctx, "shop-server", otlpEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	if !squareCfg.Configured() || squareToken == "" {
		log.Warn("square credentials missing, payments disabled")
		// Empty location id keeps the payment service in its unconfigured
		// state; /api/payment answers 500 without touching the network.
		squareCfg.LocationID = ""
	}

	cat := catalog.Default()
	log.Info("catalog loaded", "products", cat.Len())

	gateway := square.NewClient(log, square.Config{
		AccessToken: squareToken,
		LocationID:  squareCfg.LocationID,
		Environment: squareCfg.Environment,
	})

	orderSvc := orderapp.NewService(cat)
	paymentSvc := paymentapp.NewService(log, gateway, squareCfg.LocationID)

	handler := server.New(log, squareCfg,
		cataloghttp.NewHandler(log, cat).Routes(),
		orderhttp.NewHandler(log, orderSvc).Routes(),
		paymenthttp.NewHandler(log, paymentSvc).Routes(),
		webDir,
	)

	srv := &http.Server{
		Addr:         httpAddr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", httpAddr, "square_configured", squareCfg.Configured())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("shop-server shutdown complete")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
