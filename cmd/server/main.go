/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the MizanFlow rotation scheduling server: loads
  configuration, opens the SQLite snapshot store, wires the engine behind
  the HTTP facade, and runs with graceful shutdown.

CONFIGURATION:
  Environment (optionally via .env): PORT, DB_PATH, LOG_LEVEL.
  Flags override the environment:
    -port    HTTP server port
    -db      SQLite database path (":memory:" for in-memory)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, close the database, exit.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MizanFlowDEV/mizanflow/api"
	"github.com/MizanFlowDEV/mizanflow/config"
	"github.com/MizanFlowDEV/mizanflow/rotation"
	"github.com/MizanFlowDEV/mizanflow/store/sqlite"
)

func main() {
	cfg := config.Load()

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	// Holiday data is sourced by the deployment; the engine only consumes
	// the oracle. Without one, no holiday overlays are applied.
	engine := rotation.NewEngine(rotation.NoHolidays{})

	handler := api.NewHandler(store, engine, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", *port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server stopped")
}
