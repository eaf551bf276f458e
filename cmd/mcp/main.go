package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"ytm-service/internal/app"
	"ytm-service/internal/config"
	"ytm-service/internal/logging"
	"ytm-service/internal/ytm"
)

var (
	transport string
	port      string
)

func main() {
	flag.StringVar(&transport, "transport", "stdio", "Transport type (stdio or http)")
	flag.StringVar(&port, "p", "8080", "Port to listen on for the http transport")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("ytm-mcp: config", "err", err)
		os.Exit(1)
	}
	// stdout carries the protocol on stdio, so logs go to stderr
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: os.Stderr})

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("ytm-mcp: startup", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	mcpServer := ytm.NewMCPServer(a.Service, "0.1.0")

	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(mcpServer)
		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(logging.RequestLogger(logger))
		r.Get("/health", a.Server.HandleHealth)
		r.Handle("/mcp", httpServer)

		logger.Info("ytm-mcp listening", "port", port)
		if err := http.ListenAndServe(":"+port, r); err != nil {
			logger.Error("ytm-mcp", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("ytm-mcp", "err", err)
		os.Exit(1)
	}
}
