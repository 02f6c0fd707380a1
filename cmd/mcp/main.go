package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/docsense/internal/adapters/mcp"
	"github.com/kirillkom/docsense/internal/bootstrap"
	"github.com/kirillkom/docsense/internal/config"
	"github.com/kirillkom/docsense/internal/observability/logging"
)

var version = "dev"

func main() {
	cfg := config.Load()
	// stdout carries the MCP protocol, so logs go to stderr.
	slog.SetDefault(logging.NewLoggerTo(os.Stderr, "mcp", cfg.LogLevel, cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, "mcp")
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	tools := mcpadapter.New(mcpadapter.Deps{
		Ingestor:     app.Ingest,
		Answerer:     app.Answers,
		Documents:    app.Documents,
		Validator:    app.Inspector,
		Inspector:    app.Inspector,
		MaxFileBytes: cfg.MaxUploadBytes,
	})

	slog.Info("mcp_serving_stdio", "version", version)
	stdio := server.NewStdioServer(tools.MCPServer("docsense", version))
	stdio.SetErrorLogger(log.New(os.Stderr, "mcp: ", log.LstdFlags))
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		slog.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
