package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/dianlight/debugformat"
	"github.com/dianlight/debugformat/exception"
)

type connection struct {
	Host    string
	Port    int
	Retries []int
}

func main() {
	cfg, err := debugformat.LoadConfig(os.Getenv("DEBUGFMT_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Level = "silly"

	logger, closer, err := debugformat.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx := context.Background()

	fmt.Println("1. Levels:")
	logger.Log(ctx, debugformat.LevelSilly, "silly message")
	logger.Debug("debug message", "step", 1)
	logger.Log(ctx, debugformat.LevelVerbose, "verbose message")
	logger.Log(ctx, debugformat.LevelHTTP, "GET /health", "status", 200)
	logger.Info("server started", "port", 8080, "tls", false)
	logger.Warn("disk almost full", "free_mb", 12)

	fmt.Println()
	fmt.Println("2. Structured values:")
	logger.Info("connecting", "conn", connection{Host: "localhost", Port: 5432, Retries: []int{1, 2, 4}})
	logger.With("name", "db").WithGroup("query").Info("slow query", "took_ms", 1500, "table", "users")

	fmt.Println()
	fmt.Println("3. Errors:")
	detailed := errors.WithDetails(errors.New("database connection failed"), "host", "localhost")
	logger.Error("request failed", "err", detailed)

	fmt.Println()
	fmt.Println("4. Direct formatting:")
	wd, _ := os.Getwd()
	f := debugformat.New(debugformat.Config{ProcessName: "demo", BasePath: wd})
	opts := f.DefaultOptions()
	opts.MaxExceptionLines = exception.Auto
	rec := debugformat.NewRecord("info", "Hello world!", "user", "alice", "attempt", 3)
	fmt.Println(f.Transform(rec, opts).Formatted)

	trace := &exception.Error{
		Message: "TypeError: boom",
		Trace: "TypeError: boom\n" +
			"    at handler (" + wd + "/src/a.js:1:1)\n" +
			"    at Layer.handle (/usr/lib/node_modules/express/lib/router/layer.js:95:5)",
	}
	rec = debugformat.NewRecord("error", "unhandled", "err", trace)
	fmt.Println(f.Transform(rec, opts).Formatted)
}
