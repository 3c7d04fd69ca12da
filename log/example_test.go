package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/vcfg/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelInfo),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("document resolved", slog.Int("constants", 3))
	logger.Debug("not shown")
	// Output:
	// level=INFO msg="document resolved" constants=3
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger = logger.With(slog.String("input", "app.vcfg"))
	logger.Warn("duplicate declaration", slog.String("name", "port"))
	// Output:
	// {"level":"WARN","msg":"duplicate declaration","input":"app.vcfg","name":"port"}
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.ParseLevel("error")),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Warn("warning message")
	logger.Error("error message", slog.String("error", "something failed"))
	// Output:
	// level=ERROR msg="error message" error="something failed"
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
	logger.DebugContext(ctx, "processing request with context")
}
