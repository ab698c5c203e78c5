package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/sci/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("result", slog.String("expr", "2^10"), slog.Int("value", 1024))
	// Output:
	// level=INFO msg=result expr=2^10 value=1024
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelTrace))

	logger.Trace("rewrite", slog.String("to", "sin(30 * (pi / 180))"))
	// Output:
	// {"level":"TRACE","msg":"rewrite","to":"sin(30 * (pi / 180))"}
}
