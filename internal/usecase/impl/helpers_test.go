package impl

import (
	"io"
	"log/slog"
)

// testLogger discards all output so assertions stay about behavior, not logs.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
