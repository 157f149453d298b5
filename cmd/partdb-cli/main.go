package main

import (
	"context"
	"log/slog"
	"os"

	"partdb-tools/cmd/partdb-cli/commands"
	"partdb-tools/lib/serviceutil"
	"partdb-tools/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "partdb-cli")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to set up telemetry", "err", err)
	}
	// flush batched spans before the process exits, runs are short
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
