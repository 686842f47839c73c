package alerts

import (
	"context"
	"log/slog"

	"recallguard/internal/recall/ports"
)

// LogDispatcher writes alerts to the log. Used when no broker is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) SendAlert(ctx context.Context, alert ports.Alert) error {
	d.logger.InfoContext(ctx, "recall alert",
		"recall_id", alert.RecallID.String(),
		"batch_id", alert.BatchID.String(),
		"caller", alert.Caller.String(),
		"message", alert.Message,
	)
	return nil
}
