// Package notifier emits reservation lifecycle notifications. The current
// implementation writes structured log records addressed to the configured
// admin mailbox; swapping in a real mail transport only touches this
// package.
package notifier

import (
	"context"
	"log/slog"

	"reservas-backend/internal/pkg/config"
	"reservas-backend/internal/usecase/commands"
	"reservas-backend/internal/usecase/queries"
)

type LogNotifier struct {
	cfg config.NotifyConfig
}

func NewLogNotifier(cfg config.NotifyConfig) commands.Notifier {
	return &LogNotifier{cfg: cfg}
}

func (n *LogNotifier) ReservationCreated(ctx context.Context, res *queries.ReservationView) error {
	n.emit(ctx, "reservation created", res)
	return nil
}

func (n *LogNotifier) ReservationConfirmed(ctx context.Context, res *queries.ReservationView) error {
	n.emit(ctx, "reservation confirmed", res)
	return nil
}

func (n *LogNotifier) ReservationCancelled(ctx context.Context, res *queries.ReservationView) error {
	n.emit(ctx, "reservation cancelled", res)
	return nil
}

func (n *LogNotifier) emit(ctx context.Context, event string, res *queries.ReservationView) {
	slog.InfoContext(ctx, "notification: "+event,
		"from", n.cfg.FromName,
		"admin_email", n.cfg.AdminEmail,
		"customer_email", res.CustomerEmail,
		"reservation_id", res.ID,
		"space", res.SpaceName,
		"start_date", res.StartDate.Format("2006-01-02"),
		"total", res.TotalAmount.StringFixed(2),
	)
}
