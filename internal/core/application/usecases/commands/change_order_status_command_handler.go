package commands

import (
	"context"
	"log/slog"
	"time"

	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies a status transition to an order.
// The transition and its history entry are persisted in one transaction, so
// a failed save leaves no observable partial effect: a subsequent read sees
// either the old status with the old history or the new status with the
// appended entry, never a mix.
//
// After a successful commit the handler notifies the order's room through
// the OrderNotifier. The notification is best-effort: a notifier failure is
// never a reason to fail the command, because the new status is already
// durable and clients can re-fetch it.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.OrderNotifier
	strict     bool
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
// strict selects the transition policy: when true, only the immediate
// forward step is allowed (no regression, no skipping); when false, any
// status from the enumeration is accepted.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.OrderNotifier,
	strict bool,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		strict:     strict,
		logger:     logger.With("component", "change_order_status"),
	}
}

// Handle processes the status change command.
// Loads the order, applies the transition under the configured policy,
// persists the updated aggregate, and broadcasts the change to the order's
// room after the commit succeeds. Returns the updated order.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.Status(), time.Now().UTC(), h.strict); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// Broadcast only after the new status is durable. A crash between
	// commit and notify leaves the room without this event; clients
	// recover by re-fetching the order.
	if h.notifier != nil {
		h.notifier.NotifyStatusChanged(ctx, aggregate)
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", aggregate.ID().String(),
		"status", aggregate.Status().String(),
	)

	return aggregate, nil
}
