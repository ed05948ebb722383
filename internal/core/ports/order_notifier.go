package ports

import (
	"context"

	"tracker/internal/core/domain/model/order"
)

// OrderNotifier pushes a status change to the clients currently observing
// an order. Delivery is best-effort: sessions that are disconnected or slow
// simply miss the notification and re-fetch over REST, so the method has no
// error to return. Implementations must not block on I/O.
type OrderNotifier interface {
	NotifyStatusChanged(ctx context.Context, aggregate *order.Order)
}
