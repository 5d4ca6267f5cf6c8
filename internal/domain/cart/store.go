package cart

import "context"

// Store keeps carts scoped to a browsing session, outside the durable
// transaction boundary. Implementations expire idle carts.
type Store interface {
	// Get returns the cart for the session, or an empty cart if none exists.
	Get(ctx context.Context, sessionID string) (*Cart, error)
	// Put stores the cart for the session, refreshing its idle expiry.
	Put(ctx context.Context, sessionID string, cart *Cart) error
	// Remove deletes the session's cart.
	Remove(ctx context.Context, sessionID string) error
}
