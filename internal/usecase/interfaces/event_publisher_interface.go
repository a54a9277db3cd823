package interfaces

import "context"

//go:generate mockgen -source=event_publisher_interface.go -destination=mocks/event_publisher_interface.go -package=mock_interfaces

// IEventPublisher publishes domain events (e.g. booking.confirmed) for
// downstream consumers. Publishing is best effort: callers log failures.
type IEventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}
