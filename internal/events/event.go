// Package events carries catalog change notifications to downstream
// consumers.
package events

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	TypeProductCreated = "product.created"
	TypeProductDeleted = "product.deleted"
)

// Event is the envelope written to the change topic. Payload is the product
// snapshot at the time of the change.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ProductID  int64     `json:"product_id"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(typ string, productID int64, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		ProductID:  productID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Key partitions events by product so a consumer sees one product's
// changes in order.
func (e Event) Key() string { return strconv.FormatInt(e.ProductID, 10) }

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
