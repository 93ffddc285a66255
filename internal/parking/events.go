package parking

import (
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"
)

type EventKind string

const (
	EventAdmitted  EventKind = "admitted"
	EventQueued    EventKind = "queued"
	EventRetrieved EventKind = "retrieved"
	EventCancelled EventKind = "cancelled"
)

// Event describes a state change (or a declined one) in the lot.
// Fee is only set for EventRetrieved.
type Event struct {
	ID                 xid.ID
	Kind               EventKind
	RegistrationNumber string
	OwnerName          string
	Fee                decimal.Decimal
	At                 time.Time
}

func newEvent(kind EventKind, v Vehicle, at time.Time) Event {
	return Event{
		ID:                 xid.NewWithTime(at),
		Kind:               kind,
		RegistrationNumber: v.RegistrationNumber,
		OwnerName:          v.OwnerName,
		At:                 at,
	}
}

// String renders the event the way the journal records it.
func (e Event) String() string {
	switch e.Kind {
	case EventAdmitted:
		return fmt.Sprintf("Parked vehicle: %s %s", e.RegistrationNumber, e.OwnerName)
	case EventQueued:
		return fmt.Sprintf("Vehicle added to waiting queue: %s", e.RegistrationNumber)
	case EventRetrieved:
		return fmt.Sprintf("Retrieved vehicle: %s, Fee: $%s", e.RegistrationNumber, e.Fee.StringFixed(2))
	case EventCancelled:
		return fmt.Sprintf("Retrieval cancelled: %s", e.RegistrationNumber)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.RegistrationNumber)
}

// Observer receives every event emitted by a ParkingLot. Implementations
// must not call back into the lot.
type Observer interface {
	Observe(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Observers fans an event out to several observers in order.
type Observers []Observer

func (o Observers) Observe(e Event) {
	for _, obs := range o {
		obs.Observe(e)
	}
}

type discardObserver struct{}

func (discardObserver) Observe(Event) {}
