package parking

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type AdmissionStatus string

const (
	Admitted AdmissionStatus = "admitted"
	Queued   AdmissionStatus = "queued"
)

// Admission is the outcome of a successful Admit call. Position is the
// 1-based place in the waiting queue and is only set when Queued.
type Admission struct {
	Status   AdmissionStatus
	Vehicle  Vehicle
	Position int
	Events   []Event
}

// Quote is the fee a parked vehicle would be charged if it left at At.
type Quote struct {
	Vehicle Vehicle
	Fee     decimal.Decimal
	At      time.Time
}

// Receipt is the outcome of a confirmed retrieval. Promoted is set when a
// waiting vehicle took the freed slot.
type Receipt struct {
	Vehicle  Vehicle
	Fee      decimal.Decimal
	Duration time.Duration
	Promoted *Vehicle
	Events   []Event
}

// ConfirmFunc is asked before a retrieval is committed. Returning false
// leaves the lot untouched.
type ConfirmFunc func(q Quote) bool

type Status struct {
	Occupancy int
	Capacity  int
	Waiting   []string
}

type Statistics struct {
	TotalRevenue  decimal.Decimal
	Admissions    int
	Retrievals    int
	Cancellations int
	Archived      int
}

type Option func(*ParkingLot)

// WithClock replaces time.Now as the source of admission and retrieval
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(pl *ParkingLot) {
		pl.now = now
	}
}

func WithObserver(o Observer) Option {
	return func(pl *ParkingLot) {
		pl.observer = o
	}
}

// ParkingLot keeps the archive index, the lookup table, the admission
// stack and the waiting queue consistent with each other. It is not safe
// for concurrent use.
type ParkingLot struct {
	capacity int
	rate     decimal.Decimal

	index   *vehicleIndex
	parked  *lookupTable
	stack   *admissionStack
	waiting *waitingQueue

	occupancy int
	stats     Statistics

	now      func() time.Time
	observer Observer
}

func NewParkingLot(capacity int, ratePerHour decimal.Decimal, opts ...Option) *ParkingLot {
	if capacity < 0 {
		capacity = 0
	}

	index := newVehicleIndex()
	pl := &ParkingLot{
		capacity: capacity,
		rate:     ratePerHour,
		index:    index,
		parked:   newLookupTable(capacity),
		stack:    newAdmissionStack(index, capacity),
		waiting:  newWaitingQueue(),
		stats:    Statistics{TotalRevenue: decimal.Zero},
		now:      time.Now,
		observer: discardObserver{},
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

func (pl *ParkingLot) GetCapacity() int {
	return pl.capacity
}

func (pl *ParkingLot) Rate() decimal.Decimal {
	return pl.rate
}

// Admit parks the vehicle if a slot is free and queues it otherwise.
// A registration that is already parked or already waiting is rejected
// before anything changes. The waiting check goes beyond a lookup-table
// duplicate test so that promotion can never park a registration that is
// still queued.
func (pl *ParkingLot) Admit(details VehicleDetails) (Admission, error) {
	reg := details.RegistrationNumber
	if pl.parked.contains(reg) || pl.waiting.contains(reg) {
		return Admission{}, fmt.Errorf("%w: %s", ErrDuplicateVehicle, reg)
	}

	now := pl.now()
	v := NewVehicle(details, now)

	if pl.occupancy >= pl.capacity {
		pl.waiting.enqueue(v)
		ev := pl.emit(newEvent(EventQueued, v, now))
		return Admission{
			Status:   Queued,
			Vehicle:  v,
			Position: pl.waiting.len(),
			Events:   []Event{ev},
		}, nil
	}

	h := pl.index.insert(v)
	pl.stack.push(h)
	pl.parked.put(reg, h)
	pl.occupancy++
	pl.stats.Admissions++

	ev := pl.emit(newEvent(EventAdmitted, v, now))
	return Admission{Status: Admitted, Vehicle: v, Events: []Event{ev}}, nil
}

// Quote prices the retrieval of a parked vehicle without changing state.
func (pl *ParkingLot) Quote(reg string) (Quote, error) {
	h, ok := pl.parked.get(reg)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrNotFound, reg)
	}

	v := pl.index.vehicle(h)
	now := pl.now()
	return Quote{Vehicle: v, Fee: CalculateFee(v.AdmittedAt, now, pl.rate), At: now}, nil
}

// Retrieve releases a parked vehicle once confirm agrees, charges the fee
// and hands the freed slot to the head of the waiting queue. A nil
// confirm commits without asking.
func (pl *ParkingLot) Retrieve(reg string, confirm ConfirmFunc) (Receipt, error) {
	quote, err := pl.Quote(reg)
	if err != nil {
		return Receipt{}, err
	}

	if confirm != nil && !confirm(quote) {
		pl.stats.Cancellations++
		pl.emit(newEvent(EventCancelled, quote.Vehicle, pl.now()))
		return Receipt{}, fmt.Errorf("%w: %s", ErrCancelled, reg)
	}

	now := pl.now()
	v := quote.Vehicle
	fee := CalculateFee(v.AdmittedAt, now, pl.rate)

	pl.stack.removeMatching(reg)
	pl.parked.remove(reg)
	pl.occupancy--
	pl.stats.Retrievals++
	pl.stats.TotalRevenue = pl.stats.TotalRevenue.Add(fee)

	ev := newEvent(EventRetrieved, v, now)
	ev.Fee = fee
	receipt := Receipt{
		Vehicle:  v,
		Fee:      fee,
		Duration: now.Sub(v.AdmittedAt),
		Events:   []Event{pl.emit(ev)},
	}

	if !pl.waiting.isEmpty() && pl.occupancy < pl.capacity {
		next, _ := pl.waiting.dequeue()
		admission, err := pl.Admit(next.Details())
		if err == nil {
			receipt.Promoted = &admission.Vehicle
			receipt.Events = append(receipt.Events, admission.Events...)
		}
	}

	return receipt, nil
}

// FindExact looks a registration up in the archive, so retrieved vehicles
// are still found. A re-admitted registration resolves to its first
// archived record; History returns all of them.
func (pl *ParkingLot) FindExact(reg string) (Vehicle, bool) {
	return pl.index.findExact(reg)
}

// IsParked reports whether reg currently occupies a slot.
func (pl *ParkingLot) IsParked(reg string) bool {
	return pl.parked.contains(reg)
}

func (pl *ParkingLot) History(reg string) []Vehicle {
	return pl.index.history(reg)
}

// Filter returns archived vehicles matching make and model; empty values
// match anything.
func (pl *ParkingLot) Filter(vehicleMake, model string) []Vehicle {
	return pl.index.findAll(VehicleFilter{Make: vehicleMake, Model: model})
}

// Parked lists the vehicles in the lot, most recently admitted first.
func (pl *ParkingLot) Parked() []Vehicle {
	handles := pl.stack.topToBottom()
	out := make([]Vehicle, len(handles))
	for i, h := range handles {
		out[i] = pl.index.vehicle(h)
	}
	return out
}

// Archive lists every vehicle ever admitted, ordered by registration.
func (pl *ParkingLot) Archive() []Vehicle {
	out := make([]Vehicle, 0, pl.index.len())
	pl.index.ascend(func(v Vehicle) bool {
		out = append(out, v)
		return true
	})
	return out
}

func (pl *ParkingLot) GetStatus() Status {
	return Status{
		Occupancy: pl.occupancy,
		Capacity:  pl.capacity,
		Waiting:   pl.waiting.registrations(),
	}
}

func (pl *ParkingLot) GetStatistics() Statistics {
	stats := pl.stats
	stats.Archived = pl.index.len()
	return stats
}

func (pl *ParkingLot) emit(e Event) Event {
	pl.observer.Observe(e)
	return e
}
