package parking

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type InstrumentedParkingLot struct {
	*ParkingLot
	telemetry *TelemetryProvider

	// Metrics
	admissions        metric.Int64Counter
	retrievals        metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	waitingGauge      metric.Int64UpDownCounter
	revenue           metric.Float64Counter
	operationDuration metric.Float64Histogram
	totalSlotsGauge   metric.Int64UpDownCounter
}

func NewInstrumentedParkingLot(lot *ParkingLot, telemetry *TelemetryProvider) (*InstrumentedParkingLot, error) {
	meter := telemetry.Meter()

	admissions, err := meter.Int64Counter("parking_admissions_total",
		metric.WithDescription("Total number of admission requests by outcome"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	retrievals, err := meter.Int64Counter("parking_retrievals_total",
		metric.WithDescription("Total number of retrieval requests by outcome"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	waitingGauge, err := meter.Int64UpDownCounter("parking_waiting_queue_length",
		metric.WithDescription("Current number of vehicles waiting for a slot"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	revenue, err := meter.Float64Counter("parking_revenue_total",
		metric.WithDescription("Parking fees collected"),
		metric.WithUnit("{currency}"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64UpDownCounter("parking_lot_total_slots",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	ipl := &InstrumentedParkingLot{
		ParkingLot:        lot,
		telemetry:         telemetry,
		admissions:        admissions,
		retrievals:        retrievals,
		occupancyGauge:    occupancyGauge,
		waitingGauge:      waitingGauge,
		revenue:           revenue,
		operationDuration: operationDuration,
		totalSlotsGauge:   totalSlotsGauge,
	}

	ctx := context.Background()
	totalSlotsGauge.Add(ctx, int64(lot.GetCapacity()))
	status := lot.GetStatus()
	occupancyGauge.Add(ctx, int64(status.Occupancy))
	waitingGauge.Add(ctx, int64(len(status.Waiting)))

	return ipl, nil
}

func (ipl *InstrumentedParkingLot) Admit(ctx context.Context, details VehicleDetails) (Admission, error) {
	ctx, span := ipl.telemetry.Tracer().Start(ctx, "parking_lot.admit",
		trace.WithAttributes(
			attribute.String("vehicle.registration_number", details.RegistrationNumber),
			attribute.String("vehicle.make", details.Make),
			attribute.String("vehicle.model", details.Model),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("checking_duplicates")

	admission, err := ipl.ParkingLot.Admit(details)

	labels := []attribute.KeyValue{attribute.String("operation", "admit")}

	switch {
	case errors.Is(err, ErrDuplicateVehicle):
		span.AddEvent("duplicate_vehicle")
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "duplicate"))
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	case admission.Status == Queued:
		span.AddEvent("vehicle_queued", trace.WithAttributes(
			attribute.Int("queue_position", admission.Position),
		))
		labels = append(labels, attribute.String("status", string(Queued)))
		ipl.waitingGauge.Add(ctx, 1)
	default:
		span.AddEvent("vehicle_admitted")
		labels = append(labels, attribute.String("status", string(Admitted)))
		ipl.occupancyGauge.Add(ctx, 1)
	}

	ipl.admissions.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))

	return admission, err
}

func (ipl *InstrumentedParkingLot) Retrieve(ctx context.Context, reg string, confirm ConfirmFunc) (Receipt, error) {
	ctx, span := ipl.telemetry.Tracer().Start(ctx, "parking_lot.retrieve",
		trace.WithAttributes(
			attribute.String("vehicle.registration_number", reg),
		))
	defer span.End()

	start := time.Now()

	if confirm != nil {
		inner := confirm
		confirm = func(q Quote) bool {
			span.AddEvent("awaiting_confirmation", trace.WithAttributes(
				attribute.String("quoted_fee", q.Fee.StringFixed(2)),
			))
			return inner(q)
		}
	}

	receipt, err := ipl.ParkingLot.Retrieve(reg, confirm)

	labels := []attribute.KeyValue{attribute.String("operation", "retrieve")}

	switch {
	case errors.Is(err, ErrNotFound):
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	case errors.Is(err, ErrCancelled):
		span.AddEvent("retrieval_cancelled")
		labels = append(labels, attribute.String("status", "cancelled"))
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	default:
		fee := receipt.Fee.InexactFloat64()
		span.SetAttributes(
			attribute.Float64("parking.fee", fee),
			attribute.Float64("parking.duration_hours", receipt.Duration.Hours()),
		)
		span.AddEvent("vehicle_retrieved")
		labels = append(labels, attribute.String("status", "success"))
		ipl.occupancyGauge.Add(ctx, -1)
		ipl.revenue.Add(ctx, fee)

		if receipt.Promoted != nil {
			span.AddEvent("waiting_vehicle_promoted", trace.WithAttributes(
				attribute.String("vehicle.registration_number", receipt.Promoted.RegistrationNumber),
			))
			ipl.waitingGauge.Add(ctx, -1)
			ipl.occupancyGauge.Add(ctx, 1)
		}
	}

	ipl.retrievals.Add(ctx, 1, metric.WithAttributes(labels...))
	ipl.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))

	return receipt, err
}

func (ipl *InstrumentedParkingLot) Quote(ctx context.Context, reg string) (Quote, error) {
	_, span := ipl.telemetry.Tracer().Start(ctx, "parking_lot.quote",
		trace.WithAttributes(
			attribute.String("vehicle.registration_number", reg),
		))
	defer span.End()

	q, err := ipl.ParkingLot.Quote(reg)
	if err != nil {
		span.AddEvent("vehicle_not_found")
		return q, err
	}

	span.SetAttributes(attribute.String("quoted_fee", q.Fee.StringFixed(2)))
	return q, nil
}

func (ipl *InstrumentedParkingLot) FindExact(ctx context.Context, reg string) (Vehicle, bool) {
	ctx, span := ipl.telemetry.Tracer().Start(ctx, "parking_lot.find",
		trace.WithAttributes(
			attribute.String("registration_number", reg),
		))
	defer span.End()

	start := time.Now()

	v, found := ipl.ParkingLot.FindExact(reg)

	labels := []attribute.KeyValue{attribute.String("operation", "find")}
	if found {
		span.AddEvent("vehicle_found", trace.WithAttributes(
			attribute.Bool("vehicle.parked", ipl.ParkingLot.IsParked(reg)),
		))
		labels = append(labels, attribute.String("status", "found"))
	} else {
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	}

	ipl.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))

	return v, found
}

func (ipl *InstrumentedParkingLot) Filter(ctx context.Context, vehicleMake, model string) []Vehicle {
	ctx, span := ipl.telemetry.Tracer().Start(ctx, "parking_lot.filter",
		trace.WithAttributes(
			attribute.String("filter.make", vehicleMake),
			attribute.String("filter.model", model),
		))
	defer span.End()

	start := time.Now()

	results := ipl.ParkingLot.Filter(vehicleMake, model)

	span.SetAttributes(attribute.Int("results_count", len(results)))

	labels := []attribute.KeyValue{
		attribute.String("operation", "filter"),
		attribute.String("status", "success"),
	}
	ipl.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))

	return results
}

func (ipl *InstrumentedParkingLot) GetStatus(ctx context.Context) Status {
	ctx, span := ipl.telemetry.Tracer().Start(ctx, "parking_lot.status")
	defer span.End()

	start := time.Now()

	status := ipl.ParkingLot.GetStatus()

	span.SetAttributes(
		attribute.Int("occupied_slots_count", status.Occupancy),
		attribute.Int("total_capacity", status.Capacity),
		attribute.Int("waiting_count", len(status.Waiting)),
	)

	labels := []attribute.KeyValue{
		attribute.String("operation", "status"),
		attribute.String("status", "success"),
	}
	ipl.operationDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(labels...))

	return status
}

func (ipl *InstrumentedParkingLot) GetStatistics(ctx context.Context) Statistics {
	_, span := ipl.telemetry.Tracer().Start(ctx, "parking_lot.statistics")
	defer span.End()

	stats := ipl.ParkingLot.GetStatistics()

	span.SetAttributes(
		attribute.String("total_revenue", stats.TotalRevenue.StringFixed(2)),
		attribute.Int("retrievals", stats.Retrievals),
		attribute.Int("archived", stats.Archived),
	)

	return stats
}
