package render

import (
	"context"
	"io"
	"time"

	"github.com/sugawarayuuta/sonnet"
	"go.opentelemetry.io/otel/trace"

	"github.com/David0179/DS-Parking-Mngt-System/internal/logging"
	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type VehicleReport struct {
	Registration string    `json:"registration"`
	Owner        string    `json:"owner"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Color        string    `json:"color"`
	Contact      string    `json:"contact"`
	AdmittedAt   time.Time `json:"admitted_at"`
}

type StatusReport struct {
	Capacity  int      `json:"capacity"`
	Occupied  int      `json:"occupied"`
	Available int      `json:"available"`
	Waiting   []string `json:"waiting"`
}

type StatisticsReport struct {
	TotalRevenue  string `json:"total_revenue"`
	Admissions    int    `json:"admissions"`
	Retrievals    int    `json:"retrievals"`
	Cancellations int    `json:"cancellations"`
	Archived      int    `json:"archived"`
}

type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Status      StatusReport     `json:"status"`
	Statistics  StatisticsReport `json:"statistics"`
	Parked      []VehicleReport  `json:"parked"`
	Meta        *Meta            `json:"meta,omitempty"`
}

func NewVehicleReport(v parking.Vehicle) VehicleReport {
	return VehicleReport{
		Registration: v.RegistrationNumber,
		Owner:        v.OwnerName,
		Make:         v.Make,
		Model:        v.Model,
		Color:        v.Color,
		Contact:      v.OwnerContact,
		AdmittedAt:   v.AdmittedAt,
	}
}

func NewReport(ctx context.Context, at time.Time, status parking.Status, stats parking.Statistics, parked []parking.Vehicle) Report {
	waiting := status.Waiting
	if waiting == nil {
		waiting = []string{}
	}

	vehicles := make([]VehicleReport, len(parked))
	for i, v := range parked {
		vehicles[i] = NewVehicleReport(v)
	}

	return Report{
		GeneratedAt: at,
		Status: StatusReport{
			Capacity:  status.Capacity,
			Occupied:  status.Occupancy,
			Available: status.Capacity - status.Occupancy,
			Waiting:   waiting,
		},
		Statistics: StatisticsReport{
			TotalRevenue:  stats.TotalRevenue.StringFixed(2),
			Admissions:    stats.Admissions,
			Retrievals:    stats.Retrievals,
			Cancellations: stats.Cancellations,
			Archived:      stats.Archived,
		},
		Parked: vehicles,
		Meta:   extractMeta(ctx),
	}
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	meta.SessionID = logging.SessionID(ctx)

	if *meta == (Meta{}) {
		return nil
	}
	return meta
}

// WriteJSON writes data as a single JSON line.
func WriteJSON(w io.Writer, data any) error {
	b, err := sonnet.Marshal(data)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
