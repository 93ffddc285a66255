package render

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David0179/DS-Parking-Mngt-System/internal/logging"
	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
)

func sampleVehicle() parking.Vehicle {
	return parking.NewVehicle(parking.VehicleDetails{
		RegistrationNumber: "ABC123",
		OwnerName:          "Jane Doe",
		Make:               "Toyota",
		Model:              "Corolla",
		Color:              "Red",
		OwnerContact:       "0123456789",
	}, time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local))
}

func TestVehicleDetails(t *testing.T) {
	out := VehicleDetails(sampleVehicle())

	assert.Equal(t,
		"Registration: ABC123, Owner: Jane Doe, Entry Time: 2024-05-01 09:30:00\n"+
			"Make: Toyota\nModel: Corolla\nColor: Red\nOwner Contact: 0123456789\n",
		out)
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "Vehicles Parked: 1/5\n", StatusLine(parking.Status{Occupancy: 1, Capacity: 5}))
	assert.Equal(t, "Vehicles Parked: 2/2\nWaiting Queue: AAA111 BBB222\n",
		StatusLine(parking.Status{Occupancy: 2, Capacity: 2, Waiting: []string{"AAA111", "BBB222"}}))
}

func TestPlainConsoleHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	c := NewPlainConsole(&buf)

	c.Errorf("Error: %s\n", "boom")
	c.Highlightf("listed\n")

	assert.Equal(t, "Error: boom\nlisted\n", buf.String())
}

func TestColoredConsole(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{w: &buf, color: true}

	c.Errorf("bad")

	assert.Equal(t, red+"bad"+reset, buf.String())
}

func TestWriteJSONReport(t *testing.T) {
	ctx := logging.WithSession(context.Background(), "session-1")
	status := parking.Status{Occupancy: 1, Capacity: 3}
	stats := parking.Statistics{TotalRevenue: decimal.RequireFromString("12.5"), Retrievals: 1, Archived: 2}

	report := NewReport(ctx, time.Unix(0, 0).UTC(), status, stats, []parking.Vehicle{sampleVehicle()})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, report))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	statusOut := decoded["status"].(map[string]any)
	assert.EqualValues(t, 2, statusOut["available"])
	assert.Equal(t, []any{}, statusOut["waiting"])

	statsOut := decoded["statistics"].(map[string]any)
	assert.Equal(t, "12.50", statsOut["total_revenue"])

	parked := decoded["parked"].([]any)
	require.Len(t, parked, 1)
	assert.Equal(t, "ABC123", parked[0].(map[string]any)["registration"])

	meta := decoded["meta"].(map[string]any)
	assert.Equal(t, "session-1", meta["session_id"])
	assert.NotContains(t, meta, "trace_id")
}

func TestReportWithoutMeta(t *testing.T) {
	report := NewReport(context.Background(), time.Now(), parking.Status{}, parking.Statistics{}, nil)
	assert.Nil(t, report.Meta)
	assert.Empty(t, report.Parked)
}
