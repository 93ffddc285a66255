package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
	"github.com/David0179/DS-Parking-Mngt-System/internal/render"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	return c.t
}

func newTestShell(t *testing.T, capacity int, input string) (*InstrumentedShell, *parking.InstrumentedParkingLot, *bytes.Buffer) {
	t.Helper()
	clock := &testClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	telemetry := parking.NewNoopTelemetryProvider()

	lot, err := parking.NewInstrumentedParkingLot(
		parking.NewParkingLot(capacity, decimal.NewFromInt(10), parking.WithClock(clock.now)), telemetry)
	require.NoError(t, err)

	var out bytes.Buffer
	sh := NewInstrumentedShell(lot, telemetry, strings.NewReader(input), render.NewPlainConsole(&out))
	sh.now = clock.now
	return sh, lot, &out
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func parkInput(reg, vehicleMake, model string) []string {
	return []string{"1", reg, "Jane Doe", vehicleMake, model, "Red", "0123456789"}
}

func TestShellParksAndLists(t *testing.T) {
	input := append(parkInput("ABC123", "Toyota", "Corolla"), "5", "7")
	sh, lot, out := newTestShell(t, 2, lines(input...))

	sh.Run(context.Background())

	assert.True(t, lot.IsParked("ABC123"))
	assert.Contains(t, out.String(), "Vehicle parked successfully.")
	assert.Contains(t, out.String(), "Vehicles Parked: 1/2")
	assert.Contains(t, out.String(), "Registration: ABC123, Owner: Jane Doe")
	assert.Contains(t, out.String(), "Thank you for using the Parking Management System!")
}

func TestShellReprompts(t *testing.T) {
	input := []string{"1", "0AB", "ab", "ABC123", "Jane Doe", "T0y0ta", "Toyota", "Corolla", "Red", "123", "0123456789", "exit"}
	sh, lot, out := newTestShell(t, 2, lines(input...))

	sh.Run(context.Background())

	assert.True(t, lot.IsParked("ABC123"))
	assert.Equal(t, 4, strings.Count(out.String(), "Invalid input. Please try again:"))
}

func TestShellQueuesWhenFull(t *testing.T) {
	input := append(parkInput("AAA111", "Honda", "Civic"), parkInput("BBB222", "Honda", "Civic")...)
	input = append(input, parkInput("AAA111", "Honda", "Civic")...)
	input = append(input, "status")
	sh, _, out := newTestShell(t, 1, lines(input...))

	sh.Run(context.Background())

	assert.Contains(t, out.String(), "Parking is full. Vehicle added to waiting queue (position 1).")
	assert.Contains(t, out.String(), "Vehicle with registration number AAA111 already exists")
	assert.Contains(t, out.String(), "Waiting Queue: BBB222")
}

func TestShellRetrieve(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		wantParked bool
		wantOutput string
	}{
		{"confirmed", "y", false, "Vehicle retrieved successfully. Parking fee: $0.00"},
		{"upper case confirmation", "Y", false, "Vehicle retrieved successfully."},
		{"declined", "n", true, "Vehicle retrieval cancelled."},
		{"anything else declines", "yes", true, "Vehicle retrieval cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append(parkInput("ABC123", "Toyota", "Corolla"), "2", "ABC123", tt.answer)
			sh, lot, out := newTestShell(t, 2, lines(input...))

			sh.Run(context.Background())

			assert.Equal(t, tt.wantParked, lot.IsParked("ABC123"))
			assert.Contains(t, out.String(), "Please confirm the vehicle details before retrieval:")
			assert.Contains(t, out.String(), "Parking fee so far: $0.00")
			assert.Contains(t, out.String(), tt.wantOutput)
		})
	}
}

func TestShellRetrievePromotes(t *testing.T) {
	input := append(parkInput("AAA111", "Honda", "Civic"), parkInput("BBB222", "Honda", "Civic")...)
	input = append(input, "retrieve AAA111", "y")
	sh, lot, out := newTestShell(t, 1, lines(input...))

	sh.Run(context.Background())

	assert.True(t, lot.IsParked("BBB222"))
	assert.Contains(t, out.String(), "Vehicle BBB222 moved from the waiting queue into the freed slot.")
}

func TestShellRetrieveUnknown(t *testing.T) {
	sh, _, out := newTestShell(t, 1, lines("2", "ZZZ999"))

	sh.Run(context.Background())

	assert.Contains(t, out.String(), "Vehicle not found in the parking lot.")
}

func TestShellSearchFindsRetrievedVehicles(t *testing.T) {
	input := append(parkInput("ABC123", "Toyota", "Corolla"), "2", "ABC123", "y", "search ABC123", "3", "XYZ789")
	sh, _, out := newTestShell(t, 2, lines(input...))

	sh.Run(context.Background())

	assert.Contains(t, out.String(), "Vehicle found (retrieved) - Registration: ABC123")
	assert.Contains(t, out.String(), "Vehicle with registration number XYZ789 not found.")
}

func TestShellFilter(t *testing.T) {
	input := append(parkInput("AAA111", "Toyota", "Corolla"), parkInput("BBB222", "Honda", "Civic")...)
	input = append(input, "4", "Honda", "", "4", "", "", "4", "Ford", "")
	sh, _, out := newTestShell(t, 5, lines(input...))

	sh.Run(context.Background())

	assert.Contains(t, out.String(), "Search Results:")
	assert.Contains(t, out.String(), "Registration: BBB222")
	assert.Contains(t, out.String(), "No inputs provided. Skipping advanced search.")
	assert.Contains(t, out.String(), "No vehicles found with the specified filters.")
}

func TestShellStatisticsAndArchive(t *testing.T) {
	input := append(parkInput("MMM111", "Toyota", "Corolla"), parkInput("AAA111", "Honda", "Civic")...)
	input = append(input, "2", "MMM111", "y", "6", "archive", "history AAA111")
	sh, _, out := newTestShell(t, 5, lines(input...))

	sh.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Total revenue collected: $0.00")
	assert.Contains(t, text, "Vehicles admitted: 2, retrieved: 1, retrievals cancelled: 0")
	assert.Contains(t, text, "Archived records: 2")
	assert.Contains(t, text, "1 visit(s) for AAA111:")

	archive := text[strings.Index(text, "Archived Vehicles:"):]
	assert.Less(t, strings.Index(archive, "AAA111"), strings.Index(archive, "MMM111"))
}

func TestShellEmptyList(t *testing.T) {
	sh, _, out := newTestShell(t, 1, lines("list", "archive"))

	sh.Run(context.Background())

	assert.Contains(t, out.String(), "No vehicles currently parked.")
	assert.Contains(t, out.String(), "No vehicles in the system.")
}

func TestShellReport(t *testing.T) {
	input := append(parkInput("ABC123", "Toyota", "Corolla"), "report")
	sh, _, out := newTestShell(t, 2, lines(input...))

	sh.Run(context.Background())

	assert.Contains(t, out.String(), `"registration":"ABC123"`)
	assert.Contains(t, out.String(), `"session_id":"`+sh.SessionID()+`"`)
}

func TestShellInvalidChoice(t *testing.T) {
	sh, _, out := newTestShell(t, 1, lines("9", "fly"))

	sh.Run(context.Background())

	assert.Equal(t, 2, strings.Count(out.String(), "Invalid choice. Please enter a number between 1 and 7."))
}

func TestShellStopsOnCancelledContext(t *testing.T) {
	sh, lot, _ := newTestShell(t, 1, lines(parkInput("ABC123", "Toyota", "Corolla")...))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sh.Run(ctx)

	assert.False(t, lot.IsParked("ABC123"))
}

func TestShellStopsMidPrompt(t *testing.T) {
	sh, lot, _ := newTestShell(t, 1, lines("1", "ABC123", "Jane Doe"))

	sh.Run(context.Background())

	assert.Zero(t, lot.GetStatus(context.Background()).Occupancy)
}

func TestShellCommandSpansParentLotSpans(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	telemetry := parking.NewTelemetryProviderWith(tp, metricnoop.NewMeterProvider())

	lot, err := parking.NewInstrumentedParkingLot(parking.NewParkingLot(2, decimal.NewFromInt(10)), telemetry)
	require.NoError(t, err)

	input := append(parkInput("ABC123", "Toyota", "Corolla"), "search ABC123", "retrieve ABC123", "y", "4", "Toyota", "")
	var out bytes.Buffer
	sh := NewInstrumentedShell(lot, telemetry, strings.NewReader(lines(input...)), render.NewPlainConsole(&out))
	sh.Run(context.Background())

	byName := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range spans.Ended() {
		byName[s.Name()] = s
	}

	for lotSpan, cmdSpan := range map[string]string{
		"parking_lot.admit":    "shell.park_command",
		"parking_lot.find":     "shell.search_command",
		"parking_lot.retrieve": "shell.retrieve_command",
		"parking_lot.filter":   "shell.filter_command",
	} {
		child, ok := byName[lotSpan]
		require.True(t, ok, lotSpan)
		parent, ok := byName[cmdSpan]
		require.True(t, ok, cmdSpan)
		assert.Equal(t, parent.SpanContext().SpanID(), child.Parent().SpanID(), "%s parent", lotSpan)
	}
}
