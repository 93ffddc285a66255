package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/David0179/DS-Parking-Mngt-System/internal/logging"
	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
	"github.com/David0179/DS-Parking-Mngt-System/internal/render"
	"github.com/David0179/DS-Parking-Mngt-System/internal/validation"
)

const menu = `
**************************************************
          Parking Management System
**************************************************
  1. Park a Vehicle          (park)
  2. Retrieve a Vehicle      (retrieve [reg])
  3. Search for a Vehicle    (search [reg])
  4. Apply Filter            (filter)
  5. Display Parking Lot     (list)
  6. Generate Statistics     (stats)
  7. Exit                    (exit)
     Other: status, archive, history [reg], report, help
**************************************************
`

type InstrumentedShell struct {
	lot       *parking.InstrumentedParkingLot
	scanner   *bufio.Scanner
	console   *render.Console
	telemetry *parking.TelemetryProvider
	sessionID string
	now       func() time.Time
}

func NewInstrumentedShell(lot *parking.InstrumentedParkingLot, telemetry *parking.TelemetryProvider, in io.Reader, console *render.Console) *InstrumentedShell {
	return &InstrumentedShell{
		lot:       lot,
		scanner:   bufio.NewScanner(in),
		console:   console,
		telemetry: telemetry,
		sessionID: uuid.New().String(),
		now:       time.Now,
	}
}

func (s *InstrumentedShell) SessionID() string {
	return s.sessionID
}

// Run reads commands until input ends, the operator exits or ctx is done.
func (s *InstrumentedShell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx = logging.WithSession(ctx, s.sessionID)
	ctx, span := tracer.Start(ctx, "shell.run",
		trace.WithAttributes(attribute.String("session.id", s.sessionID)))
	defer span.End()

	span.AddEvent("shell_started")
	logging.Debug(ctx, "shell started")

	s.console.Printf("%s", menu)
	for ctx.Err() == nil {
		s.console.Printf("\nEnter your choice (1-7): ")
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		// Create a new span for each command
		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		quit := s.processCommand(cmdCtx, input)
		cmdSpan.End()
		if quit {
			s.console.Println("\nExiting... Thank you for using the Parking Management System!")
			break
		}
	}

	span.AddEvent("shell_ended")
	logging.Debug(ctx, "shell ended")
}

func (s *InstrumentedShell) processCommand(ctx context.Context, input string) bool {
	span := trace.SpanFromContext(ctx)

	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	args := parts[1:]
	span.SetAttributes(attribute.String("command.name", command))

	switch command {
	case "1", "park":
		s.handlePark(ctx)
	case "2", "retrieve":
		s.handleRetrieve(ctx, args)
	case "3", "search":
		s.handleSearch(ctx, args)
	case "4", "filter":
		s.handleFilter(ctx)
	case "5", "list", "display":
		s.handleList(ctx)
	case "6", "stats", "statistics":
		s.handleStatistics(ctx)
	case "7", "exit", "quit":
		return true
	case "status":
		s.handleStatus(ctx)
	case "archive":
		s.handleArchive(ctx)
	case "history":
		s.handleHistory(ctx, args)
	case "report":
		s.handleReport(ctx)
	case "help", "menu":
		s.console.Printf("%s", menu)
	default:
		span.AddEvent("unknown_command", trace.WithAttributes(
			attribute.String("unknown_command", command),
		))
		s.console.Errorf("Invalid choice. Please enter a number between 1 and 7.\n")
	}
	return false
}

// prompt returns the next trimmed line; false means input ended.
func (s *InstrumentedShell) prompt(label string) (string, bool) {
	s.console.Printf("%s", label)
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

// promptValid re-asks until validate accepts the answer.
func (s *InstrumentedShell) promptValid(label string, validate func(string) error) (string, bool) {
	for {
		value, ok := s.prompt(label)
		if !ok {
			return "", false
		}
		err := validate(value)
		if err == nil {
			return value, true
		}
		s.console.Errorf("Error: %s.\n", err)
		label = "Invalid input. Please try again: "
	}
}

// registration takes the registration from args when given, otherwise
// prompts for it.
func (s *InstrumentedShell) registration(args []string, label string) (string, bool) {
	if len(args) > 0 {
		if err := validation.RegistrationNumber(args[0]); err != nil {
			s.console.Errorf("Error: %s.\n", err)
			return "", false
		}
		return args[0], true
	}
	return s.promptValid(label, validation.RegistrationNumber)
}

func (s *InstrumentedShell) handlePark(ctx context.Context) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.park_command")
	defer span.End()

	s.console.Println("\nEnter Vehicle Details:")

	var details parking.VehicleDetails
	fields := []struct {
		label    string
		validate func(string) error
		dst      *string
	}{
		{"   Registration Number: ", validation.RegistrationNumber, &details.RegistrationNumber},
		{"   Owner Name: ", validation.OwnerName, &details.OwnerName},
		{"   Vehicle Make: ", validation.VehicleMake, &details.Make},
		{"   Vehicle Model: ", validation.VehicleModel, &details.Model},
		{"   Vehicle Color: ", validation.VehicleColor, &details.Color},
		{"   Owner Contact Number: ", validation.OwnerContact, &details.OwnerContact},
	}

	for _, f := range fields {
		value, ok := s.promptValid(f.label, f.validate)
		if !ok {
			span.AddEvent("input_ended")
			return
		}
		*f.dst = value
	}

	span.SetAttributes(attribute.String("vehicle.registration_number", details.RegistrationNumber))

	if err := validation.Details(details); err != nil {
		span.RecordError(err)
		s.console.Errorf("\nError: %s.\n", err)
		return
	}

	admission, err := s.lot.Admit(ctx, details)
	if errors.Is(err, parking.ErrDuplicateVehicle) {
		span.AddEvent("duplicate_vehicle")
		s.console.Errorf("\nError: Vehicle with registration number %s already exists in the parking lot.\n", details.RegistrationNumber)
		return
	}
	if err != nil {
		span.RecordError(err)
		logging.Error(ctx, "admit failed", "registration", details.RegistrationNumber, "error", err)
		s.console.Errorf("\nError: %s\n", err)
		return
	}

	logging.Debug(ctx, "vehicle admission handled",
		"registration", details.RegistrationNumber,
		"status", string(admission.Status))

	if admission.Status == parking.Queued {
		span.AddEvent("vehicle_queued")
		s.console.Printf("\nParking is full. Vehicle added to waiting queue (position %d).\n", admission.Position)
		return
	}

	span.AddEvent("vehicle_parked")
	s.console.Successf("\nVehicle parked successfully.\n")
}

func (s *InstrumentedShell) handleRetrieve(ctx context.Context, args []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.retrieve_command")
	defer span.End()

	reg, ok := s.registration(args, "\nEnter the Registration Number of the Vehicle to Retrieve: ")
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("vehicle.registration_number", reg))

	confirm := func(q parking.Quote) bool {
		s.console.Println("\nPlease confirm the vehicle details before retrieval:")
		s.console.Printf("\n%s", render.VehicleDetails(q.Vehicle))
		s.console.Printf("Parking fee so far: $%s\n", q.Fee.StringFixed(2))
		answer, ok := s.prompt("\nDo you want to proceed with retrieving this vehicle? (y/n): ")
		return ok && (answer == "y" || answer == "Y")
	}

	receipt, err := s.lot.Retrieve(ctx, reg, confirm)
	switch {
	case errors.Is(err, parking.ErrNotFound):
		span.AddEvent("vehicle_not_found")
		s.console.Errorf("\nVehicle not found in the parking lot.\n")
		return
	case errors.Is(err, parking.ErrCancelled):
		span.AddEvent("retrieval_cancelled")
		logging.Debug(ctx, "retrieval cancelled", "registration", reg)
		s.console.Printf("\nVehicle retrieval cancelled.\n")
		return
	case err != nil:
		span.RecordError(err)
		logging.Error(ctx, "retrieve failed", "registration", reg, "error", err)
		s.console.Errorf("\nError: %s\n", err)
		return
	}

	logging.Debug(ctx, "vehicle retrieved",
		"registration", reg,
		"fee", receipt.Fee.StringFixed(2),
		"duration", receipt.Duration.String())

	span.AddEvent("vehicle_retrieved")
	s.console.Successf("\nVehicle retrieved successfully. Parking fee: $%s\n", receipt.Fee.StringFixed(2))

	if receipt.Promoted != nil {
		span.AddEvent("waiting_vehicle_parked", trace.WithAttributes(
			attribute.String("vehicle.registration_number", receipt.Promoted.RegistrationNumber),
		))
		s.console.Printf("Vehicle %s moved from the waiting queue into the freed slot.\n", receipt.Promoted.RegistrationNumber)
	}
}

func (s *InstrumentedShell) handleSearch(ctx context.Context, args []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.search_command")
	defer span.End()

	reg, ok := s.registration(args, "\nEnter the Registration Number of the Vehicle to Search: ")
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("registration_number", reg))

	v, found := s.lot.FindExact(ctx, reg)
	if !found {
		span.AddEvent("vehicle_not_found")
		s.console.Errorf("\nVehicle with registration number %s not found.\n", reg)
		return
	}

	state := "retrieved"
	if s.lot.IsParked(reg) {
		state = "parked"
	}
	span.AddEvent("vehicle_found")
	s.console.Printf("\nVehicle found (%s) - %s", state, render.VehicleDetails(v))
}

func (s *InstrumentedShell) handleFilter(ctx context.Context) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.filter_command")
	defer span.End()

	vehicleMake, ok := s.prompt("\nEnter vehicle make (or press Enter to skip): ")
	if !ok {
		return
	}
	model, ok := s.prompt("Enter vehicle model (or press Enter to skip): ")
	if !ok {
		return
	}

	if vehicleMake == "" && model == "" {
		span.AddEvent("empty_filter")
		s.console.Println("No inputs provided. Skipping advanced search.")
		return
	}

	results := s.lot.Filter(ctx, vehicleMake, model)
	span.SetAttributes(attribute.Int("results_count", len(results)))
	if len(results) == 0 {
		s.console.Println("\nNo vehicles found with the specified filters.")
		return
	}

	s.console.Println("\nSearch Results:")
	for _, v := range results {
		s.console.Printf("\n%s", render.VehicleDetails(v))
	}
}

func (s *InstrumentedShell) handleList(ctx context.Context) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.list_command")
	defer span.End()

	parked := s.lot.Parked()
	if len(parked) == 0 {
		span.AddEvent("parking_lot_empty")
		s.console.Println("\nNo vehicles currently parked.")
		return
	}

	s.console.Printf("\n%s", render.StatusLine(s.lot.GetStatus(ctx)))
	s.console.Println("\nList of Parked Vehicles:")
	for _, v := range parked {
		s.console.Highlightf("%s", render.VehicleDetails(v))
	}
	span.SetAttributes(attribute.Int("parked_count", len(parked)))
}

func (s *InstrumentedShell) handleStatus(ctx context.Context) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.status_command")
	defer span.End()

	s.console.Printf("\n%s", render.StatusLine(s.lot.GetStatus(ctx)))
}

func (s *InstrumentedShell) handleStatistics(ctx context.Context) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.statistics_command")
	defer span.End()

	stats := s.lot.GetStatistics(ctx)
	s.console.Printf("\nTotal revenue collected: $%s\n", stats.TotalRevenue.StringFixed(2))
	s.console.Printf("Vehicles admitted: %d, retrieved: %d, retrievals cancelled: %d\n",
		stats.Admissions, stats.Retrievals, stats.Cancellations)
	s.console.Printf("Archived records: %d\n", stats.Archived)
}

func (s *InstrumentedShell) handleArchive(ctx context.Context) {
	_, span := s.telemetry.Tracer().Start(ctx, "shell.archive_command")
	defer span.End()

	archive := s.lot.Archive()
	span.SetAttributes(attribute.Int("archived_count", len(archive)))
	if len(archive) == 0 {
		s.console.Println("\nNo vehicles in the system.")
		return
	}

	s.console.Println("\nArchived Vehicles:")
	for _, v := range archive {
		s.console.Printf("\n%s", render.VehicleDetails(v))
	}
}

func (s *InstrumentedShell) handleHistory(ctx context.Context, args []string) {
	_, span := s.telemetry.Tracer().Start(ctx, "shell.history_command")
	defer span.End()

	reg, ok := s.registration(args, "\nEnter the Registration Number: ")
	if !ok {
		return
	}

	visits := s.lot.History(reg)
	span.SetAttributes(attribute.Int("visits", len(visits)))
	if len(visits) == 0 {
		s.console.Errorf("\nVehicle with registration number %s not found.\n", reg)
		return
	}

	s.console.Printf("\n%d visit(s) for %s:\n", len(visits), reg)
	for _, v := range visits {
		s.console.Printf("\n%s", render.VehicleDetails(v))
	}
}

func (s *InstrumentedShell) handleReport(ctx context.Context) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.report_command")
	defer span.End()

	report := render.NewReport(ctx, s.now(), s.lot.GetStatus(ctx), s.lot.GetStatistics(ctx), s.lot.Parked())
	if err := render.WriteJSON(s.console.Writer(), report); err != nil {
		span.RecordError(err)
		logging.Error(ctx, "writing report failed", "error", err)
		s.console.Errorf("Error: %s\n", err)
	}
}
