package render

import (
	"fmt"
	"strings"

	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
)

const TimeLayout = "2006-01-02 15:04:05"

// VehicleDetails formats a vehicle the way every listing in the shell
// shows it.
func VehicleDetails(v parking.Vehicle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Registration: %s, Owner: %s, Entry Time: %s\n",
		v.RegistrationNumber, v.OwnerName, v.AdmittedAt.Local().Format(TimeLayout))
	fmt.Fprintf(&b, "Make: %s\n", v.Make)
	fmt.Fprintf(&b, "Model: %s\n", v.Model)
	fmt.Fprintf(&b, "Color: %s\n", v.Color)
	fmt.Fprintf(&b, "Owner Contact: %s\n", v.OwnerContact)
	return b.String()
}

// StatusLine is "Vehicles Parked: n/cap", followed by the waiting queue
// when it is not empty.
func StatusLine(s parking.Status) string {
	line := fmt.Sprintf("Vehicles Parked: %d/%d\n", s.Occupancy, s.Capacity)
	if len(s.Waiting) > 0 {
		line += fmt.Sprintf("Waiting Queue: %s\n", strings.Join(s.Waiting, " "))
	}
	return line
}
