package parking

import "time"

// VehicleDetails are the identity fields supplied when a vehicle arrives.
// The validate tags describe the operator input format; letterspace,
// alnumspace, nooutspace and singlespace are registered by the validation
// package.
type VehicleDetails struct {
	RegistrationNumber string `validate:"min=3,max=10,startsnotwith=0,alphanum"`
	OwnerName          string `validate:"required,letterspace,nooutspace,singlespace,max=100"`
	Make               string `validate:"required,letterspace,nooutspace,max=50"`
	Model              string `validate:"required,alnumspace,nooutspace,max=50"`
	Color              string `validate:"required,letterspace,nooutspace,max=30"`
	OwnerContact       string `validate:"required,number,min=10,max=15"`
}

// Vehicle is an admitted (or waiting) vehicle. Values are never mutated
// after creation; promotion from the waiting queue builds a new one.
type Vehicle struct {
	VehicleDetails
	AdmittedAt time.Time
}

func NewVehicle(details VehicleDetails, admittedAt time.Time) Vehicle {
	return Vehicle{
		VehicleDetails: details,
		AdmittedAt:     admittedAt,
	}
}

func (v Vehicle) Details() VehicleDetails {
	return v.VehicleDetails
}
