package parking

import "errors"

var (
	ErrDuplicateVehicle = errors.New("vehicle already in the parking lot")
	ErrNotFound         = errors.New("vehicle not found in the parking lot")
	ErrCancelled        = errors.New("vehicle retrieval cancelled")
)
