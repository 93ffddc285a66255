package parking

import "slices"

// admissionStack holds the parked vehicles in arrival order, most recent
// on top. Insertion and display are LIFO; removal may take any entry.
type admissionStack struct {
	index   *vehicleIndex
	handles []handle
}

func newAdmissionStack(index *vehicleIndex, capacity int) *admissionStack {
	return &admissionStack{
		index:   index,
		handles: make([]handle, 0, capacity),
	}
}

func (s *admissionStack) push(h handle) {
	s.handles = append(s.handles, h)
}

// removeMatching drops the first entry, scanning from the top, whose
// vehicle has the given registration. The order of the remaining entries
// is unchanged.
func (s *admissionStack) removeMatching(reg string) (handle, bool) {
	for i := len(s.handles) - 1; i >= 0; i-- {
		h := s.handles[i]
		if s.index.vehicle(h).RegistrationNumber == reg {
			s.handles = slices.Delete(s.handles, i, i+1)
			return h, true
		}
	}
	return nilHandle, false
}

func (s *admissionStack) topToBottom() []handle {
	out := make([]handle, len(s.handles))
	for i, h := range s.handles {
		out[len(s.handles)-1-i] = h
	}
	return out
}

func (s *admissionStack) isEmpty() bool {
	return len(s.handles) == 0
}

func (s *admissionStack) len() int {
	return len(s.handles)
}
