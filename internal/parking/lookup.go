package parking

import "github.com/dolthub/swiss"

// lookupTable maps the registration number of every currently parked
// vehicle to its node in the index.
type lookupTable struct {
	m *swiss.Map[string, handle]
}

func newLookupTable(capacity int) *lookupTable {
	return &lookupTable{m: swiss.NewMap[string, handle](uint32(capacity))}
}

func (t *lookupTable) contains(reg string) bool {
	return t.m.Has(reg)
}

func (t *lookupTable) get(reg string) (handle, bool) {
	return t.m.Get(reg)
}

func (t *lookupTable) put(reg string, h handle) {
	t.m.Put(reg, h)
}

func (t *lookupTable) remove(reg string) {
	t.m.Delete(reg)
}

func (t *lookupTable) len() int {
	return t.m.Count()
}
