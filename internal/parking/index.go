package parking

// handle addresses a node in the index arena. Handles stay valid for the
// lifetime of the index because nodes are never removed.
type handle int32

const nilHandle handle = -1

type indexNode struct {
	vehicle Vehicle
	left    handle
	right   handle
}

// vehicleIndex is the archive: a binary search tree over every vehicle
// ever admitted, keyed by registration number. Nodes live in a slice and
// link to each other by handle, and all walks are iterative, so sorted
// input that degenerates the tree into a list costs time but not stack.
//
// Keys in a left subtree compare less than their parent; keys in a right
// subtree compare greater or equal. The index does not enforce
// uniqueness, a re-admitted registration gets a new node.
type vehicleIndex struct {
	nodes []indexNode
	root  handle
}

func newVehicleIndex() *vehicleIndex {
	return &vehicleIndex{root: nilHandle}
}

func (idx *vehicleIndex) len() int {
	return len(idx.nodes)
}

func (idx *vehicleIndex) vehicle(h handle) Vehicle {
	return idx.nodes[h].vehicle
}

func (idx *vehicleIndex) insert(v Vehicle) handle {
	idx.nodes = append(idx.nodes, indexNode{vehicle: v, left: nilHandle, right: nilHandle})
	h := handle(len(idx.nodes) - 1)

	if idx.root == nilHandle {
		idx.root = h
		return h
	}

	key := v.RegistrationNumber
	cur := idx.root
	for {
		n := &idx.nodes[cur]
		if key < n.vehicle.RegistrationNumber {
			if n.left == nilHandle {
				n.left = h
				return h
			}
			cur = n.left
		} else {
			if n.right == nilHandle {
				n.right = h
				return h
			}
			cur = n.right
		}
	}
}

// findExact is a plain BST search: it stops at the first node whose key
// equals reg. With duplicates that is the earliest inserted record, since
// later ones always land in its right subtree. history lists every visit.
func (idx *vehicleIndex) findExact(reg string) (Vehicle, bool) {
	cur := idx.root
	for cur != nilHandle {
		n := idx.nodes[cur]
		switch {
		case reg == n.vehicle.RegistrationNumber:
			return n.vehicle, true
		case reg < n.vehicle.RegistrationNumber:
			cur = n.left
		default:
			cur = n.right
		}
	}
	return Vehicle{}, false
}

// history returns every archived vehicle for reg, oldest first.
func (idx *vehicleIndex) history(reg string) []Vehicle {
	var out []Vehicle
	cur := idx.root
	for cur != nilHandle {
		n := idx.nodes[cur]
		if reg < n.vehicle.RegistrationNumber {
			cur = n.left
			continue
		}
		if reg == n.vehicle.RegistrationNumber {
			out = append(out, n.vehicle)
		}
		cur = n.right
	}
	return out
}

// VehicleFilter selects vehicles by make and model. Empty fields match
// anything; non-empty fields must match exactly.
type VehicleFilter struct {
	Make  string
	Model string
}

func (f VehicleFilter) Match(v Vehicle) bool {
	if f.Make != "" && v.Make != f.Make {
		return false
	}
	if f.Model != "" && v.Model != f.Model {
		return false
	}
	return true
}

// findAll walks the tree in pre-order and collects every match.
func (idx *vehicleIndex) findAll(f VehicleFilter) []Vehicle {
	var out []Vehicle
	if idx.root == nilHandle {
		return out
	}

	stack := []handle{idx.root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := idx.nodes[cur]
		if f.Match(n.vehicle) {
			out = append(out, n.vehicle)
		}
		if n.right != nilHandle {
			stack = append(stack, n.right)
		}
		if n.left != nilHandle {
			stack = append(stack, n.left)
		}
	}
	return out
}

// ascend visits vehicles in registration order until fn returns false.
func (idx *vehicleIndex) ascend(fn func(Vehicle) bool) {
	var stack []handle
	cur := idx.root
	for cur != nilHandle || len(stack) > 0 {
		for cur != nilHandle {
			stack = append(stack, cur)
			cur = idx.nodes[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(idx.nodes[cur].vehicle) {
			return
		}
		cur = idx.nodes[cur].right
	}
}
