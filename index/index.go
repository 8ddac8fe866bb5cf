// Package index provides a binary search tree keyed on patient ID. It
// backs ID lookups and the ordered traversals of the waiting room. The
// tree does not self-balance; its shape follows insertion order.
package index

import "hospital-triage/models"

type node struct {
	patient *models.PatientRecord
	left    *node
	right   *node
}

// Tree is the identifier index. The zero value is an empty tree ready
// for use, but New is the conventional constructor.
type Tree struct {
	root *node
	size int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Insert adds a patient record. Records whose ID already exists are
// placed in the right subtree, so duplicates are kept rather than
// replaced.
func (t *Tree) Insert(p *models.PatientRecord) {
	t.root = insert(t.root, p)
	t.size++
}

func insert(n *node, p *models.PatientRecord) *node {
	if n == nil {
		return &node{patient: p}
	}
	if p.ID < n.patient.ID {
		n.left = insert(n.left, p)
	} else {
		n.right = insert(n.right, p)
	}
	return n
}

// Get looks up a patient by ID and returns a copy of the record.
func (t *Tree) Get(id int) (models.PatientRecord, bool) {
	n := t.root
	for n != nil {
		switch {
		case id < n.patient.ID:
			n = n.left
		case id > n.patient.ID:
			n = n.right
		default:
			return *n.patient, true
		}
	}
	return models.PatientRecord{}, false
}

// DeleteByID removes one record with the given ID and reports whether
// a record was found. Nodes with two children are replaced by their
// in-order successor.
func (t *Tree) DeleteByID(id int) bool {
	var deleted bool
	t.root, deleted = remove(t.root, id)
	if deleted {
		t.size--
	}
	return deleted
}

func remove(n *node, id int) (*node, bool) {
	if n == nil {
		return nil, false
	}
	var deleted bool
	switch {
	case id < n.patient.ID:
		n.left, deleted = remove(n.left, id)
	case id > n.patient.ID:
		n.right, deleted = remove(n.right, id)
	default:
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}
		successor := n.right
		for successor.left != nil {
			successor = successor.left
		}
		n.patient = successor.patient
		n.right, _ = remove(n.right, successor.patient.ID)
		return n, true
	}
	return n, deleted
}

// UpdateSeverity rewrites the severity of the record with the given ID
// and reports whether the ID was present.
func (t *Tree) UpdateSeverity(id, severity int) bool {
	n := t.root
	for n != nil {
		switch {
		case id < n.patient.ID:
			n = n.left
		case id > n.patient.ID:
			n = n.right
		default:
			n.patient.Severity = severity
			return true
		}
	}
	return false
}

// InOrder returns value copies of all records in ascending ID order.
func (t *Tree) InOrder() []models.PatientRecord {
	out := make([]models.PatientRecord, 0, t.size)
	inOrder(t.root, &out)
	return out
}

func inOrder(n *node, out *[]models.PatientRecord) {
	if n == nil {
		return
	}
	inOrder(n.left, out)
	*out = append(*out, *n.patient)
	inOrder(n.right, out)
}

// PreOrder returns value copies of all records in root-first order.
func (t *Tree) PreOrder() []models.PatientRecord {
	out := make([]models.PatientRecord, 0, t.size)
	preOrder(t.root, &out)
	return out
}

func preOrder(n *node, out *[]models.PatientRecord) {
	if n == nil {
		return
	}
	*out = append(*out, *n.patient)
	preOrder(n.left, out)
	preOrder(n.right, out)
}

// PostOrder returns value copies of all records in children-first order.
func (t *Tree) PostOrder() []models.PatientRecord {
	out := make([]models.PatientRecord, 0, t.size)
	postOrder(t.root, &out)
	return out
}

func postOrder(n *node, out *[]models.PatientRecord) {
	if n == nil {
		return
	}
	postOrder(n.left, out)
	postOrder(n.right, out)
	*out = append(*out, *n.patient)
}

// Len reports the number of records in the tree.
func (t *Tree) Len() int { return t.size }

// IsEmpty reports whether the tree holds no records.
func (t *Tree) IsEmpty() bool { return t.root == nil }
