package index_test

import (
	"fmt"
	"math/rand"
	"testing"

	"hospital-triage/index"
	"hospital-triage/models"

	"github.com/stretchr/testify/assert"
)

func patient(id, severity int) *models.PatientRecord {
	return &models.PatientRecord{
		ID:       id,
		Name:     fmt.Sprintf("Patient_%d", id),
		Severity: severity,
		Arrival:  id,
	}
}

// build inserts IDs in the given order, which fixes the tree shape.
func build(ids ...int) *index.Tree {
	t := index.New()
	for _, id := range ids {
		t.Insert(patient(id, 3))
	}
	return t
}

func TestInsertAndGet(t *testing.T) {
	tree := build(50, 30, 70)

	got, ok := tree.Get(30)
	assert.True(t, ok)
	assert.Equal(t, "Patient_30", got.Name)

	_, ok = tree.Get(99)
	assert.False(t, ok)
	assert.Equal(t, 3, tree.Len())
}

func TestTraversalOrders(t *testing.T) {
	// Inserting 50, 30, 70, 20, 40, 60, 80 yields the full tree
	//
	//         50
	//       /    \
	//      30     70
	//     /  \   /  \
	//    20  40 60  80
	tree := build(50, 30, 70, 20, 40, 60, 80)

	assert.Equal(t, []int{20, 30, 40, 50, 60, 70, 80}, treeIDs(tree.InOrder()))
	assert.Equal(t, []int{50, 30, 20, 40, 70, 60, 80}, treeIDs(tree.PreOrder()))
	assert.Equal(t, []int{20, 40, 30, 60, 80, 70, 50}, treeIDs(tree.PostOrder()))
}

func TestInOrderIsSortedAfterRandomInserts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := index.New()
	ids := rng.Perm(200)
	for _, id := range ids {
		tree.Insert(patient(id+1, rng.Intn(models.MaxSeverity)+1))
	}

	got := treeIDs(tree.InOrder())
	assert.Len(t, got, 200)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i], "in-order walk must be ascending")
	}
}

func TestDeleteByID(t *testing.T) {
	tests := map[string]struct {
		buildIDs    []int
		deleteID    int
		wantDeleted bool
		wantInOrder []int
	}{
		"Leaf": {
			buildIDs:    []int{50, 30, 70, 20, 40, 60, 80},
			deleteID:    20,
			wantDeleted: true,
			wantInOrder: []int{30, 40, 50, 60, 70, 80},
		},
		"NodeWithOneChild": {
			// 70 has a single left child 60, which takes its place.
			buildIDs:    []int{50, 30, 70, 60},
			deleteID:    70,
			wantDeleted: true,
			wantInOrder: []int{30, 50, 60},
		},
		"NodeWithTwoChildren": {
			// 30 is replaced by its in-order successor 40.
			buildIDs:    []int{50, 30, 70, 20, 40, 60, 80},
			deleteID:    30,
			wantDeleted: true,
			wantInOrder: []int{20, 40, 50, 60, 70, 80},
		},
		"Root": {
			// The root 50 is replaced by its in-order successor 60.
			buildIDs:    []int{50, 30, 70, 20, 40, 60, 80},
			deleteID:    50,
			wantDeleted: true,
			wantInOrder: []int{20, 30, 40, 60, 70, 80},
		},
		"MissingID": {
			buildIDs:    []int{50, 30, 70, 20, 40, 60, 80},
			deleteID:    99,
			wantDeleted: false,
			wantInOrder: []int{20, 30, 40, 50, 60, 70, 80},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tree := build(tt.buildIDs...)

			assert.Equal(t, tt.wantDeleted, tree.DeleteByID(tt.deleteID))
			assert.Equal(t, tt.wantInOrder, treeIDs(tree.InOrder()))
			assert.Equal(t, len(tt.wantInOrder), tree.Len())

			if tt.wantDeleted {
				_, ok := tree.Get(tt.deleteID)
				assert.False(t, ok, "deleted ID must no longer resolve")
			}
		})
	}
}

func TestDeleteDrainsToEmpty(t *testing.T) {
	tree := build(2, 1, 3)
	for _, id := range []int{2, 1, 3} {
		assert.True(t, tree.DeleteByID(id))
	}
	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.InOrder())
}

func TestDuplicateIDsAreKept(t *testing.T) {
	tree := index.New()
	first := patient(5, 2)
	second := patient(5, 4)
	second.Name = "Patient_5_again"
	tree.Insert(first)
	tree.Insert(second)

	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, []int{5, 5}, treeIDs(tree.InOrder()))

	// Deleting removes one occurrence, not both.
	assert.True(t, tree.DeleteByID(5))
	assert.Equal(t, 1, tree.Len())
	_, ok := tree.Get(5)
	assert.True(t, ok)
}

func TestUpdateSeverity(t *testing.T) {
	tree := index.New()
	shared := patient(10, 2)
	tree.Insert(shared)
	tree.Insert(patient(5, 3))

	assert.True(t, tree.UpdateSeverity(10, 5))
	assert.Equal(t, 5, shared.Severity, "update must write through to the shared record")

	got, ok := tree.Get(10)
	assert.True(t, ok)
	assert.Equal(t, 5, got.Severity)

	assert.False(t, tree.UpdateSeverity(404, 1))
}

func TestEmptyTree(t *testing.T) {
	tree := index.New()

	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.InOrder())
	assert.Empty(t, tree.PreOrder())
	assert.Empty(t, tree.PostOrder())
	assert.False(t, tree.DeleteByID(1))
	assert.False(t, tree.UpdateSeverity(1, 3))
}

func treeIDs(patients []models.PatientRecord) []int {
	out := make([]int, len(patients))
	for i, p := range patients {
		out[i] = p.ID
	}
	return out
}
