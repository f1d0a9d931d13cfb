package memory

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	})
}

func TestStore_AddAssignsIDAndFindsIt(t *testing.T) {
	s := New[model.Contact](sequentialIDs())

	added := s.Add(model.Contact{Name: "Dr. Jane Smith", Email: "jane@example.com", Type: model.ContactTypeDoctor})
	assert.Equal(t, "gen-1", added.ID)

	found, ok := s.FindByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, added, found)
}

func TestStore_AddKeepsExistingID(t *testing.T) {
	s := New[model.Contact]()
	added := s.Add(model.Contact{ID: "1", Name: "Jane"})
	assert.Equal(t, "1", added.ID)
}

func TestStore_AllPreservesInsertionOrder(t *testing.T) {
	s := New[model.Contact](sequentialIDs())
	s.Add(model.Contact{Name: "a"})
	s.Add(model.Contact{Name: "b"})
	s.Add(model.Contact{Name: "c"})

	var names []string
	for _, c := range s.All() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := NewWith([]model.Contact{{ID: "1", Name: "Jane"}})

	all := s.All()
	all[0].Name = "changed"

	found, _ := s.FindByID("1")
	assert.Equal(t, "Jane", found.Name)
}

func TestStore_ClonesReferenceFields(t *testing.T) {
	day := datekey.MustParseDay("2023-01-15")
	s := NewWith([]model.TreatmentPlan{{
		ID:         "T001",
		Milestones: []model.Milestone{{Title: "Initial Consultation", Completed: true, Date: &day}},
	}})

	got, _ := s.FindByID("T001")
	got.Milestones[0].Completed = false

	again, _ := s.FindByID("T001")
	assert.True(t, again.Milestones[0].Completed)
}

func TestStore_RemoveMissingIDIsNoop(t *testing.T) {
	s := NewWith([]model.Contact{{ID: "1"}, {ID: "2"}})
	before := s.All()
	rev := s.Revision()

	assert.False(t, s.Remove("404"))
	assert.Equal(t, before, s.All())
	assert.Equal(t, rev, s.Revision())
}

func TestStore_RemoveFirstMatch(t *testing.T) {
	s := NewWith([]model.Contact{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "1", Name: "dup"}})

	require.True(t, s.Remove("1"))
	assert.Equal(t, 2, s.Len())

	found, ok := s.FindByID("1")
	require.True(t, ok)
	assert.Equal(t, "dup", found.Name)
}

func TestStore_FindByIDMissing(t *testing.T) {
	s := New[model.Patient]()
	got, ok := s.FindByID("nope")
	assert.False(t, ok)
	assert.Equal(t, model.Patient{}, got)
}

func TestStore_Update(t *testing.T) {
	s := NewWith([]model.Patient{{ID: "P001", Name: "Emma Thompson"}})

	updated, err := s.Update("P001", func(p model.Patient) (model.Patient, error) {
		p.Name = "Emma Stone"
		p.ID = "ignored"
		return p, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "P001", updated.ID)

	found, _ := s.FindByID("P001")
	assert.Equal(t, "Emma Stone", found.Name)
}

func TestStore_UpdateErrors(t *testing.T) {
	s := NewWith([]model.Patient{{ID: "P001", Name: "Emma"}})

	_, err := s.Update("P404", func(p model.Patient) (model.Patient, error) { return p, nil })
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	boom := errors.New("boom")
	rev := s.Revision()
	_, err = s.Update("P001", func(p model.Patient) (model.Patient, error) {
		p.Name = "half"
		return p, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, rev, s.Revision())

	found, _ := s.FindByID("P001")
	assert.Equal(t, "Emma", found.Name)
}

func TestStore_ObserverAndRevision(t *testing.T) {
	var ops []string
	var sizes []int
	s := New[model.Contact](sequentialIDs(), WithObserver(func(op string, size int) {
		ops = append(ops, op)
		sizes = append(sizes, size)
	}))

	c := s.Add(model.Contact{Name: "a"})
	s.Update(c.ID, func(c model.Contact) (model.Contact, error) { return c, nil })
	s.Remove(c.ID)

	assert.Equal(t, []string{OpAdd, OpUpdate, OpRemove}, ops)
	assert.Equal(t, []int{1, 1, 0}, sizes)
	assert.Equal(t, uint64(3), s.Revision())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[model.Contact]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Add(model.Contact{Name: "x"})
		}()
		go func() {
			defer wg.Done()
			_ = s.All()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
