package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_AllocatesFromOne(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Last())

	id, _, collided := r.admit(0, 2)
	assert.Equal(t, 1, id)
	assert.False(t, collided)
	assert.Equal(t, 1, r.Last())
}

func TestRegistry_AdmitCollisionAndShift(t *testing.T) {
	r := NewRegistry()
	r.admit(0, 2)  // id 1 at [0,2)
	r.admit(4, 3)  // id 2 at [4,7)
	r.admit(10, 1) // id 3 at [10,11)

	id, victim, collided := r.admit(6, 5)

	assert.Equal(t, 4, id)
	assert.True(t, collided)
	assert.Equal(t, Record{ID: 2, Start: 4, Length: 3}, victim)
	assert.Equal(t, []Record{
		{ID: 1, Start: 0, Length: 2},
		{ID: 3, Start: 15, Length: 1},
		{ID: 4, Start: 6, Length: 5},
	}, r.Records())
}

func TestRegistry_EndBoundaryCollides(t *testing.T) {
	r := NewRegistry()
	r.admit(3, 2)

	_, victim, collided := r.admit(5, 1)

	assert.True(t, collided)
	assert.Equal(t, 1, victim.ID)
	assert.Equal(t, []int{2}, r.IDs())
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.admit(0, 1)

	rec, ok := r.Remove(1)
	assert.True(t, ok)
	assert.Equal(t, 1, rec.ID)

	_, ok = r.Remove(1)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 1, r.Last())
}
