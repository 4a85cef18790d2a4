package genome

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachKind runs fn once per representation with a constructor for it.
func forEachKind(t *testing.T, fn func(t *testing.T, newGenome func(n int) Tracked)) {
	t.Helper()
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			fn(t, func(n int) Tracked {
				g, err := New(kind, n)
				require.NoError(t, err)
				return g
			})
		})
	}
}

// requireValid fails the test if g's registry and symbols disagree.
func requireValid(t *testing.T, g Tracked) {
	t.Helper()
	require.NoError(t, Verify(g), "genome %q", g.String())
}

func TestNew_FreshGenome(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		for _, n := range []int{0, 1, 10, 257} {
			g := newGenome(n)
			assert.Equal(t, n, g.Len())
			assert.Equal(t, strings.Repeat("-", n), g.String())
			assert.Empty(t, g.ActiveTEs())
			requireValid(t, g)
		}
	})
}

func TestNew_NegativeSize(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(-3)
		assert.Equal(t, 0, g.Len())
		assert.Equal(t, "", g.String())
	})
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(Kind("rope"), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rope")
}

func TestInsertTE_GrowsAndRegisters(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(10)

		id := g.InsertTE(2, 3)

		assert.Equal(t, 1, id)
		assert.Equal(t, 13, g.Len())
		assert.Equal(t, "--AAA--------", g.String())
		assert.Equal(t, []int{1}, g.ActiveTEs())
		requireValid(t, g)

		g.DisableTE(1)
		assert.Equal(t, "--xxx--------", g.String())
		assert.Empty(t, g.ActiveTEs())
		assert.Equal(t, 13, g.Len())
		requireValid(t, g)
	})
}

func TestInsertTE_CollisionDisablesExisting(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(5)

		assert.Equal(t, 1, g.InsertTE(0, 2))
		assert.Equal(t, "AA-----", g.String())

		assert.Equal(t, 2, g.InsertTE(1, 1))
		assert.Equal(t, "xAx-----", g.String())
		assert.Equal(t, []int{2}, g.ActiveTEs())
		assert.Equal(t, 8, g.Len())
		requireValid(t, g)
	})
}

func TestInsertTE_CollisionWindow(t *testing.T) {
	// An active TE at start=2, length=3 collides for 2 < pos <= 5.
	tests := []struct {
		pos    int
		render string
		active []int
	}{
		{0, "A--AAA--------", []int{1, 2}},
		{1, "-A-AAA--------", []int{1, 2}},
		{2, "--AAAA--------", []int{1, 2}},
		{3, "--xAxx--------", []int{2}},
		{4, "--xxAx--------", []int{2}},
		{5, "--xxxA--------", []int{2}},
		{6, "--AAA-A-------", []int{1, 2}},
		{7, "--AAA--A------", []int{1, 2}},
	}

	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		for _, tt := range tests {
			g := newGenome(10)
			g.InsertTE(2, 3)

			g.InsertTE(tt.pos, 1)

			assert.Equal(t, tt.render, g.String(), "pos=%d", tt.pos)
			assert.Equal(t, tt.active, g.ActiveTEs(), "pos=%d", tt.pos)
			requireValid(t, g)
		}
	})
}

func TestInsertTE_AtStartShiftsExisting(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(10)
		g.InsertTE(2, 3)
		g.InsertTE(2, 1)
		assert.Equal(t, "--AAAA--------", g.String())
		requireValid(t, g)

		// TE 1 now starts at 3; disabling it must repaint the shifted span.
		g.DisableTE(1)
		assert.Equal(t, "--Axxx--------", g.String())
		assert.Equal(t, []int{2}, g.ActiveTEs())
		requireValid(t, g)
	})
}

func TestInsertTE_ShiftsLaterTEs(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(10)
		g.InsertTE(5, 2)
		g.InsertTE(1, 3)

		assert.Equal(t, "-AAA----AA-----", g.String())
		assert.Equal(t, []Record{{ID: 1, Start: 8, Length: 2}, {ID: 2, Start: 1, Length: 3}}, g.State().Records)
		requireValid(t, g)
	})
}

func TestInsertTE_NormalizesPosition(t *testing.T) {
	tests := []struct {
		name   string
		pos    int
		render string
	}{
		{"past end", 12, "--A--------"},
		{"exactly length", 10, "A----------"},
		{"negative", -1, "---------A-"},
		{"far negative", -21, "---------A-"},
	}

	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				g := newGenome(10)
				g.InsertTE(tt.pos, 1)
				assert.Equal(t, tt.render, g.String())
				requireValid(t, g)
			})
		}
	})
}

func TestInsertTE_EmptyGenome(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(0)
		id := g.InsertTE(5, 3)
		assert.Equal(t, 1, id)
		assert.Equal(t, "AAA", g.String())
		requireValid(t, g)
	})
}

func TestInsertTE_NonPositiveLength(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(4)
		assert.Equal(t, 1, g.InsertTE(1, 0))
		assert.Equal(t, 2, g.InsertTE(1, -5))
		assert.Equal(t, "----", g.String())
		assert.Equal(t, []int{1, 2}, g.ActiveTEs())
		requireValid(t, g)
	})
}

func TestCopyTE_Offsets(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		render  string
		records []Record
	}{
		{"upwards", 5, "--AAA--AAA------", []Record{{1, 2, 3}, {2, 7, 3}}},
		{"downwards", -4, "--AAA------AAA--", []Record{{1, 2, 3}, {2, 11, 3}}},
		{"downwards past zero", -4 - 13, "--AAA------AAA--", []Record{{1, 2, 3}, {2, 11, 3}}},
	}

	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				g := newGenome(10)
				g.InsertTE(2, 3)

				id, ok := g.CopyTE(1, tt.offset)

				require.True(t, ok)
				assert.Equal(t, 2, id)
				assert.Equal(t, tt.render, g.String())
				assert.Equal(t, tt.records, g.State().Records)
				requireValid(t, g)
			})
		}
	})
}

func TestCopyTE_InactiveIsNoop(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(10)
		g.InsertTE(2, 3)
		g.InsertTE(6, 1)
		g.DisableTE(2)
		before := g.State()

		for _, te := range []int{0, 2, 3, 99, -1} {
			id, ok := g.CopyTE(te, 4)
			assert.False(t, ok, "te=%d", te)
			assert.Zero(t, id, "te=%d", te)
		}

		after := g.State()
		assert.Equal(t, before, after)
		assert.Equal(t, 14, g.Len())
	})
}

func TestCopyTE_FullTurnOffsetWrapsAround(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		for _, offset := range []int{0, 3, 7, -2, -12} {
			a := newGenome(9)
			b := newGenome(9)
			a.InsertTE(4, 2)
			b.InsertTE(4, 2)

			_, okA := a.CopyTE(1, offset)
			_, okB := b.CopyTE(1, offset+b.Len())

			require.True(t, okA)
			require.True(t, okB)
			assert.Equal(t, a.String(), b.String(), "offset=%d", offset)
			assert.Equal(t, a.State().Records, b.State().Records, "offset=%d", offset)
		}
	})
}

func TestCopyTE_CollidesAtTarget(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(10)
		g.InsertTE(0, 4)
		g.InsertTE(8, 2)

		// TE 2 sits at [8,10); offset -7 targets position 1, inside TE 1.
		id, ok := g.CopyTE(2, -7)

		require.True(t, ok)
		assert.Equal(t, 3, id)
		assert.Equal(t, []int{2, 3}, g.ActiveTEs())
		assert.Equal(t, "xAAxxx----AA------", g.String())
		requireValid(t, g)
	})
}

func TestDisableTE_Idempotent(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(6)
		g.InsertTE(1, 2)
		g.InsertTE(5, 1)

		g.DisableTE(1)
		once := g.State()
		g.DisableTE(1)
		twice := g.State()

		assert.Equal(t, once, twice)
		assert.Equal(t, "-xx--A---", g.String())
	})
}

func TestDisableTE_UnknownIsNoop(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(3)
		g.DisableTE(1)
		g.DisableTE(-4)
		assert.Equal(t, "---", g.String())
		assert.Empty(t, g.ActiveTEs())
	})
}

func TestActiveTEs_IDsNeverReused(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(20)
		first := g.InsertTE(0, 2)
		g.DisableTE(first)
		second := g.InsertTE(10, 2)
		third, ok := g.CopyTE(second, 3)
		require.True(t, ok)

		assert.Equal(t, []int{1, 2, 3}, []int{first, second, third})
		assert.Equal(t, []int{2, 3}, g.ActiveTEs())
	})
}

func TestString_IsIndependentSnapshot(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(4)
		before := g.String()
		g.InsertTE(1, 2)
		assert.Equal(t, "----", before)
		assert.Equal(t, "-AA---", g.String())
	})
}

func TestRecord_TracksShiftsAndDisable(t *testing.T) {
	forEachKind(t, func(t *testing.T, newGenome func(int) Tracked) {
		g := newGenome(10)
		a := g.InsertTE(6, 2)
		b := g.InsertTE(1, 3)

		rec, ok := g.Record(a)
		require.True(t, ok)
		assert.Equal(t, Record{ID: a, Start: 9, Length: 2}, rec)

		rec, ok = g.Record(b)
		require.True(t, ok)
		assert.Equal(t, Record{ID: b, Start: 1, Length: 3}, rec)

		g.DisableTE(a)
		_, ok = g.Record(a)
		assert.False(t, ok)
		_, ok = g.Record(99)
		assert.False(t, ok)
	})
}
