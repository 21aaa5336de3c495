package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdash/inventory-import/pkg/selection"
)

func TestSelectIsIdempotent(t *testing.T) {
	s := selection.New()
	s.Select("0")
	s.Select("0")
	assert.Equal(t, 1, s.Count())
	assert.True(t, s.Has("0"))
}

func TestDeselectUnknownIsNoop(t *testing.T) {
	s := selection.New()
	s.Select("1")
	s.Deselect("2")
	assert.Equal(t, 1, s.Count())
	s.Deselect("1")
	assert.True(t, s.IsEmpty())
}

func TestClear(t *testing.T) {
	s := selection.New()
	s.Select("0")
	s.Select("1")
	s.Select("2")
	assert.Equal(t, 3, s.Count())
	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Has("1"))
}

func TestIDsSnapshot(t *testing.T) {
	s := selection.New()
	s.Select("0")
	s.Select("5")
	ids := s.IDs()
	assert.ElementsMatch(t, []string{"0", "5"}, ids)

	// mutating the snapshot must not affect the store
	ids[0] = "99"
	assert.True(t, s.Has("0"))
}
