package toggle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightlab/toggle"
)

func TestPanelSelectedKeepsPanelOrder(t *testing.T) {
	p := toggle.NewPanel[string]()
	a := p.Add("A", "a")
	b := p.Add("B", "b")
	c := p.Add("C", "c")

	assert.Empty(t, p.Selected())

	require.NoError(t, p.Set(c, true))
	require.NoError(t, p.Set(a, true))
	assert.Equal(t, []string{"a", "c"}, p.Selected())

	on, err := p.Toggle(b)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"a", "b", "c"}, p.Selected())

	on, err = p.Toggle(a)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []string{"b", "c"}, p.Selected())
}

func TestPanelItems(t *testing.T) {
	p := toggle.NewPanel[int]()
	p.Add("one", 1)
	id := p.Add("two", 2)
	require.NoError(t, p.Set(id, true))

	items := p.Items()
	require.Len(t, items, 2)
	assert.Equal(t, toggle.Item[int]{ID: id, Caption: "two", Value: 2, Checked: true}, items[1])
	assert.Equal(t, 2, p.Len())

	// snapshot is independent of the panel
	items[0].Checked = true
	checked, err := p.Checked(0)
	require.NoError(t, err)
	assert.False(t, checked)
}

func TestPanelUnknownID(t *testing.T) {
	p := toggle.NewPanel[int]()
	p.Add("one", 1)

	assert.ErrorIs(t, p.Set(5, true), toggle.ErrUnknownToggle)
	_, err := p.Toggle(-1)
	assert.ErrorIs(t, err, toggle.ErrUnknownToggle)
	_, err = p.Checked(1)
	assert.ErrorIs(t, err, toggle.ErrUnknownToggle)
}

func TestPanelOnChange(t *testing.T) {
	p := toggle.NewPanel[int]()
	id := p.Add("one", 1)

	calls := 0
	p.OnChange(func() { calls++ })
	require.NoError(t, p.Set(id, true))
	require.NoError(t, p.Set(id, true))
	assert.Equal(t, 2, calls)

	_ = p.Set(9, true)
	assert.Equal(t, 2, calls)
}

// set is a minimal ordered container.
type set struct {
	items []string
	adds  int
}

func (s *set) Add(v string) {
	s.adds++
	s.items = append(s.items, v)
}

func (s *set) Remove(v string) bool {
	for i, it := range s.items {
		if it == v {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *set) Contains(v string) bool {
	for _, it := range s.items {
		if it == v {
			return true
		}
	}
	return false
}

func TestDisplaySync(t *testing.T) {
	c := &set{items: []string{"floor"}}
	d := toggle.NewDisplay[string]()

	added, removed := d.Sync(c, []string{"ambient", "spot"})
	assert.Equal(t, []string{"ambient", "spot"}, added)
	assert.Empty(t, removed)
	assert.Equal(t, []string{"floor", "ambient", "spot"}, c.items)

	added, removed = d.Sync(c, []string{"spot", "point"})
	assert.Equal(t, []string{"point"}, added)
	assert.Equal(t, []string{"ambient"}, removed)
	assert.Equal(t, []string{"floor", "spot", "point"}, c.items)
	assert.Equal(t, []string{"spot", "point"}, d.Shown())

	// unchanged selection adds nothing
	before := c.adds
	added, removed = d.Sync(c, []string{"spot", "point"})
	assert.Empty(t, added)
	assert.Empty(t, removed)
	assert.Equal(t, before, c.adds)

	d.Sync(c, nil)
	assert.Equal(t, []string{"floor"}, c.items)
	assert.Empty(t, d.Shown())
}

func TestDisplayDoesNotDuplicateExisting(t *testing.T) {
	c := &set{items: []string{"ambient"}}
	d := toggle.NewDisplay[string]()

	d.Sync(c, []string{"ambient"})
	assert.Equal(t, []string{"ambient"}, c.items)
	assert.Zero(t, c.adds)
}
