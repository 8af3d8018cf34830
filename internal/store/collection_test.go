package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    int      `json:"id"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Ref   *int     `json:"ref"`
	Tags  []string `json:"tags"`
}

func newNotes() *Collection[note] {
	return NewCollection(Hooks[note]{
		OnCreate: func(n *note, id int, _ time.Time) { n.ID = id },
		OnUpdate: func(prev note, next *note, _ time.Time) { next.ID = prev.ID },
	}, nil)
}

func TestCollectionIDsNeverReused(t *testing.T) {
	c := newNotes()

	a := c.Create(note{Title: "a"})
	b := c.Create(note{Title: "b"})
	require.True(t, c.Delete(b.ID))
	d := c.Create(note{Title: "d"})
	e := c.Create(note{Title: "e"})

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 3, d.ID)
	assert.Equal(t, 4, e.ID)
}

func TestCollectionGetMissing(t *testing.T) {
	c := newNotes()
	_, ok := c.Get(42)
	assert.False(t, ok)
}

func TestCollectionDeleteTwice(t *testing.T) {
	c := newNotes()
	n := c.Create(note{Title: "gone"})

	assert.True(t, c.Delete(n.ID))
	_, ok := c.Get(n.ID)
	assert.False(t, ok)
	assert.False(t, c.Delete(n.ID))
}

func TestCollectionListLimitIsOldestPrefix(t *testing.T) {
	c := newNotes()
	for _, title := range []string{"one", "two", "three", "four"} {
		c.Create(note{Title: title})
	}
	// updates must not move records
	_, _, err := c.Update(1, Patch{"title": json.RawMessage(`"ONE"`)})
	require.NoError(t, err)

	all := c.List(NoLimit)
	require.Len(t, all, 4)

	tests := []struct {
		limit int
		want  []string
	}{
		{0, []string{}},
		{2, []string{"ONE", "two"}},
		{4, []string{"ONE", "two", "three", "four"}},
		{10, []string{"ONE", "two", "three", "four"}},
	}
	for _, tt := range tests {
		got := c.List(tt.limit)
		titles := make([]string, 0, len(got))
		for _, n := range got {
			titles = append(titles, n.Title)
		}
		assert.Equal(t, tt.want, titles, "limit %d", tt.limit)
		assert.Equal(t, all[:len(got)], got)
	}
}

func TestCollectionUpdateMerges(t *testing.T) {
	c := newNotes()
	ref := 7
	n := c.Create(note{Title: "t", Body: "b", Ref: &ref, Tags: []string{"x"}})

	updated, ok, err := c.Update(n.ID, Patch{"body": json.RawMessage(`"new body"`)})
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := c.Get(n.ID)
	assert.Equal(t, updated, got)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, "new body", got.Body)
	require.NotNil(t, got.Ref)
	assert.Equal(t, 7, *got.Ref)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestCollectionUpdateNullOverwrites(t *testing.T) {
	c := newNotes()
	ref := 7
	n := c.Create(note{Title: "t", Ref: &ref})

	got, ok, err := c.Update(n.ID, Patch{"ref": json.RawMessage(`null`)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, got.Ref)
	assert.Equal(t, "t", got.Title)
}

func TestCollectionUpdateCannotChangeID(t *testing.T) {
	c := newNotes()
	n := c.Create(note{Title: "t"})

	got, ok, err := c.Update(n.ID, Patch{"id": json.RawMessage(`99`)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, n.ID, got.ID)
	_, found := c.Get(99)
	assert.False(t, found)
}

func TestCollectionUpdateMissing(t *testing.T) {
	c := newNotes()
	_, ok, err := c.Update(5, Patch{"title": json.RawMessage(`"x"`)})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCollectionUpdateBadPatch(t *testing.T) {
	c := newNotes()
	n := c.Create(note{Title: "t"})

	_, ok, err := c.Update(n.ID, Patch{"title": json.RawMessage(`123`)})
	assert.True(t, ok)
	assert.Error(t, err)

	got, _ := c.Get(n.ID)
	assert.Equal(t, "t", got.Title)
}

func TestPatchOf(t *testing.T) {
	p, err := PatchOf(map[string]any{"title": "x", "ref": nil})
	require.NoError(t, err)
	assert.JSONEq(t, `"x"`, string(p["title"]))
	assert.JSONEq(t, `null`, string(p["ref"]))
}
