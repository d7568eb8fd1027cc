package relay_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclip/internal/domain"
	"jobclip/internal/relay"
)

func TestTabTracker_ActiveTab(t *testing.T) {
	tr := relay.NewTabTracker(8)

	tab, err := tr.ActiveTab(context.Background())
	require.NoError(t, err)
	assert.Nil(t, tab)

	tr.Observe(domain.Tab{ID: 1, URL: "https://a.example"})
	tr.Observe(domain.Tab{ID: 2, URL: "https://b.example", Active: true})

	tab, err = tr.ActiveTab(context.Background())
	require.NoError(t, err)
	require.NotNil(t, tab)
	assert.Equal(t, 2, tab.ID)
	assert.True(t, tab.Active)

	tr.Activate(1)
	tab, _ = tr.ActiveTab(context.Background())
	assert.Equal(t, "https://a.example", tab.URL)

	prev, ok := tr.Get(2)
	require.True(t, ok)
	assert.False(t, prev.Active)
}

func TestTabTracker_UpdateKeepsActive(t *testing.T) {
	tr := relay.NewTabTracker(8)
	tr.Activate(3)

	tr.Observe(domain.Tab{ID: 3, URL: "https://www.linkedin.com/jobs/view/1/"})

	tab, _ := tr.ActiveTab(context.Background())
	require.NotNil(t, tab)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/1/", tab.URL)
	assert.True(t, tab.Active)
}

func TestTabTracker_RemoveNotifies(t *testing.T) {
	var removed []int
	tr := relay.NewTabTracker(8, func(id int) { removed = append(removed, id) })
	tr.Observe(domain.Tab{ID: 4, URL: "https://a.example", Active: true})

	tr.Remove(4)

	assert.Equal(t, []int{4}, removed)
	_, ok := tr.Get(4)
	assert.False(t, ok)
	tab, err := tr.ActiveTab(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, tab)
}

func TestTabTracker_EvictsLeastRecentlySeen(t *testing.T) {
	tr := relay.NewTabTracker(2)
	tr.Observe(domain.Tab{ID: 1})
	tr.Observe(domain.Tab{ID: 2})
	tr.Observe(domain.Tab{ID: 1, URL: "https://seen-again.example"})
	tr.Observe(domain.Tab{ID: 3})

	assert.Equal(t, 2, tr.Len())
	_, ok := tr.Get(2)
	assert.False(t, ok)
	_, ok = tr.Get(1)
	assert.True(t, ok)
}

func TestTabTracker_ReturnsCopies(t *testing.T) {
	tr := relay.NewTabTracker(2)
	tr.Observe(domain.Tab{ID: 1, URL: "https://a.example", Active: true})

	tab, _ := tr.ActiveTab(context.Background())
	tab.URL = "mutated"

	again, _ := tr.ActiveTab(context.Background())
	assert.Equal(t, "https://a.example", again.URL)
}
