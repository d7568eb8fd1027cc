package page_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclip/internal/domain"
	"jobclip/internal/page"
)

func titleOf(p *page.Page) (string, error) {
	return p.Doc.Find("title").Text(), nil
}

func TestSnapshotHost_ExecuteUsesLatestSnapshot(t *testing.T) {
	h := page.NewSnapshotHost(4)
	h.Store(1, "https://a.example/", "<title>first</title>", "")
	h.Store(1, "https://a.example/", "<title>second</title>", "")

	got, err := page.Extract(context.Background(), h, domain.Tab{ID: 1}, titleOf)

	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.Equal(t, 1, h.Len())
}

func TestSnapshotHost_URLFallsBackToTab(t *testing.T) {
	h := page.NewSnapshotHost(4)
	h.Store(2, "", "<p>x</p>", "")

	got, err := page.Extract(context.Background(), h, domain.Tab{ID: 2, URL: "https://b.example/"},
		func(p *page.Page) (string, error) { return p.URL, nil })

	require.NoError(t, err)
	assert.Equal(t, "https://b.example/", got)
}

func TestSnapshotHost_EvictsOldest(t *testing.T) {
	h := page.NewSnapshotHost(2)
	h.Store(1, "", "<title>1</title>", "")
	h.Store(2, "", "<title>2</title>", "")
	h.Store(3, "", "<title>3</title>", "")

	assert.Equal(t, 2, h.Len())
	_, err := page.Extract(context.Background(), h, domain.Tab{ID: 1}, titleOf)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)

	got, err := page.Extract(context.Background(), h, domain.Tab{ID: 3}, titleOf)
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestSnapshotHost_Forget(t *testing.T) {
	h := page.NewSnapshotHost(2)
	h.Store(5, "", "<title>5</title>", "")

	h.Forget(5)
	h.Forget(99)

	assert.Equal(t, 0, h.Len())
	_, err := page.Extract(context.Background(), h, domain.Tab{ID: 5}, titleOf)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestSnapshotHost_CarriesRenderedText(t *testing.T) {
	h := page.NewSnapshotHost(2)
	h.Store(6, "", "<body>raw</body>", "Rendered")

	got, err := page.Extract(context.Background(), h, domain.Tab{ID: 6}, page.BodyText)

	require.NoError(t, err)
	assert.Equal(t, "Rendered", got)
}

func TestSnapshotHost_ReadKeepsSnapshotFresh(t *testing.T) {
	h := page.NewSnapshotHost(2)
	h.Store(1, "", "<title>1</title>", "")
	h.Store(2, "", "<title>2</title>", "")

	_, err := page.Extract(context.Background(), h, domain.Tab{ID: 1}, titleOf)
	require.NoError(t, err)
	h.Store(3, "", "<title>3</title>", "")

	got, err := page.Extract(context.Background(), h, domain.Tab{ID: 1}, titleOf)
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	_, err = page.Extract(context.Background(), h, domain.Tab{ID: 2}, titleOf)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
