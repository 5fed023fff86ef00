package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swcatalog/location-server/internal/catalog"
	"github.com/swcatalog/location-server/internal/store"
)

func TestCreateAndGetLocation(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	spec := catalog.LocationSpec{Type: "url", Target: "https://x/catalog-info.yaml"}
	created, err := s.CreateLocation(ctx, spec)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "url", created.Type)
	assert.Equal(t, "https://x/catalog-info.yaml", created.Target)

	got, err := s.GetLocation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateLocationDuplicate(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	spec := catalog.LocationSpec{Type: "url", Target: "https://x/catalog-info.yaml"}

	_, err := s.CreateLocation(ctx, spec)
	require.NoError(t, err)

	_, err = s.CreateLocation(ctx, spec)
	assert.ErrorIs(t, err, store.ErrLocationAlreadyExists)
}

func TestListLocations(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	locs, err := s.ListLocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, locs)

	_, err = s.CreateLocation(ctx, catalog.LocationSpec{Type: "url", Target: "https://b"})
	require.NoError(t, err)
	_, err = s.CreateLocation(ctx, catalog.LocationSpec{Type: "url", Target: "https://a"})
	require.NoError(t, err)

	locs, err = s.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 2)
	// Stable ordering by type, then target.
	assert.Equal(t, "https://a", locs[0].Target)
	assert.Equal(t, "https://b", locs[1].Target)
}

func TestDeleteLocation(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	created, err := s.CreateLocation(ctx, catalog.LocationSpec{Type: "url", Target: "https://x"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteLocation(ctx, created.ID))

	_, err = s.GetLocation(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrLocationNotFound)

	err = s.DeleteLocation(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrLocationNotFound)
}

func TestGetLocationNotFound(t *testing.T) {
	t.Parallel()

	_, err := New().GetLocation(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrLocationNotFound)
}
