package services_test

import (
	"net/http"
	"testing"

	"destined_affinity/internal/models"
	"destined_affinity/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService(t *testing.T) {
	f := seedAccessFixture(t)

	_, err := f.svc.FavoriteService.Add(f.db, identity("b@x.com"), 42)
	assertAppError(t, err, http.StatusNotFound)

	fav, err := f.svc.FavoriteService.Add(f.db, identity("b@x.com"), 1)
	require.NoError(t, err)

	_, err = f.svc.FavoriteService.Add(f.db, identity("b@x.com"), 1)
	assertAppError(t, err, http.StatusConflict)

	entries, err := f.svc.FavoriteService.ListMine(f.db, identity("b@x.com"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].BiodataID)

	err = f.svc.FavoriteService.Remove(f.db, identity("c@x.com"), fav.ID)
	assertAppError(t, err, http.StatusForbidden)

	require.NoError(t, f.svc.FavoriteService.Remove(f.db, identity("b@x.com"), fav.ID))

	err = f.svc.FavoriteService.Remove(f.db, identity("b@x.com"), fav.ID)
	assertAppError(t, err, http.StatusNotFound)
}

func TestStatsService(t *testing.T) {
	f := seedAccessFixture(t)
	helpers.CreateBiodata(t, f.db, &models.Biodata{BiodataID: 2, OwnerEmail: "m@x.com", Sex: models.SexMale, Age: 30})
	_, err := f.svc.AccessRequestService.Create(f.db, identity("b@x.com"), 1)
	require.NoError(t, err)

	public, err := f.svc.StatsService.Public(f.db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), public.TotalBiodatas)
	assert.Equal(t, int64(1), public.MaleBiodatas)
	assert.Equal(t, int64(1), public.FemaleBiodatas)

	_, err = f.svc.StatsService.Admin(f.db, identity("b@x.com"))
	assertAppError(t, err, http.StatusForbidden)

	admin, err := f.svc.StatsService.Admin(f.db, identity("admin@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), admin.Members)
	assert.Equal(t, int64(1), admin.PendingAccessRequests)
	assert.Equal(t, int64(0), admin.RevenueCents)
}
