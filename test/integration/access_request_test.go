package integration_test

import (
	"net/http"
	"sync"
	"testing"

	"destined_affinity/internal/models"
	"destined_affinity/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessRequest_ConcurrentDuplicate(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	owner := ts.Login(t, "owner@x.com")
	viewer := ts.Login(t, "viewer@x.com")
	created := putBiodata(t, ts, owner, map[string]interface{}{"sex": "Female", "age": 26})

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses []int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _, err := doRaw(ts, http.MethodPost, "/api/v1/requested-access", viewer, map[string]interface{}{
				"biodataId": created.BiodataID,
			})
			if err != nil {
				t.Errorf("request failed: %v", err)
				return
			}
			mu.Lock()
			statuses = append(statuses, status)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, statuses)

	var count int64
	require.NoError(t, ts.DB.Model(&models.AccessRequest{}).
		Where("biodata_id = ? AND requester_email = ?", created.BiodataID, "viewer@x.com").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAccessRequest_RulesAndLifecycle(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	owner := ts.Login(t, "owner@x.com")
	viewer := ts.Login(t, "viewer@x.com")
	adminToken := ts.LoginAdmin(t, "admin@x.com")
	created := putBiodata(t, ts, owner, map[string]interface{}{"sex": "Male", "age": 29})

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/requested-access", owner, map[string]interface{}{
		"biodataId": created.BiodataID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "own biodata")

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/requested-access", viewer, map[string]interface{}{
		"biodataId": 4242,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, raw := ts.SendRequest(t, http.MethodPost, "/api/v1/requested-access", viewer, map[string]interface{}{
		"biodataId": created.BiodataID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, raw)
	var request accessRequest
	helpers.DecodeJSON(t, raw, &request)

	res, raw = ts.SendRequest(t, http.MethodGet, "/api/v1/requested-access/me", viewer, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)
	var mine struct {
		Requests []accessRequest `json:"requests"`
	}
	helpers.DecodeJSON(t, raw, &mine)
	require.Len(t, mine.Requests, 1)

	res, raw = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/access-requests?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)
	var pending struct {
		Requests []accessRequest `json:"requests"`
	}
	helpers.DecodeJSON(t, raw, &pending)
	require.Len(t, pending.Requests, 1)
	assert.Equal(t, request.ID, pending.Requests[0].ID)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/access-requests", viewer, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// чужой запрос удалить нельзя
	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/requested-access/"+request.ID, owner, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, raw = ts.SendRequest(t, http.MethodDelete, "/api/v1/requested-access/"+request.ID, viewer, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/requested-access/"+request.ID, viewer, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
