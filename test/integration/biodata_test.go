package integration_test

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"

	"destined_affinity/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type biodataList struct {
	Biodatas   []biodataView `json:"biodatas"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

func TestBiodata_ListFilterByAge(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	for i, age := range []int{24, 26, 29, 31} {
		token := ts.Login(t, fmt.Sprintf("f%d@x.com", i))
		putBiodata(t, ts, token, map[string]interface{}{
			"name":   fmt.Sprintf("Female %d", age),
			"sex":    "Female",
			"age":    age,
			"mobile": "+880170000000" + fmt.Sprint(i),
		})
	}
	maleToken := ts.Login(t, "m@x.com")
	putBiodata(t, ts, maleToken, map[string]interface{}{"sex": "Male", "age": 27})

	// гость
	res, raw := ts.SendRequest(t, http.MethodGet, "/api/v1/biodatas?sex=Female&minAge=25&maxAge=30&sort=age_asc", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)

	var list biodataList
	helpers.DecodeJSON(t, raw, &list)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, 1, list.TotalPages)
	require.Len(t, list.Biodatas, 2)

	ages := []int{list.Biodatas[0].Age, list.Biodatas[1].Age}
	assert.Equal(t, []int{26, 29}, ages)
	for _, view := range list.Biodatas {
		assert.Equal(t, "public", view.Visibility)
		assert.Nil(t, view.Name)
		assert.Nil(t, view.Mobile)
		assert.Nil(t, view.ContactEmail)
	}

	// ключи диапазона, которые шлет веб-клиент
	res, raw = ts.SendRequest(t, http.MethodGet, "/api/v1/biodatas?sex=Female&minValue=25&maxValue=30", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)
	var clientList biodataList
	helpers.DecodeJSON(t, raw, &clientList)
	assert.Equal(t, int64(2), clientList.Total)
	require.Len(t, clientList.Biodatas, 2)
	clientAges := []int{clientList.Biodatas[0].Age, clientList.Biodatas[1].Age}
	sort.Ints(clientAges)
	assert.Equal(t, []int{26, 29}, clientAges)
	for _, view := range clientList.Biodatas {
		assert.Nil(t, view.Mobile)
		assert.Nil(t, view.ContactEmail)
	}

	res, raw = ts.SendRequest(t, http.MethodGet, "/api/v1/biodatas?sex=Unknown", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, raw)
}

func TestBiodata_UpsertKeepsID(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token := ts.Login(t, "owner@x.com")

	// первое сохранение без sex отклоняется
	res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/biodatas/me", token, map[string]interface{}{"age": 30})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, raw := ts.SendRequest(t, http.MethodPut, "/api/v1/biodatas/me", token, map[string]interface{}{"sex": "Male", "age": 30})
	require.Equal(t, http.StatusCreated, res.StatusCode, raw)
	var first biodataView
	helpers.DecodeJSON(t, raw, &first)

	res, raw = ts.SendRequest(t, http.MethodPut, "/api/v1/biodatas/me", token, map[string]interface{}{"age": 31, "name": "Rahim"})
	require.Equal(t, http.StatusOK, res.StatusCode, raw)
	var second biodataView
	helpers.DecodeJSON(t, raw, &second)

	assert.Equal(t, first.BiodataID, second.BiodataID)
	assert.Equal(t, 31, second.Age)
	assert.Equal(t, "Male", second.Sex)

	res, raw = ts.SendRequest(t, http.MethodGet, "/api/v1/biodatas/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)
}

func TestBiodata_ConcurrentFirstWrites(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	const n = 6
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = ts.Login(t, fmt.Sprintf("user%d@x.com", i))
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids []int
	)
	for _, token := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			status, view, err := putBiodataRaw(ts, token, map[string]interface{}{"sex": "Female", "age": 25})
			if err != nil || status != http.StatusCreated {
				t.Errorf("unexpected result: status=%d err=%v", status, err)
				return
			}
			mu.Lock()
			ids = append(ids, view.BiodataID)
			mu.Unlock()
		}(token)
	}
	wg.Wait()

	require.Len(t, ids, n)
	sort.Ints(ids)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids)
}

func TestBiodata_PremiumListing(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	token := ts.Login(t, "premium@x.com")
	adminToken := ts.LoginAdmin(t, "admin@x.com")
	putBiodata(t, ts, token, map[string]interface{}{"sex": "Male", "age": 33})

	res, raw := ts.SendRequest(t, http.MethodPost, "/api/v1/members/me/premium-request", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)

	res, raw = ts.SendRequest(t, http.MethodPatch, "/api/v1/admin/premium-requests/premium@x.com", adminToken, map[string]interface{}{
		"status": "premium",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, raw)

	res, raw = ts.SendRequest(t, http.MethodGet, "/api/v1/biodatas/premium?sort=desc", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)

	var list biodataList
	helpers.DecodeJSON(t, raw, &list)
	require.Len(t, list.Biodatas, 1)
	assert.Equal(t, 33, list.Biodatas[0].Age)
}
