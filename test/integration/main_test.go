package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"testing"

	"destined_affinity/test/helpers"

	"github.com/stretchr/testify/require"
)

// errorBody - формат ошибки API
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type biodataView struct {
	BiodataID         int     `json:"biodataId"`
	Sex               string  `json:"sex"`
	Age               int     `json:"age"`
	PermanentDivision string  `json:"permanentDivision"`
	Visibility        string  `json:"visibility"`
	Name              *string `json:"name"`
	Mobile            *string `json:"mobile"`
	ContactEmail      *string `json:"contactEmail"`
}

type accessRequest struct {
	ID             string `json:"id"`
	BiodataID      int    `json:"biodataId"`
	RequesterEmail string `json:"requesterEmail"`
	Status         string `json:"status"`
}

// putBiodata - PUT /biodatas/me; возвращает созданную или обновленную анкету
func putBiodata(t *testing.T, ts *helpers.TestServer, token string, body map[string]interface{}) biodataView {
	t.Helper()
	res, raw := ts.SendRequest(t, http.MethodPut, "/api/v1/biodatas/me", token, body)
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, res.StatusCode, raw)

	var view biodataView
	helpers.DecodeJSON(t, raw, &view)
	return view
}

func getBiodata(t *testing.T, ts *helpers.TestServer, token string, biodataID int) biodataView {
	t.Helper()
	res, raw := ts.SendRequest(t, http.MethodGet, biodataPath(biodataID), token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, raw)

	var view biodataView
	helpers.DecodeJSON(t, raw, &view)
	return view
}

func biodataPath(id int) string {
	return "/api/v1/biodatas/" + strconv.Itoa(id)
}

// putBiodataRaw - без testify, для вызова из горутин
func putBiodataRaw(ts *helpers.TestServer, token string, body map[string]interface{}) (int, biodataView, error) {
	var view biodataView
	status, raw, err := doRaw(ts, http.MethodPut, "/api/v1/biodatas/me", token, body)
	if err != nil {
		return 0, view, err
	}
	if err := json.Unmarshal(raw, &view); err != nil {
		return status, view, err
	}
	return status, view, nil
}

func doRaw(ts *helpers.TestServer, method, path, token string, body interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	return res.StatusCode, raw, err
}
