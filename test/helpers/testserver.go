package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"destined_affinity/internal/app"
	"destined_affinity/internal/config"
	"destined_affinity/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "my_super_secret_key_for_tests_12345"

// TestServer - приложение поверх изолированной SQLite базы
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	App    *app.Application
	Config *config.Config
}

// NewTestServer поднимает приложение с LogProvider, NoopPublisher и LocalStorage
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := config.Defaults()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Database.Driver = "sqlite"

	db := NewTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err, "Не удалось получить *sql.DB из GORM")

	application := app.SetupRouter(cfg, db, sqlDB, app.Dependencies{})
	server := httptest.NewServer(application.Router)

	ts := &TestServer{
		Server: server,
		DB:     db,
		App:    application,
		Config: cfg,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.App.Notifier.Wait()
}

// Login выпускает токен через POST /api/v1/jwt, как это делает фронтенд
func (ts *TestServer) Login(t *testing.T, email string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jwt", "", map[string]interface{}{
		"email":       email,
		"displayName": email,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин не удался: %s", body)

	var parsed struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	require.NotEmpty(t, parsed.Token)
	return parsed.Token
}

// LoginAdmin создает админа в базе и выпускает ему токен
func (ts *TestServer) LoginAdmin(t *testing.T, email string) string {
	t.Helper()

	CreateMember(t, ts.DB, email, models.MemberRoleAdmin)
	token, _, err := ts.App.Tokens.Issue(email, models.MemberRoleAdmin)
	require.NoError(t, err)
	return token
}

// IssueToken - токен без обращения к базе (роль в токене информативна)
func (ts *TestServer) IssueToken(t *testing.T, email string) string {
	t.Helper()

	token, _, err := ts.App.Tokens.Issue(email, models.MemberRoleMember)
	require.NoError(t, err)
	return token
}

// SendRequest отправляет JSON-запрос с Bearer токеном и возвращает ответ и тело
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err, "Ошибка создания HTTP-запроса")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := ts.Server.Client()
	client.Timeout = 10 * time.Second
	res, err := client.Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")

	return res, string(resBodyBytes)
}

// DecodeJSON разбирает тело ответа в v
func DecodeJSON(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v), "Ответ не JSON: %s", body)
}
