package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/mahwari/internal/db"
	"go.uber.org/zap"
)

const testSecretKey = "test-secret-key-with-at-least-32-chars"

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "mahwari-test.db")
	database, err := db.OpenSQLite(databasePath, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.CloseSQLite(database)
	})

	handler, err := NewHandler(database, Options{
		SecretKey: testSecretKey,
		Location:  time.UTC,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return NewApp(handler, zap.NewNop()), handler
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, body string, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}

func responseCookie(t *testing.T, response *http.Response) string {
	t.Helper()
	for _, cookie := range response.Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("session cookie is missing in response")
	return ""
}

// setupAndUnlock creates the PIN and returns the session cookie.
func setupAndUnlock(t *testing.T, app *fiber.App, pin string) string {
	t.Helper()
	response := doJSON(t, app, http.MethodPost, "/api/auth/setup", `{"pin":"`+pin+`"}`, "")
	expectStatus(t, response, http.StatusCreated)
	return responseCookie(t, response)
}
