package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/i18n"
	"github.com/terraincognita07/wellnest/internal/sentiment"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakeAnalyzer struct {
	result sentiment.Result
	err    error
	texts  []string
}

func (analyzer *fakeAnalyzer) Analyze(_ context.Context, text string) (sentiment.Result, error) {
	analyzer.texts = append(analyzer.texts, text)
	return analyzer.result, analyzer.err
}

type testAppOptions struct {
	analyzer SentimentAnalyzer
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithOptions(t, testAppOptions{})
}

func newTestAppWithOptions(t *testing.T, options testAppOptions) *fiber.App {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "wellnest-api-test.db")
	database, err := db.OpenSQLite(databasePath, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	deps := NewDependencies(database, ServiceConfig{
		Location: time.UTC,
		Notifier: services.NewChangeHub(),
		I18n:     i18nManager,
	})
	deps.Sentiment = options.analyzer

	handler, err := NewHandler(deps, Options{
		SecretKey: testSecretKey,
		Location:  time.UTC,
		Now:       func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "StrongPass1",
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}

	payload := struct {
		Token string `json:"token"`
	}{}
	decodeBody(t, response.Body, &payload)
	if payload.Token == "" {
		t.Fatal("expected register response to include a token")
	}
	return payload.Token
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeBody(t *testing.T, body io.Reader, target any) {
	t.Helper()
	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(content, target); err != nil {
		t.Fatalf("decode response body %q: %v", content, err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()
	payload := map[string]string{}
	decodeBody(t, body, &payload)
	return payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
