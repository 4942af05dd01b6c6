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
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cycletracker/internal/db"
	"github.com/terraincognita07/cycletracker/internal/i18n"
	"github.com/terraincognita07/cycletracker/internal/services"
)

var testToday = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func newCycleDataTestApp(t *testing.T) (*fiber.App, *Metrics) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cycletracker-api-test.db"), nil)
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

	i18nManager, err := i18n.NewEmbeddedManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	metrics := NewMetrics()
	service := services.NewProfileService(db.NewProfileRepository(database), metrics)
	handler, err := NewHandler(service, i18nManager, logger)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testToday }

	return NewApp(handler, AppOptions{Metrics: metrics}), metrics
}

func doJSONRequest(t *testing.T, app *fiber.App, method string, path string, body string, language string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if language != "" {
		request.Header.Set("Accept-Language", language)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return response, raw
}

func decodeJSON[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		t.Fatalf("decode json %s: %v", string(raw), err)
	}
	return value
}

func assertStatus(t *testing.T, response *http.Response, body []byte, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func assertErrorMessage(t *testing.T, body []byte, expected string) {
	t.Helper()
	payload := decodeJSON[map[string]string](t, body)
	if payload["error"] != expected {
		t.Fatalf("expected error %q, got %q", expected, payload["error"])
	}
}
