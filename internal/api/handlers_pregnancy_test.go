package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/terraincognita07/wellnest/internal/models"
	"github.com/terraincognita07/wellnest/internal/sentiment"
	"github.com/terraincognita07/wellnest/internal/services"
)

func TestPregnancyDayRequiresReferenceDate(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "nodate@example.com")

	response := doJSON(t, app, http.MethodPut, "/api/pregnancy/days/2024-03-10", token, map[string]any{
		"notes": "first kick?",
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", response.StatusCode)
	}
	if got := readAPIError(t, response.Body); got != "error.pregnancy_not_configured" {
		t.Fatalf("expected error.pregnancy_not_configured, got %q", got)
	}
}

func TestSettingsConceptionDrivesPregnancyStatusAndDays(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "pregnant@example.com")

	patchResponse := doJSON(t, app, http.MethodPatch, "/api/settings", token, map[string]any{
		"conceptionDate":           "2024-01-01",
		"pregnancyTrackingEnabled": true,
	})
	defer patchResponse.Body.Close()
	if patchResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected settings status 200, got %d", patchResponse.StatusCode)
	}
	var settings models.UserSettings
	decodeBody(t, patchResponse.Body, &settings)
	if settings.DueDate == nil || *settings.DueDate != "2024-09-23" {
		t.Fatalf("expected derived due date 2024-09-23, got %v", settings.DueDate)
	}
	if !settings.PregnancyTrackingEnabled {
		t.Fatal("expected pregnancy tracking to be enabled")
	}

	statusResponse := doJSON(t, app, http.MethodGet, "/api/pregnancy/status", token, nil)
	defer statusResponse.Body.Close()
	var status services.PregnancyStatus
	decodeBody(t, statusResponse.Body, &status)
	if !status.Configured || status.Week != 11 || status.Trimester != 1 {
		t.Fatalf("expected configured week 11 trimester 1, got %+v", status)
	}
	if status.DaysRemaining != 192 {
		t.Fatalf("expected 192 days remaining, got %d", status.DaysRemaining)
	}

	dayResponse := doJSON(t, app, http.MethodPut, "/api/pregnancy/days/2024-03-10", token, map[string]any{
		"symptoms": []string{"Nausea", "Fatigue"},
		"doctorAppointments": []map[string]string{
			{"date": "2024-03-05", "description": "Dating scan"},
			{"date": "2024-03-20", "description": "Blood test"},
		},
	})
	defer dayResponse.Body.Close()
	if dayResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected day status 200, got %d", dayResponse.StatusCode)
	}
	var day models.PregnancyDay
	decodeBody(t, dayResponse.Body, &day)
	if day.PregnancyWeek != 11 || day.Trimester != 1 || day.BabyGrowthInfo == "" {
		t.Fatalf("expected derived week data, got %+v", day)
	}

	removePast := doJSON(t, app, http.MethodPut, "/api/pregnancy/days/2024-03-10", token, map[string]any{
		"doctorAppointments": []map[string]string{
			{"date": "2024-03-20", "description": "Blood test"},
		},
	})
	defer removePast.Body.Close()
	if removePast.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected past appointment removal to be rejected, got %d", removePast.StatusCode)
	}

	removeFuture := doJSON(t, app, http.MethodPut, "/api/pregnancy/days/2024-03-10", token, map[string]any{
		"doctorAppointments": []map[string]string{
			{"date": "2024-03-05", "description": "Dating scan"},
		},
	})
	defer removeFuture.Body.Close()
	if removeFuture.StatusCode != http.StatusOK {
		t.Fatalf("expected future appointment removal to be accepted, got %d", removeFuture.StatusCode)
	}
}

func TestPatchSettingsRejectsMalformedDate(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "baddate@example.com")

	response := doJSON(t, app, http.MethodPatch, "/api/settings", token, map[string]any{
		"dueDate": "23/09/2024",
	})
	defer response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	if got := readAPIError(t, response.Body); got != "error.invalid_settings_date" {
		t.Fatalf("expected error.invalid_settings_date, got %q", got)
	}
}

func TestTopPregnancySymptomsEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "pregsymptoms@example.com")

	patch := doJSON(t, app, http.MethodPatch, "/api/settings", token, map[string]any{"dueDate": "2024-09-23"})
	patch.Body.Close()

	for _, date := range []string{"2024-03-01", "2024-03-02"} {
		response := doJSON(t, app, http.MethodPut, "/api/pregnancy/days/"+date, token, map[string]any{
			"symptoms": []string{"Heartburn"},
		})
		response.Body.Close()
	}

	response := doJSON(t, app, http.MethodGet, "/api/pregnancy/symptoms/top", token, nil)
	defer response.Body.Close()
	var top []services.SymptomFrequency
	decodeBody(t, response.Body, &top)
	if len(top) != 1 || top[0].Symptom != "Heartburn" || top[0].Count != 2 {
		t.Fatalf("unexpected top pregnancy symptoms %+v", top)
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sentiment.Result{Label: sentiment.LabelPositive, Score: 0.93}}
	app := newTestAppWithOptions(t, testAppOptions{analyzer: analyzer})
	token := registerTestUser(t, app, "mood@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/sentiment", token, map[string]string{"text": "Slept well"})
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	var result sentiment.Result
	decodeBody(t, response.Body, &result)
	if result != analyzer.result {
		t.Fatalf("expected %+v, got %+v", analyzer.result, result)
	}
	if len(analyzer.texts) != 1 || analyzer.texts[0] != "Slept well" {
		t.Fatalf("expected text to reach analyzer, got %v", analyzer.texts)
	}
}

func TestAnalyzeSentimentErrors(t *testing.T) {
	testCases := []struct {
		name     string
		analyzer SentimentAnalyzer
		status   int
		key      string
	}{
		{name: "not configured", analyzer: nil, status: http.StatusServiceUnavailable, key: "error.sentiment_unavailable"},
		{name: "empty text", analyzer: &fakeAnalyzer{err: sentiment.ErrEmptyText}, status: http.StatusBadRequest, key: "error.empty_text"},
		{name: "upstream down", analyzer: &fakeAnalyzer{err: errors.Join(sentiment.ErrSentimentUnavailable)}, status: http.StatusServiceUnavailable, key: "error.sentiment_unavailable"},
	}

	for _, testCase := range testCases {
		app := newTestAppWithOptions(t, testAppOptions{analyzer: testCase.analyzer})
		token := registerTestUser(t, app, "errors@example.com")

		response := doJSON(t, app, http.MethodPost, "/api/sentiment", token, map[string]string{"text": ""})
		if response.StatusCode != testCase.status {
			t.Fatalf("%s: expected status %d, got %d", testCase.name, testCase.status, response.StatusCode)
		}
		if got := readAPIError(t, response.Body); got != testCase.key {
			t.Fatalf("%s: expected %s, got %q", testCase.name, testCase.key, got)
		}
		response.Body.Close()
	}
}

func TestSymptomCatalog(t *testing.T) {
	app := newTestApp(t)
	token := registerTestUser(t, app, "catalog@example.com")

	response := doJSON(t, app, http.MethodGet, "/api/symptoms?kind=pregnancy", token, nil)
	defer response.Body.Close()
	var catalog []models.BuiltinSymptom
	decodeBody(t, response.Body, &catalog)
	if len(catalog) != len(models.DefaultPregnancySymptoms()) {
		t.Fatalf("expected pregnancy catalog, got %d entries", len(catalog))
	}
}
