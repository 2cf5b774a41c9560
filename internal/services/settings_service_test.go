package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
)

func TestSettingsServiceConceptionDerivesDueDate(t *testing.T) {
	notifier := &recordingNotifier{}
	service := NewSettingsService(newStubSettingsStore(), notifier, nil)

	settings, err := service.SaveSettings(1, models.SettingsPatch{ConceptionDate: stringPointer(" 2024-01-01 ")})
	if err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	if settings.ConceptionDate == nil || *settings.ConceptionDate != "2024-01-01" {
		t.Fatalf("expected conception 2024-01-01, got %v", settings.ConceptionDate)
	}
	if settings.DueDate == nil || *settings.DueDate != "2024-09-23" {
		t.Fatalf("expected derived due date 2024-09-23, got %v", settings.DueDate)
	}
	if len(notifier.events) != 1 || notifier.events[0].Kind != ChangeKindSettings {
		t.Fatalf("expected one settings change event, got %+v", notifier.events)
	}
}

func TestSettingsServiceMergesPartialPatches(t *testing.T) {
	service := NewSettingsService(newStubSettingsStore(), nil, nil)

	enabled := true
	if _, err := service.SaveSettings(1, models.SettingsPatch{PregnancyTrackingEnabled: &enabled}); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	settings, err := service.SaveSettings(1, models.SettingsPatch{DueDate: stringPointer("2024-10-01")})
	if err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	if !settings.PregnancyTrackingEnabled {
		t.Fatal("expected earlier field to survive a partial patch")
	}
	if settings.DueDate == nil || *settings.DueDate != "2024-10-01" {
		t.Fatalf("expected due date 2024-10-01, got %v", settings.DueDate)
	}

	cleared, err := service.SaveSettings(1, models.SettingsPatch{DueDate: stringPointer("")})
	if err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	if cleared.DueDate != nil {
		t.Fatalf("expected empty string to clear the due date, got %v", *cleared.DueDate)
	}
}

func TestSettingsServiceRejectsMalformedDates(t *testing.T) {
	notifier := &recordingNotifier{}
	service := NewSettingsService(newStubSettingsStore(), notifier, nil)

	_, err := service.SaveSettings(1, models.SettingsPatch{ConceptionDate: stringPointer("01/02/2024")})
	if !errors.Is(err, ErrInvalidSettingsDate) {
		t.Fatalf("expected ErrInvalidSettingsDate, got %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatal("rejected patch must not notify")
	}
}

func TestSettingsServiceWrapsStoreErrors(t *testing.T) {
	store := newStubSettingsStore()
	store.err = errStubFailure
	service := NewSettingsService(store, nil, nil)

	if _, err := service.LoadSettings(1); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := service.SaveSettings(1, models.SettingsPatch{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestSettingsServicePregnancyStatus(t *testing.T) {
	service := NewSettingsService(newStubSettingsStore(), nil, nil)
	if _, err := service.SaveSettings(1, models.SettingsPatch{ConceptionDate: stringPointer("2024-01-01")}); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}

	status, err := service.PregnancyStatus(1, testNow, time.UTC)
	if err != nil {
		t.Fatalf("PregnancyStatus returned error: %v", err)
	}
	if !status.Configured || status.Week != 11 || status.DaysRemaining != 192 {
		t.Fatalf("unexpected status %+v", status)
	}
}
