package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/wellnest/internal/models"
)

func newTestPregnancyServices(t *testing.T) (*PregnancyDayService, *SettingsService, *stubPregnancyDayStore, *recordingNotifier) {
	t.Helper()

	notifier := &recordingNotifier{}
	settings := NewSettingsService(newStubSettingsStore(), notifier, nil)
	store := newStubPregnancyDayStore()
	return NewPregnancyDayService(store, settings, notifier, nil, nil), settings, store, notifier
}

func TestPregnancyDayServiceRequiresReferenceDate(t *testing.T) {
	service, _, store, _ := newTestPregnancyServices(t)

	_, err := service.SaveDay(1, "2024-03-01", PregnancyDayInput{Notes: "hello"}, testNow)
	if !errors.Is(err, ErrPregnancyNotConfigured) {
		t.Fatalf("expected ErrPregnancyNotConfigured, got %v", err)
	}
	if len(store.days[1]) != 0 {
		t.Fatal("expected nothing stored")
	}
}

func TestPregnancyDayServiceDerivesWeekAtSaveTime(t *testing.T) {
	service, settings, _, notifier := newTestPregnancyServices(t)
	if _, err := settings.SaveSettings(1, models.SettingsPatch{ConceptionDate: stringPointer("2024-01-01")}); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	notifier.events = nil

	day, err := service.SaveDay(1, "2024-03-10", PregnancyDayInput{
		Symptoms: []string{"Heartburn", "Heartburn"},
		DoctorAppointments: []models.DoctorAppointment{
			{Date: "2024-04-02", Description: "  Ultrasound "},
		},
	}, testNow)
	if err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}
	if day.PregnancyWeek != 11 || day.Trimester != 1 {
		t.Fatalf("expected week 11 trimester 1, got %d/%d", day.PregnancyWeek, day.Trimester)
	}
	if day.BabyGrowthInfo != BabyGrowthInfo(11) {
		t.Fatalf("unexpected growth snapshot %q", day.BabyGrowthInfo)
	}
	if len(day.Symptoms) != 1 || day.DoctorAppointments[0].Description != "Ultrasound" {
		t.Fatalf("expected normalized symptoms and appointments, got %+v", day)
	}
	if len(notifier.events) != 1 || notifier.events[0].Kind != ChangeKindPregnancy {
		t.Fatalf("expected one pregnancy change event, got %+v", notifier.events)
	}
}

func TestPregnancyDayServiceRejectsInvalidAppointments(t *testing.T) {
	service, settings, _, _ := newTestPregnancyServices(t)
	if _, err := settings.SaveSettings(1, models.SettingsPatch{DueDate: stringPointer("2024-09-01")}); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}

	for _, appointment := range []models.DoctorAppointment{
		{Date: "2024-13-01", Description: "checkup"},
		{Date: "2024-04-01", Description: "   "},
	} {
		_, err := service.SaveDay(1, "2024-03-10", PregnancyDayInput{
			DoctorAppointments: []models.DoctorAppointment{appointment},
		}, testNow)
		if !errors.Is(err, ErrInvalidAppointment) {
			t.Fatalf("expected ErrInvalidAppointment for %+v, got %v", appointment, err)
		}
	}
}

func TestPregnancyDayServiceProtectsPastAppointments(t *testing.T) {
	service, settings, _, _ := newTestPregnancyServices(t)
	if _, err := settings.SaveSettings(1, models.SettingsPatch{ConceptionDate: stringPointer("2024-01-01")}); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}

	past := models.DoctorAppointment{Date: "2024-03-01", Description: "Blood test"}
	future := models.DoctorAppointment{Date: "2024-03-20", Description: "Scan"}
	if _, err := service.SaveDay(1, "2024-03-01", PregnancyDayInput{
		DoctorAppointments: []models.DoctorAppointment{past, future},
	}, testNow); err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}

	_, err := service.SaveDay(1, "2024-03-01", PregnancyDayInput{
		DoctorAppointments: []models.DoctorAppointment{future},
	}, testNow)
	if !errors.Is(err, ErrPastAppointmentRemoval) {
		t.Fatalf("expected ErrPastAppointmentRemoval, got %v", err)
	}

	day, err := service.SaveDay(1, "2024-03-01", PregnancyDayInput{
		DoctorAppointments: []models.DoctorAppointment{past},
	}, testNow)
	if err != nil {
		t.Fatalf("removing a future appointment should be allowed, got %v", err)
	}
	if len(day.DoctorAppointments) != 1 || day.DoctorAppointments[0] != past {
		t.Fatalf("expected only the past appointment to remain, got %+v", day.DoctorAppointments)
	}
}

func TestRemovedPastAppointmentsCountsDuplicates(t *testing.T) {
	past := models.DoctorAppointment{Date: "2024-03-01", Description: "Blood test"}
	removed := RemovedPastAppointments(
		[]models.DoctorAppointment{past, past},
		[]models.DoctorAppointment{past},
		mustDay("2024-03-15"),
	)
	if len(removed) != 1 {
		t.Fatalf("expected one removed duplicate, got %+v", removed)
	}
}

func TestPregnancyDayServiceDeleteMonth(t *testing.T) {
	service, settings, store, _ := newTestPregnancyServices(t)
	if _, err := settings.SaveSettings(1, models.SettingsPatch{ConceptionDate: stringPointer("2024-01-01")}); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}
	for _, date := range []string{"2024-02-01", "2024-02-02"} {
		if _, err := service.SaveDay(1, date, PregnancyDayInput{Notes: date}, testNow); err != nil {
			t.Fatalf("SaveDay(%s) returned error: %v", date, err)
		}
	}
	store.failDeletes["2024-02-01"] = true

	results, err := service.DeleteMonth(1, "2024-02")
	if err != nil {
		t.Fatalf("DeleteMonth returned error: %v", err)
	}
	if len(results) != 2 || results[0].Deleted || !results[1].Deleted {
		t.Fatalf("expected first key to fail and second to be deleted, got %+v", results)
	}

	days, err := service.ListDays(1)
	if err != nil {
		t.Fatalf("ListDays returned error: %v", err)
	}
	if _, ok := days["2024-02-01"]; !ok || len(days) != 1 {
		t.Fatalf("expected only the failed key to remain, got %+v", days)
	}
}
