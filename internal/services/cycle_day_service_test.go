package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/wellnest/internal/models"
)

func newTestCycleDayService(store *stubCycleDayStore, notifier ChangeNotifier) *CycleDayService {
	return NewCycleDayService(store, notifier, nil, nil)
}

func TestCycleDayServiceSaveDayReplacesWholeRecord(t *testing.T) {
	store := newStubCycleDayStore()
	notifier := &recordingNotifier{}
	service := newTestCycleDayService(store, notifier)

	first, err := service.SaveDay(1, "2024-03-01", CycleDayInput{
		PeriodStatus: "Start",
		Flow:         "HEAVY",
		Symptoms:     []string{"Cramps", "Cramps", " Fatigue "},
		Notes:        "first",
	}, testNow)
	if err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}
	if first.PeriodStatus != models.PeriodStatusStart || first.Flow != models.FlowHeavy {
		t.Fatalf("expected normalized period fields, got %q/%q", first.PeriodStatus, first.Flow)
	}
	if len(first.Symptoms) != 2 || first.Type != models.DayTypePeriod {
		t.Fatalf("expected deduplicated symptoms and period type, got %v %q", first.Symptoms, first.Type)
	}

	again, err := service.SaveDay(1, "2024-03-01", CycleDayInput{
		PeriodStatus: "Start",
		Flow:         "HEAVY",
		Symptoms:     []string{"Cramps", "Cramps", " Fatigue "},
		Notes:        "first",
	}, testNow)
	if err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}
	if again.Date != first.Date || again.Notes != first.Notes || again.Type != first.Type {
		t.Fatalf("expected identical record on identical save, got %+v vs %+v", again, first)
	}

	second, err := service.SaveDay(1, "2024-03-01", CycleDayInput{Notes: "only notes"}, testNow)
	if err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}
	if second.PeriodStatus != models.PeriodStatusNone || second.Flow != models.FlowNone || len(second.Symptoms) != 0 {
		t.Fatalf("expected previous fields to be cleared, got %+v", second)
	}
	if second.Type != models.DayTypeNotes {
		t.Fatalf("expected notes type, got %q", second.Type)
	}

	if len(notifier.events) != 3 {
		t.Fatalf("expected 3 change events, got %d", len(notifier.events))
	}
	event := notifier.events[0]
	if event.OwnerID != 1 || event.Kind != ChangeKindCycle || event.Date != "2024-03-01" || event.ID == "" {
		t.Fatalf("unexpected change event %+v", event)
	}
}

func TestCycleDayServiceSaveDayValidation(t *testing.T) {
	testCases := []struct {
		name  string
		date  string
		input CycleDayInput
		want  error
	}{
		{name: "bad date", date: "2024-02-30", input: CycleDayInput{}, want: ErrInvalidDate},
		{name: "bad period status", date: "2024-03-01", input: CycleDayInput{PeriodStatus: "maybe"}, want: ErrInvalidPeriodStatus},
		{name: "bad flow", date: "2024-03-01", input: CycleDayInput{Flow: "torrential"}, want: ErrInvalidFlow},
		{name: "future period", date: "2024-03-16", input: CycleDayInput{PeriodStatus: "start"}, want: ErrFuturePeriodDate},
		{name: "future flow", date: "2024-04-01", input: CycleDayInput{Flow: "light"}, want: ErrFuturePeriodDate},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			store := newStubCycleDayStore()
			notifier := &recordingNotifier{}
			service := newTestCycleDayService(store, notifier)

			_, err := service.SaveDay(1, testCase.date, testCase.input, testNow)
			if !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
			if len(store.days[1]) != 0 || len(notifier.events) != 0 {
				t.Fatal("rejected save must not touch the store or notify")
			}
		})
	}
}

func TestCycleDayServiceAllowsFutureSymptomsAndNotes(t *testing.T) {
	service := newTestCycleDayService(newStubCycleDayStore(), nil)

	day, err := service.SaveDay(1, "2024-04-01", CycleDayInput{Symptoms: []string{"Acne"}, Flow: "none"}, testNow)
	if err != nil {
		t.Fatalf("expected future symptom day to be accepted, got %v", err)
	}
	if day.Type != models.DayTypeSymptoms {
		t.Fatalf("expected symptoms type, got %q", day.Type)
	}
}

func TestCycleDayServiceStoreFailureIsWrapped(t *testing.T) {
	store := newStubCycleDayStore()
	store.upsertErr = errStubFailure
	notifier := &recordingNotifier{}
	service := newTestCycleDayService(store, notifier)

	_, err := service.SaveDay(1, "2024-03-01", CycleDayInput{Notes: "x"}, testNow)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if len(notifier.events) != 0 {
		t.Fatal("failed save must not notify")
	}
}

func TestCycleDayServiceListDaysInRangeFallsBackOnUnsupportedQuery(t *testing.T) {
	store := newStubCycleDayStore()
	service := newTestCycleDayService(store, nil)
	for _, date := range []string{"2024-01-31", "2024-02-01", "2024-02-15", "2024-03-01"} {
		if _, err := service.SaveDay(1, date, CycleDayInput{Notes: date}, testNow); err != nil {
			t.Fatalf("SaveDay(%s) returned error: %v", date, err)
		}
	}

	store.rangeErr = ErrUnsupportedQuery
	days, err := service.ListDaysInRange(1, "2024-02-01", "2024-02-29")
	if err != nil {
		t.Fatalf("ListDaysInRange returned error: %v", err)
	}
	if len(days) != 2 || days[0].Date != "2024-02-01" || days[1].Date != "2024-02-15" {
		t.Fatalf("expected the two february days, got %+v", days)
	}

	store.rangeErr = errStubFailure
	if _, err := service.ListDaysInRange(1, "", ""); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable for other range failures, got %v", err)
	}

	store.rangeErr = nil
	if _, err := service.ListDaysInRange(1, "bad", ""); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for a malformed bound, got %v", err)
	}
}

func TestCycleDayServiceDeleteDayIsIdempotent(t *testing.T) {
	store := newStubCycleDayStore()
	notifier := &recordingNotifier{}
	service := newTestCycleDayService(store, notifier)

	if _, err := service.SaveDay(1, "2024-03-01", CycleDayInput{Notes: "x"}, testNow); err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}
	for attempt := 0; attempt < 2; attempt++ {
		if err := service.DeleteDay(1, "2024-03-01"); err != nil {
			t.Fatalf("DeleteDay attempt %d returned error: %v", attempt, err)
		}
	}
	if _, found, _ := service.GetDay(1, "2024-03-01"); found {
		t.Fatal("expected record to be gone")
	}
}

func TestCycleDayServiceDeleteMonthReportsPerKeyResults(t *testing.T) {
	store := newStubCycleDayStore()
	notifier := &recordingNotifier{}
	service := newTestCycleDayService(store, notifier)
	for _, date := range []string{"2024-02-01", "2024-02-10", "2024-02-20", "2024-03-01"} {
		if _, err := service.SaveDay(1, date, CycleDayInput{Notes: date}, testNow); err != nil {
			t.Fatalf("SaveDay(%s) returned error: %v", date, err)
		}
	}
	notifier.events = nil
	store.failDeletes["2024-02-10"] = true

	results, err := service.DeleteMonth(1, "2024-02")
	if err != nil {
		t.Fatalf("DeleteMonth returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %+v", results)
	}
	if !results[0].Deleted || results[1].Deleted || results[1].Error == "" || !results[2].Deleted {
		t.Fatalf("expected middle key to fail and others to succeed, got %+v", results)
	}
	if DeleteResultsFailed(results) != 1 {
		t.Fatalf("expected one failure, got %d", DeleteResultsFailed(results))
	}
	if _, found, _ := service.GetDay(1, "2024-02-01"); found {
		t.Fatal("expected earlier deletion to stay applied")
	}
	if _, found, _ := service.GetDay(1, "2024-03-01"); !found {
		t.Fatal("expected other months to be untouched")
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected one change event for the batch, got %d", len(notifier.events))
	}
}

func TestCycleDayServiceDeleteMonthRejectsBadMonth(t *testing.T) {
	service := newTestCycleDayService(newStubCycleDayStore(), nil)
	if _, err := service.DeleteMonth(1, "2024-2"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestCycleDayServiceScopesByOwner(t *testing.T) {
	service := newTestCycleDayService(newStubCycleDayStore(), nil)
	if _, err := service.SaveDay(1, "2024-03-01", CycleDayInput{Notes: "mine"}, testNow); err != nil {
		t.Fatalf("SaveDay returned error: %v", err)
	}

	days, err := service.ListDays(2)
	if err != nil {
		t.Fatalf("ListDays returned error: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no records for another owner, got %+v", days)
	}
}
