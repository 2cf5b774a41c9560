package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
)

var (
	testNow         = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	errStubFailure  = errors.New("stub failure")
	errStubDeleteAt = errors.New("stub delete failure")
)

func mustDay(raw string) time.Time {
	day, err := ParseDay(raw)
	if err != nil {
		panic(err)
	}
	return day
}

func stringPointer(value string) *string {
	return &value
}

type stubCycleDayStore struct {
	days        map[uint]map[string]models.CycleDay
	rangeErr    error
	listErr     error
	upsertErr   error
	failDeletes map[string]bool
	deleted     []string
}

func newStubCycleDayStore() *stubCycleDayStore {
	return &stubCycleDayStore{
		days:        make(map[uint]map[string]models.CycleDay),
		failDeletes: make(map[string]bool),
	}
}

func (store *stubCycleDayStore) Upsert(entry *models.CycleDay) (models.CycleDay, error) {
	if store.upsertErr != nil {
		return models.CycleDay{}, store.upsertErr
	}
	if store.days[entry.OwnerID] == nil {
		store.days[entry.OwnerID] = make(map[string]models.CycleDay)
	}
	store.days[entry.OwnerID][entry.Date] = *entry
	return *entry, nil
}

func (store *stubCycleDayStore) FindByOwnerAndDate(ownerID uint, date string) (models.CycleDay, bool, error) {
	entry, ok := store.days[ownerID][date]
	return entry, ok, nil
}

func (store *stubCycleDayStore) ListByOwner(ownerID uint) ([]models.CycleDay, error) {
	if store.listErr != nil {
		return nil, store.listErr
	}
	days := make([]models.CycleDay, 0, len(store.days[ownerID]))
	for _, day := range store.days[ownerID] {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

func (store *stubCycleDayStore) ListByOwnerRange(ownerID uint, from string, to string) ([]models.CycleDay, error) {
	if store.rangeErr != nil {
		return nil, store.rangeErr
	}
	all, err := store.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.CycleDay, 0, len(all))
	for _, day := range all {
		if (from == "" || day.Date >= from) && (to == "" || day.Date <= to) {
			filtered = append(filtered, day)
		}
	}
	return filtered, nil
}

func (store *stubCycleDayStore) ListDatesByMonth(ownerID uint, month string) ([]string, error) {
	dates := make([]string, 0)
	for date := range store.days[ownerID] {
		if strings.HasPrefix(date, month+"-") {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (store *stubCycleDayStore) DeleteByOwnerAndDate(ownerID uint, date string) error {
	if store.failDeletes[date] {
		return errStubDeleteAt
	}
	delete(store.days[ownerID], date)
	store.deleted = append(store.deleted, date)
	return nil
}

type stubPregnancyDayStore struct {
	days        map[uint]map[string]models.PregnancyDay
	failDeletes map[string]bool
}

func newStubPregnancyDayStore() *stubPregnancyDayStore {
	return &stubPregnancyDayStore{
		days:        make(map[uint]map[string]models.PregnancyDay),
		failDeletes: make(map[string]bool),
	}
}

func (store *stubPregnancyDayStore) Upsert(entry *models.PregnancyDay) (models.PregnancyDay, error) {
	if store.days[entry.OwnerID] == nil {
		store.days[entry.OwnerID] = make(map[string]models.PregnancyDay)
	}
	store.days[entry.OwnerID][entry.Date] = *entry
	return *entry, nil
}

func (store *stubPregnancyDayStore) FindByOwnerAndDate(ownerID uint, date string) (models.PregnancyDay, bool, error) {
	entry, ok := store.days[ownerID][date]
	return entry, ok, nil
}

func (store *stubPregnancyDayStore) ListByOwner(ownerID uint) ([]models.PregnancyDay, error) {
	days := make([]models.PregnancyDay, 0, len(store.days[ownerID]))
	for _, day := range store.days[ownerID] {
		days = append(days, day)
	}
	return days, nil
}

func (store *stubPregnancyDayStore) ListDatesByMonth(ownerID uint, month string) ([]string, error) {
	dates := make([]string, 0)
	for date := range store.days[ownerID] {
		if strings.HasPrefix(date, month+"-") {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (store *stubPregnancyDayStore) DeleteByOwnerAndDate(ownerID uint, date string) error {
	if store.failDeletes[date] {
		return errStubDeleteAt
	}
	delete(store.days[ownerID], date)
	return nil
}

type stubSettingsStore struct {
	settings map[uint]models.UserSettings
	err      error
}

func newStubSettingsStore() *stubSettingsStore {
	return &stubSettingsStore{settings: make(map[uint]models.UserSettings)}
}

func (store *stubSettingsStore) Load(ownerID uint) (models.UserSettings, error) {
	if store.err != nil {
		return models.UserSettings{}, store.err
	}
	settings, ok := store.settings[ownerID]
	if !ok {
		return models.UserSettings{OwnerID: ownerID}, nil
	}
	return settings, nil
}

func (store *stubSettingsStore) Merge(ownerID uint, updates map[string]any) (models.UserSettings, error) {
	if store.err != nil {
		return models.UserSettings{}, store.err
	}
	settings, _ := store.Load(ownerID)
	for column, value := range updates {
		switch column {
		case "conception_date":
			settings.ConceptionDate = value.(*string)
		case "due_date":
			settings.DueDate = value.(*string)
		case "pregnancy_tracking_enabled":
			settings.PregnancyTrackingEnabled = value.(bool)
		}
	}
	store.settings[ownerID] = settings
	return settings, nil
}

type recordingNotifier struct {
	events []ChangeEvent
}

func (notifier *recordingNotifier) Publish(event ChangeEvent) {
	notifier.events = append(notifier.events, event)
}

func (notifier *recordingNotifier) Subscribe(func(ChangeEvent)) func() { return func() {} }

type stubUserRepository struct {
	users     map[uint]models.User
	nextID    uint
	findErr   error
	createErr error
	deleteErr error
	deleted   []uint
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: make(map[uint]models.User), nextID: 1}
}

func (repo *stubUserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *stubUserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	if repo.findErr != nil {
		return models.User{}, repo.findErr
	}
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *stubUserRepository) FindByID(userID uint) (models.User, error) {
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (repo *stubUserRepository) Create(user *models.User) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	user.ID = repo.nextID
	repo.nextID++
	repo.users[user.ID] = *user
	return nil
}

func (repo *stubUserRepository) UpdatePassword(userID uint, passwordHash string) error {
	user := repo.users[userID]
	user.PasswordHash = passwordHash
	repo.users[userID] = user
	return nil
}

func (repo *stubUserRepository) DeleteAccountAndRelatedData(userID uint) error {
	if repo.deleteErr != nil {
		return repo.deleteErr
	}
	delete(repo.users, userID)
	repo.deleted = append(repo.deleted, userID)
	return nil
}
