package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/model"
	"github.com/vkotelnikov/timetable-bot/internal/repository"
	"github.com/vkotelnikov/timetable-bot/internal/timeslot"
)

// mockGroupStore репозиторий групп с управляемыми ответами
type mockGroupStore struct {
	createErr error
	created   []model.Group
	names     []string
}

func (m *mockGroupStore) Create(_ context.Context, group *model.Group) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, *group)
	return nil
}

func (m *mockGroupStore) ListNames(context.Context, string, int) ([]string, error) {
	return m.names, nil
}

// mockEntryStore репозиторий записей с управляемыми отказами вставки
type mockEntryStore struct {
	deleteErr      error
	failSubjects   map[string]bool
	deleteCalls    int
	insertedBefore bool // вставка случилась раньше удаления
	inserted       []model.ScheduleEntry
	found          []model.ScheduleEntry
}

func (m *mockEntryStore) Insert(_ context.Context, entry *model.ScheduleEntry) error {
	if m.deleteCalls == 0 {
		m.insertedBefore = true
	}
	if m.failSubjects[entry.Subject] {
		return errors.New("insert failed")
	}
	m.inserted = append(m.inserted, *entry)
	return nil
}

func (m *mockEntryStore) DeleteForDay(context.Context, string, int, string, string) (int64, error) {
	m.deleteCalls++
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return int64(len(m.found)), nil
}

func (m *mockEntryStore) Find(context.Context, model.EntryFilter) ([]model.ScheduleEntry, error) {
	return m.found, nil
}

func mustSlot(t *testing.T, hour int) timeslot.Slot {
	t.Helper()
	slot, ok := timeslot.FromHour(hour)
	require.True(t, ok)
	return slot
}

func testKey() DayKey {
	return DayKey{Faculty: "ИЭИС", Course: 2, Group: "ПИ-21", Day: "Понедельник"}
}

func TestScheduleService_AddGroup(t *testing.T) {
	groups := &mockGroupStore{}
	svc := NewScheduleService(groups, &mockEntryStore{}, zap.NewNop())

	err := svc.AddGroup(context.Background(), "ИЭИС", 2, "ПИ-21")
	require.NoError(t, err)

	require.Len(t, groups.created, 1)
	assert.Equal(t, "ИЭИС", groups.created[0].Faculty)
	assert.Equal(t, 2, groups.created[0].Course)
	assert.Equal(t, "ПИ-21", groups.created[0].Name)
}

func TestScheduleService_AddGroup_Duplicate(t *testing.T) {
	groups := &mockGroupStore{createErr: repository.ErrGroupExists}
	svc := NewScheduleService(groups, &mockEntryStore{}, zap.NewNop())

	err := svc.AddGroup(context.Background(), "ИЭИС", 2, "ПИ-21")
	assert.ErrorIs(t, err, ErrGroupExists)
}

func TestScheduleService_AddGroup_StoreError(t *testing.T) {
	groups := &mockGroupStore{createErr: errors.New("connection lost")}
	svc := NewScheduleService(groups, &mockEntryStore{}, zap.NewNop())

	err := svc.AddGroup(context.Background(), "ИЭИС", 2, "ПИ-21")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGroupExists)
}

func TestScheduleService_ReplaceDay(t *testing.T) {
	entries := &mockEntryStore{}
	svc := NewScheduleService(&mockGroupStore{}, entries, zap.NewNop())

	items := []DayItem{
		{Slot: mustSlot(t, 9), Subject: "Математика"},
		{Slot: mustSlot(t, 10), Subject: "Физика"},
	}

	saved, failed, err := svc.ReplaceDay(context.Background(), testKey(), items)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Zero(t, failed)

	// Удаление строго один раз и до вставок
	assert.Equal(t, 1, entries.deleteCalls)
	assert.False(t, entries.insertedBefore)

	require.Len(t, entries.inserted, 2)
	assert.Equal(t, "с 9:00 до 10:00", entries.inserted[0].TimeSlot)
	assert.Equal(t, "ПИ-21", entries.inserted[0].Group)
}

func TestScheduleService_ReplaceDay_PartialFailure(t *testing.T) {
	entries := &mockEntryStore{failSubjects: map[string]bool{"Физика": true}}
	svc := NewScheduleService(&mockGroupStore{}, entries, zap.NewNop())

	items := []DayItem{
		{Slot: mustSlot(t, 9), Subject: "Математика"},
		{Slot: mustSlot(t, 10), Subject: "Физика"},
		{Slot: mustSlot(t, 11), Subject: "Химия"},
	}

	saved, failed, err := svc.ReplaceDay(context.Background(), testKey(), items)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Equal(t, 1, failed)

	// Отказ одной строки не прерывает остальные
	require.Len(t, entries.inserted, 2)
	assert.Equal(t, "Химия", entries.inserted[1].Subject)
}

func TestScheduleService_ReplaceDay_DeleteError(t *testing.T) {
	entries := &mockEntryStore{deleteErr: errors.New("deadlock")}
	svc := NewScheduleService(&mockGroupStore{}, entries, zap.NewNop())

	items := []DayItem{{Slot: mustSlot(t, 9), Subject: "Математика"}}

	saved, failed, err := svc.ReplaceDay(context.Background(), testKey(), items)
	require.Error(t, err)
	assert.Zero(t, saved)
	assert.Zero(t, failed)
	assert.Empty(t, entries.inserted)
}

func TestScheduleService_ReplaceDay_EmptyStillDeletes(t *testing.T) {
	entries := &mockEntryStore{}
	svc := NewScheduleService(&mockGroupStore{}, entries, zap.NewNop())

	saved, failed, err := svc.ReplaceDay(context.Background(), testKey(), nil)
	require.NoError(t, err)
	assert.Zero(t, saved)
	assert.Zero(t, failed)
	assert.Equal(t, 1, entries.deleteCalls)
}

func TestScheduleService_ClearDay(t *testing.T) {
	entries := &mockEntryStore{}
	svc := NewScheduleService(&mockGroupStore{}, entries, zap.NewNop())

	require.NoError(t, svc.ClearDay(context.Background(), testKey()))
	require.NoError(t, svc.ClearDay(context.Background(), testKey()))
	assert.Equal(t, 2, entries.deleteCalls)
}
