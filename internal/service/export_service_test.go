package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/model"
)

// mockEntrySource источник записей с фиксированным ответом
type mockEntrySource struct {
	entries []model.ScheduleEntry
	err     error
	filter  model.EntryFilter
}

func (m *mockEntrySource) Entries(_ context.Context, filter model.EntryFilter) ([]model.ScheduleEntry, error) {
	m.filter = filter
	return m.entries, m.err
}

func TestExportService_ExportDay_Empty(t *testing.T) {
	source := &mockEntrySource{}
	svc := NewExportService(source, zap.NewNop())

	_, _, err := svc.ExportDay(context.Background(), "Понедельник")
	assert.ErrorIs(t, err, ErrExportEmpty)
	assert.Equal(t, "Понедельник", source.filter.Day)
}

func TestExportService_ExportDay_SourceError(t *testing.T) {
	source := &mockEntrySource{err: errors.New("connection lost")}
	svc := NewExportService(source, zap.NewNop())

	_, _, err := svc.ExportDay(context.Background(), "Понедельник")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExportEmpty)
}

func TestExportService_ExportDay(t *testing.T) {
	// Нарочно неотсортированный вход
	source := &mockEntrySource{entries: []model.ScheduleEntry{
		{Faculty: "ИЭИС", Course: 2, Group: "ПИ-21", Day: "Понедельник", TimeSlot: "с 11:00 до 12:00", Subject: "Химия"},
		{Faculty: "ИЦЭУС", Course: 1, Group: "БИ-11", Day: "Понедельник", TimeSlot: "с 10:00 до 11:00", Subject: "Экономика"},
		{Faculty: "ИЭИС", Course: 2, Group: "ПИ-21", Day: "Понедельник", TimeSlot: "с 10:00 до 11:00", Subject: "Физика"},
	}}
	svc := NewExportService(source, zap.NewNop())

	buf, filename, err := svc.ExportDay(context.Background(), "Понедельник")
	require.NoError(t, err)
	require.NotNil(t, buf)

	assert.True(t, strings.HasPrefix(filename, "Расписание_Понедельник_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Расписание")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Институт", "Курс", "Группа", "День", "Время", "Предмет"}, rows[0])

	// Порядок: по группе, внутри группы по времени
	assert.Equal(t, "БИ-11", rows[1][2])
	assert.Equal(t, "Экономика", rows[1][5])
	assert.Equal(t, "Физика", rows[2][5])
	assert.Equal(t, "Химия", rows[3][5])
}

func TestExportService_ExportDay_UniqueFilenames(t *testing.T) {
	source := &mockEntrySource{entries: []model.ScheduleEntry{
		{Faculty: "ИЭИС", Course: 2, Group: "ПИ-21", Day: "Вторник", TimeSlot: "с 9:00 до 10:00", Subject: "Математика"},
	}}
	svc := NewExportService(source, zap.NewNop())

	_, first, err := svc.ExportDay(context.Background(), "Вторник")
	require.NoError(t, err)
	_, second, err := svc.ExportDay(context.Background(), "Вторник")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
