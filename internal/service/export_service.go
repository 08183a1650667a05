package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/model"
)

// ErrExportEmpty возвращается когда за выбранный день нет ни одной записи.
// Это нормальный исход, а не сбой.
var ErrExportEmpty = errors.New("no schedule entries for day")

var exportHeaders = []string{"Институт", "Курс", "Группа", "День", "Время", "Предмет"}

// EntrySource источник записей расписания для выгрузки
type EntrySource interface {
	Entries(ctx context.Context, filter model.EntryFilter) ([]model.ScheduleEntry, error)
}

type ExportService struct {
	schedule EntrySource
	logger   *zap.Logger
}

func NewExportService(schedule EntrySource, logger *zap.Logger) *ExportService {
	return &ExportService{
		schedule: schedule,
		logger:   logger,
	}
}

// ExportDay собирает расписание всех групп на день в xlsx файл.
// Файл пишется в буфер, временных файлов на диске не остаётся.
// Возвращает буфер с файлом и имя файла.
func (s *ExportService) ExportDay(ctx context.Context, day string) (*bytes.Buffer, string, error) {
	entries, err := s.schedule.Entries(ctx, model.EntryFilter{Day: day})
	if err != nil {
		return nil, "", fmt.Errorf("load entries for export: %w", err)
	}
	if len(entries) == 0 {
		return nil, "", ErrExportEmpty
	}

	// Порядок в выгрузке: по группе, затем по времени
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Group != entries[j].Group {
			return entries[i].Group < entries[j].Group
		}
		return entries[i].TimeSlot < entries[j].TimeSlot
	})

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Расписание"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "C", "C", 16)
	f.SetColWidth(sheet, "D", "E", 18)
	f.SetColWidth(sheet, "F", "F", 32)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, e := range entries {
		values := []interface{}{e.Faculty, e.Course, e.Group, e.Day, e.TimeSlot, e.Subject}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("Failed to write xlsx", zap.String("day", day), zap.Error(err))
		return nil, "", fmt.Errorf("write xlsx: %w", err)
	}

	filename := fmt.Sprintf("Расписание_%s_%s.xlsx", day, uuid.NewString()[:8])

	s.logger.Info("Day schedule exported",
		zap.String("day", day),
		zap.String("filename", filename),
		zap.Int("entries", len(entries)))

	return buf, filename, nil
}
