package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/model"
	"github.com/vkotelnikov/timetable-bot/internal/repository"
	"github.com/vkotelnikov/timetable-bot/internal/timeslot"
)

// ErrGroupExists возвращается при добавлении уже существующей группы.
// Дубликат — нормальный исход операции, а не сбой.
var ErrGroupExists = errors.New("group already exists")

// DayKey идентифицирует расписание одной группы на один день
type DayKey struct {
	Faculty string
	Course  int
	Group   string
	Day     string
}

// DayItem одна строка нового расписания дня
type DayItem struct {
	Slot    timeslot.Slot
	Subject string
}

// GroupStore операции репозитория групп, нужные сервису
type GroupStore interface {
	Create(ctx context.Context, group *model.Group) error
	ListNames(ctx context.Context, faculty string, course int) ([]string, error)
}

// EntryStore операции репозитория записей расписания, нужные сервису
type EntryStore interface {
	Insert(ctx context.Context, entry *model.ScheduleEntry) error
	DeleteForDay(ctx context.Context, faculty string, course int, group, day string) (int64, error)
	Find(ctx context.Context, filter model.EntryFilter) ([]model.ScheduleEntry, error)
}

type ScheduleService struct {
	groups  GroupStore
	entries EntryStore
	logger  *zap.Logger
}

func NewScheduleService(groups GroupStore, entries EntryStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		groups:  groups,
		entries: entries,
		logger:  logger,
	}
}

// AddGroup добавляет новую группу для института и курса
func (s *ScheduleService) AddGroup(ctx context.Context, faculty string, course int, name string) error {
	group := &model.Group{
		Faculty: faculty,
		Course:  course,
		Name:    name,
	}

	err := s.groups.Create(ctx, group)
	if err != nil {
		if errors.Is(err, repository.ErrGroupExists) {
			s.logger.Warn("Attempt to add existing group",
				zap.String("faculty", faculty),
				zap.Int("course", course),
				zap.String("name", name))
			return ErrGroupExists
		}
		return fmt.Errorf("add group: %w", err)
	}

	return nil
}

// ListGroups возвращает названия групп института и курса в алфавитном порядке
func (s *ScheduleService) ListGroups(ctx context.Context, faculty string, course int) ([]string, error) {
	return s.groups.ListNames(ctx, faculty, course)
}

// DaySchedule возвращает текущее расписание группы на день,
// отсортированное по слотам
func (s *ScheduleService) DaySchedule(ctx context.Context, key DayKey) ([]model.ScheduleEntry, error) {
	return s.entries.Find(ctx, model.EntryFilter{
		Faculty: key.Faculty,
		Course:  key.Course,
		Group:   key.Group,
		Day:     key.Day,
	})
}

// ReplaceDay заменяет расписание дня целиком: старые записи удаляются
// один раз до вставки новых, каждая новая запись пишется по принципу
// best-effort — ошибка одной строки логируется, считается и не
// прерывает запись остальных. Повторов нет.
func (s *ScheduleService) ReplaceDay(ctx context.Context, key DayKey, items []DayItem) (saved, failed int, err error) {
	if _, err := s.entries.DeleteForDay(ctx, key.Faculty, key.Course, key.Group, key.Day); err != nil {
		return 0, 0, fmt.Errorf("clear day before replace: %w", err)
	}

	for _, item := range items {
		entry := &model.ScheduleEntry{
			Faculty:  key.Faculty,
			Course:   key.Course,
			Group:    key.Group,
			Day:      key.Day,
			TimeSlot: item.Slot.Label(),
			Subject:  item.Subject,
		}

		if err := s.entries.Insert(ctx, entry); err != nil {
			s.logger.Error("Failed to save schedule entry",
				zap.String("group", key.Group),
				zap.String("day", key.Day),
				zap.String("time_slot", entry.TimeSlot),
				zap.Error(err))
			failed++
			continue
		}
		saved++
	}

	s.logger.Info("Day schedule replaced",
		zap.String("group", key.Group),
		zap.String("day", key.Day),
		zap.Int("saved", saved),
		zap.Int("failed", failed))

	return saved, failed, nil
}

// ClearDay удаляет все записи группы за день. Идемпотентна.
func (s *ScheduleService) ClearDay(ctx context.Context, key DayKey) error {
	_, err := s.entries.DeleteForDay(ctx, key.Faculty, key.Course, key.Group, key.Day)
	return err
}

// Entries возвращает записи расписания по необязательным фильтрам
func (s *ScheduleService) Entries(ctx context.Context, filter model.EntryFilter) ([]model.ScheduleEntry, error) {
	return s.entries.Find(ctx, filter)
}
