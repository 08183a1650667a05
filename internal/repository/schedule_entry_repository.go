package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/model"
	"github.com/vkotelnikov/timetable-bot/internal/repository/base"
)

type ScheduleEntryRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewScheduleEntryRepository(pool *pgxpool.Pool, logger *zap.Logger) *ScheduleEntryRepository {
	return &ScheduleEntryRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Insert добавляет одну запись расписания
func (r *ScheduleEntryRepository) Insert(ctx context.Context, entry *model.ScheduleEntry) error {
	query := `
		INSERT INTO schedule_entries (faculty, course, group_name, day_of_week, time_slot, subject)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.QueryRow(
		ctx, query,
		entry.Faculty,
		entry.Course,
		entry.Group,
		entry.Day,
		entry.TimeSlot,
		entry.Subject,
	).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("insert schedule entry: %w", err)
	}

	return nil
}

// DeleteForDay удаляет все записи группы за день. Возвращает количество
// удалённых строк; удаление нуля строк ошибкой не является.
func (r *ScheduleEntryRepository) DeleteForDay(ctx context.Context, faculty string, course int, group, day string) (int64, error) {
	query := `
		DELETE FROM schedule_entries
		WHERE faculty = $1 AND course = $2 AND group_name = $3 AND day_of_week = $4
	`

	affected, err := r.ExecAffected(ctx, query, faculty, course, group, day)
	if err != nil {
		return 0, fmt.Errorf("delete schedule for day: %w", err)
	}

	r.logger.Info("Day schedule deleted",
		zap.String("faculty", faculty),
		zap.Int("course", course),
		zap.String("group", group),
		zap.String("day", day),
		zap.Int64("rows", affected))

	return affected, nil
}

// Find возвращает записи по конъюнкции заданных фильтров, отсортированные
// по (институт, курс, группа, день, слот). Пустой фильтр — все записи.
func (r *ScheduleEntryRepository) Find(ctx context.Context, filter model.EntryFilter) ([]model.ScheduleEntry, error) {
	query := `
		SELECT id, faculty, course, group_name, day_of_week, time_slot, subject
		FROM schedule_entries
	`

	var conditions []string
	var args []interface{}

	addCondition := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Faculty != "" {
		addCondition("faculty", filter.Faculty)
	}
	if filter.Course != 0 {
		addCondition("course", filter.Course)
	}
	if filter.Group != "" {
		addCondition("group_name", filter.Group)
	}
	if filter.Day != "" {
		addCondition("day_of_week", filter.Day)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY faculty, course, group_name, day_of_week, time_slot"

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []model.ScheduleEntry
	for rows.Next() {
		var e model.ScheduleEntry
		err := rows.Scan(&e.ID, &e.Faculty, &e.Course, &e.Group, &e.Day, &e.TimeSlot, &e.Subject)
		if err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
