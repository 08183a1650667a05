package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/model"
	"github.com/vkotelnikov/timetable-bot/internal/repository/base"
)

// ErrGroupExists возвращается при попытке добавить группу, которая
// уже есть для этого института и курса
var ErrGroupExists = errors.New("group already exists")

type GroupRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewGroupRepository(pool *pgxpool.Pool, logger *zap.Logger) *GroupRepository {
	return &GroupRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create добавляет новую группу. При нарушении уникальности
// (институт, курс, название) возвращает ErrGroupExists.
func (r *GroupRepository) Create(ctx context.Context, group *model.Group) error {
	query := `
		INSERT INTO groups (faculty, course, group_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, group.Faculty, group.Course, group.Name).
		Scan(&group.ID, &group.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrGroupExists
		}
		r.logger.Error("Failed to insert group",
			zap.String("faculty", group.Faculty),
			zap.Int("course", group.Course),
			zap.String("name", group.Name),
			zap.Error(err))
		return fmt.Errorf("create group: %w", err)
	}

	r.logger.Info("Group created",
		zap.Int64("group_id", group.ID),
		zap.String("faculty", group.Faculty),
		zap.Int("course", group.Course),
		zap.String("name", group.Name))

	return nil
}

// ListNames возвращает названия групп института и курса
// в алфавитном порядке
func (r *GroupRepository) ListNames(ctx context.Context, faculty string, course int) ([]string, error) {
	query := `
		SELECT group_name
		FROM groups
		WHERE faculty = $1 AND course = $2
		ORDER BY group_name
	`

	rows, err := r.Query(ctx, query, faculty, course)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan group name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
