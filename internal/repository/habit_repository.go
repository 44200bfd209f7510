//go:generate mockery --name HabitRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_beauty_tracker/internal/middleware"
	"go_beauty_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitRepository interface {
	Create(ctx context.Context, tx *gorm.DB, habit *model.Habit) error
	FindByID(ctx context.Context, db *gorm.DB, habitID uuid.UUID) (*model.Habit, error)
	FindAll(ctx context.Context, db *gorm.DB, category *model.HabitCategory) ([]*model.Habit, error)
	Update(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, updates map[string]interface{}) error
}

type gormHabitRepository struct{}

func NewGormHabitRepository() HabitRepository {
	return &gormHabitRepository{}
}

func (r *gormHabitRepository) Create(ctx context.Context, tx *gorm.DB, habit *model.Habit) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(habit)
	if result.Error != nil {
		logger.Error("Error creating habit in DB",
			"error", result.Error,
			"title", habit.Title,
		)
		return fmt.Errorf("gormHabitRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormHabitRepository) FindByID(ctx context.Context, db *gorm.DB, habitID uuid.UUID) (*model.Habit, error) {
	logger := middleware.GetLogger(ctx)
	var habit model.Habit
	result := db.WithContext(ctx).Where("habit_id = ?", habitID).First(&habit)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding habit by ID in DB",
			"error", result.Error,
			"habit_id", habitID.String(),
		)
		return nil, fmt.Errorf("gormHabitRepository.FindByID: %w", result.Error)
	}
	return &habit, nil
}

func (r *gormHabitRepository) FindAll(ctx context.Context, db *gorm.DB, category *model.HabitCategory) ([]*model.Habit, error) {
	logger := middleware.GetLogger(ctx)
	var habits []*model.Habit

	query := db.WithContext(ctx).Model(&model.Habit{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	result := query.Order("created_at ASC").Find(&habits)
	if result.Error != nil {
		logger.Error("Error finding habits in DB", "error", result.Error)
		return nil, fmt.Errorf("gormHabitRepository.FindAll: %w", result.Error)
	}
	return habits, nil
}

func (r *gormHabitRepository) Update(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Habit{}).Where("habit_id = ?", habitID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating habit in DB",
			"error", result.Error,
			"habit_id", habitID.String(),
		)
		return fmt.Errorf("gormHabitRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
