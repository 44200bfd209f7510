package service

import (
	"context"
	"errors"

	"go_beauty_tracker/internal/middleware"
	"go_beauty_tracker/internal/model"
	"go_beauty_tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HabitService は習慣カタログの管理 (admin) を扱います
type HabitService interface {
	CreateHabit(ctx context.Context, req *model.CreateHabitRequest) (*model.Habit, error)
	ListHabits(ctx context.Context, category *model.HabitCategory) ([]*model.Habit, error)
	GetHabit(ctx context.Context, habitID uuid.UUID) (*model.Habit, error)
	UpdateHabit(ctx context.Context, habitID uuid.UUID, req *model.UpdateHabitRequest) (*model.Habit, error)
	// DeleteHabit は物理削除ではなく非アクティブ化です。過去の日の参照は壊れません。
	DeleteHabit(ctx context.Context, habitID uuid.UUID) error
}

type habitService struct {
	db        *gorm.DB
	habitRepo repository.HabitRepository
}

// NewHabitService は HabitService の新しいインスタンスを生成します
func NewHabitService(db *gorm.DB, habitRepo repository.HabitRepository) HabitService {
	return &habitService{
		db:        db,
		habitRepo: habitRepo,
	}
}

func (s *habitService) CreateHabit(ctx context.Context, req *model.CreateHabitRequest) (*model.Habit, error) {
	logger := middleware.GetLogger(ctx)

	habit := &model.Habit{
		HabitID:       uuid.New(),
		Category:      req.Category,
		Title:         req.Title,
		TitleRu:       req.TitleRu,
		TitleKy:       req.TitleKy,
		Description:   req.Description,
		DescriptionRu: req.DescriptionRu,
		DescriptionKy: req.DescriptionKy,
		IsActive:      true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.habitRepo.Create(ctx, tx, habit); err != nil {
			logger.Error("Failed to create habit", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "習慣の作成に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Habit created", "habit_id", habit.HabitID, "category", string(habit.Category))
	return habit, nil
}

func (s *habitService) ListHabits(ctx context.Context, category *model.HabitCategory) ([]*model.Habit, error) {
	logger := middleware.GetLogger(ctx)

	if category != nil && !category.Valid() {
		return nil, model.NewAppError("INVALID_CATEGORY", "カテゴリが正しくありません。", "category", model.ErrInvalidInput)
	}

	habits, err := s.habitRepo.FindAll(ctx, s.db, category)
	if err != nil {
		logger.Error("Failed to list habits", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	return habits, nil
}

func (s *habitService) GetHabit(ctx context.Context, habitID uuid.UUID) (*model.Habit, error) {
	logger := middleware.GetLogger(ctx)
	habit, err := s.habitRepo.FindByID(ctx, s.db, habitID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("HABIT_NOT_FOUND", "習慣が見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to find habit", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	return habit, nil
}

func (s *habitService) UpdateHabit(ctx context.Context, habitID uuid.UUID, req *model.UpdateHabitRequest) (*model.Habit, error) {
	logger := middleware.GetLogger(ctx).With("habit_id", habitID.String())

	updates := map[string]interface{}{}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.TitleRu != nil {
		updates["title_ru"] = *req.TitleRu
	}
	if req.TitleKy != nil {
		updates["title_ky"] = *req.TitleKy
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DescriptionRu != nil {
		updates["description_ru"] = *req.DescriptionRu
	}
	if req.DescriptionKy != nil {
		updates["description_ky"] = *req.DescriptionKy
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.habitRepo.Update(ctx, tx, habitID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("HABIT_NOT_FOUND", "習慣が見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Failed to update habit", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "習慣の更新に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Habit updated")
	return s.GetHabit(ctx, habitID)
}

func (s *habitService) DeleteHabit(ctx context.Context, habitID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("habit_id", habitID.String())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.habitRepo.Update(ctx, tx, habitID, map[string]interface{}{"is_active": false}); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("HABIT_NOT_FOUND", "習慣が見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Failed to deactivate habit", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "習慣の削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Habit deactivated")
	return nil
}
