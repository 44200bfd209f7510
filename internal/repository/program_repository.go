//go:generate mockery --name ProgramRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_beauty_tracker/internal/middleware"
	"go_beauty_tracker/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ProgramRepository はユーザーの受講状態 (プログラム・日・習慣チェック) の永続化を担当します
type ProgramRepository interface {
	Create(ctx context.Context, tx *gorm.DB, program *model.UserProgram) error
	FindActiveByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProgram, error)
	FindByID(ctx context.Context, db *gorm.DB, programID uuid.UUID) (*model.UserProgram, error)
	// UpdateVersioned は楽観ロック付きの更新です。version が一致しない場合は model.ErrVersionConflict を返します。
	UpdateVersioned(ctx context.Context, tx *gorm.DB, programID uuid.UUID, version int, updates map[string]interface{}) error

	CreateDays(ctx context.Context, tx *gorm.DB, days []*model.UserDay) error
	FindDay(ctx context.Context, db *gorm.DB, programID uuid.UUID, dayNumber int) (*model.UserDay, error)
	FindDays(ctx context.Context, db *gorm.DB, programID uuid.UUID) ([]*model.UserDay, error)
	// TransitionDay は from 状態からのみ to 状態へ遷移させます。すでに別状態なら model.ErrConflict を返します。
	TransitionDay(ctx context.Context, tx *gorm.DB, userDayID uuid.UUID, from, to model.DayStatus, openedAt, closedAt *time.Time) error

	FindCheck(ctx context.Context, db *gorm.DB, userDayID, habitID uuid.UUID) (*model.HabitCheck, error)
	FindChecks(ctx context.Context, db *gorm.DB, userDayID uuid.UUID) ([]*model.HabitCheck, error)
	CreateCheck(ctx context.Context, tx *gorm.DB, check *model.HabitCheck) error
	UpdateCheck(ctx context.Context, tx *gorm.DB, checkID uuid.UUID, completed bool, checkedAt time.Time) error
}

type gormProgramRepository struct{}

func NewGormProgramRepository() ProgramRepository {
	return &gormProgramRepository{}
}

func (r *gormProgramRepository) Create(ctx context.Context, tx *gorm.DB, program *model.UserProgram) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(program)
	if result.Error != nil {
		logger.Error("Error creating user program in DB",
			"error", result.Error,
			"user_id", program.UserID.String(),
		)
		return fmt.Errorf("gormProgramRepository.Create: %w", result.Error)
	}
	return nil
}

// FindActiveByUserID はユーザーの進行中プログラムを返します。
// 存在しない場合は model.ErrNotFound を返します (呼び出し側で ErrNoActiveProgram に読み替えます)。
func (r *gormProgramRepository) FindActiveByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProgram, error) {
	logger := middleware.GetLogger(ctx)
	var program model.UserProgram
	result := db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.ProgramActive).
		First(&program)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding active program in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProgramRepository.FindActiveByUserID: %w", result.Error)
	}
	return &program, nil
}

func (r *gormProgramRepository) FindByID(ctx context.Context, db *gorm.DB, programID uuid.UUID) (*model.UserProgram, error) {
	logger := middleware.GetLogger(ctx)
	var program model.UserProgram
	result := db.WithContext(ctx).Where("program_id = ?", programID).First(&program)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding program by ID in DB",
			"error", result.Error,
			"program_id", programID.String(),
		)
		return nil, fmt.Errorf("gormProgramRepository.FindByID: %w", result.Error)
	}
	return &program, nil
}

func (r *gormProgramRepository) UpdateVersioned(ctx context.Context, tx *gorm.DB, programID uuid.UUID, version int, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)

	// version を条件に含めることで、並行する遷移のうち片方だけが勝つ
	merged := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		merged[k] = v
	}
	merged["version"] = version + 1

	result := tx.WithContext(ctx).Model(&model.UserProgram{}).
		Where("program_id = ? AND version = ?", programID, version).
		Updates(merged)
	if result.Error != nil {
		logger.Error("Error updating user program in DB",
			"error", result.Error,
			"program_id", programID.String(),
		)
		return fmt.Errorf("gormProgramRepository.UpdateVersioned: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrVersionConflict
	}
	return nil
}

func (r *gormProgramRepository) CreateDays(ctx context.Context, tx *gorm.DB, days []*model.UserDay) error {
	logger := middleware.GetLogger(ctx)
	if len(days) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(days)
	if result.Error != nil {
		logger.Error("Error creating user days in DB",
			"error", result.Error,
			"program_id", days[0].ProgramID.String(),
			"count", len(days),
		)
		return fmt.Errorf("gormProgramRepository.CreateDays: %w", result.Error)
	}
	return nil
}

func (r *gormProgramRepository) FindDay(ctx context.Context, db *gorm.DB, programID uuid.UUID, dayNumber int) (*model.UserDay, error) {
	logger := middleware.GetLogger(ctx)
	var day model.UserDay
	result := db.WithContext(ctx).
		Where("program_id = ? AND day_number = ?", programID, dayNumber).
		First(&day)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user day in DB",
			"error", result.Error,
			"program_id", programID.String(),
			"day_number", dayNumber,
		)
		return nil, fmt.Errorf("gormProgramRepository.FindDay: %w", result.Error)
	}
	return &day, nil
}

func (r *gormProgramRepository) FindDays(ctx context.Context, db *gorm.DB, programID uuid.UUID) ([]*model.UserDay, error) {
	logger := middleware.GetLogger(ctx)
	var days []*model.UserDay
	result := db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("day_number ASC").
		Find(&days)
	if result.Error != nil {
		logger.Error("Error finding user days in DB",
			"error", result.Error,
			"program_id", programID.String(),
		)
		return nil, fmt.Errorf("gormProgramRepository.FindDays: %w", result.Error)
	}
	return days, nil
}

func (r *gormProgramRepository) TransitionDay(ctx context.Context, tx *gorm.DB, userDayID uuid.UUID, from, to model.DayStatus, openedAt, closedAt *time.Time) error {
	logger := middleware.GetLogger(ctx)

	updates := map[string]interface{}{"status": to}
	if openedAt != nil {
		updates["opened_at"] = openedAt
	}
	if closedAt != nil {
		updates["closed_at"] = closedAt
	}

	result := tx.WithContext(ctx).Model(&model.UserDay{}).
		Where("user_day_id = ? AND status = ?", userDayID, from).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error transitioning user day in DB",
			"error", result.Error,
			"user_day_id", userDayID.String(),
			"from", string(from),
			"to", string(to),
		)
		return fmt.Errorf("gormProgramRepository.TransitionDay: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// 他のリクエストが先に状態を変えた
		return model.ErrConflict
	}
	return nil
}

func (r *gormProgramRepository) FindCheck(ctx context.Context, db *gorm.DB, userDayID, habitID uuid.UUID) (*model.HabitCheck, error) {
	logger := middleware.GetLogger(ctx)
	var check model.HabitCheck
	result := db.WithContext(ctx).
		Where("user_day_id = ? AND habit_id = ?", userDayID, habitID).
		First(&check)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding habit check in DB",
			"error", result.Error,
			"user_day_id", userDayID.String(),
			"habit_id", habitID.String(),
		)
		return nil, fmt.Errorf("gormProgramRepository.FindCheck: %w", result.Error)
	}
	return &check, nil
}

func (r *gormProgramRepository) FindChecks(ctx context.Context, db *gorm.DB, userDayID uuid.UUID) ([]*model.HabitCheck, error) {
	logger := middleware.GetLogger(ctx)
	var checks []*model.HabitCheck
	result := db.WithContext(ctx).Where("user_day_id = ?", userDayID).Find(&checks)
	if result.Error != nil {
		logger.Error("Error finding habit checks in DB",
			"error", result.Error,
			"user_day_id", userDayID.String(),
		)
		return nil, fmt.Errorf("gormProgramRepository.FindChecks: %w", result.Error)
	}
	return checks, nil
}

func (r *gormProgramRepository) CreateCheck(ctx context.Context, tx *gorm.DB, check *model.HabitCheck) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(check)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			// 同じ習慣への初回タップが同時に走った
			logger.Warn("Duplicate key error on create habit check",
				"user_day_id", check.UserDayID.String(),
				"habit_id", check.HabitID.String(),
			)
			return model.ErrConflict
		}
		logger.Error("Error creating habit check in DB",
			"error", result.Error,
			"user_day_id", check.UserDayID.String(),
			"habit_id", check.HabitID.String(),
		)
		return fmt.Errorf("gormProgramRepository.CreateCheck: %w", result.Error)
	}
	return nil
}

func (r *gormProgramRepository) UpdateCheck(ctx context.Context, tx *gorm.DB, checkID uuid.UUID, completed bool, checkedAt time.Time) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.HabitCheck{}).
		Where("check_id = ?", checkID).
		Updates(map[string]interface{}{
			"completed":  completed,
			"checked_at": checkedAt,
		})
	if result.Error != nil {
		logger.Error("Error updating habit check in DB",
			"error", result.Error,
			"check_id", checkID.String(),
		)
		return fmt.Errorf("gormProgramRepository.UpdateCheck: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
