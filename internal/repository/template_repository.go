//go:generate mockery --name TemplateRepository --output ./mocks --outpkg mocks --case=underscore
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

// TemplateRepository はプログラムテンプレート (テンプレート・日・日と習慣の関連) の永続化を担当します
type TemplateRepository interface {
	Create(ctx context.Context, tx *gorm.DB, template *model.ProgramTemplate) error
	FindByID(ctx context.Context, db *gorm.DB, templateID uuid.UUID) (*model.ProgramTemplate, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.ProgramTemplate, error)
	FindActive(ctx context.Context, db *gorm.DB) (*model.ProgramTemplate, error)
	Update(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, updates map[string]interface{}) error
	ActivateExclusive(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error

	CreateDay(ctx context.Context, tx *gorm.DB, day *model.ProgramDay) error
	FindDay(ctx context.Context, db *gorm.DB, templateID uuid.UUID, dayNumber int) (*model.ProgramDay, error)
	FindDayByID(ctx context.Context, db *gorm.DB, dayID uuid.UUID) (*model.ProgramDay, error)
	FindDays(ctx context.Context, db *gorm.DB, templateID uuid.UUID) ([]*model.ProgramDay, error)
	CountDays(ctx context.Context, db *gorm.DB, templateID uuid.UUID) (int64, error)
	UpdateDay(ctx context.Context, tx *gorm.DB, dayID uuid.UUID, updates map[string]interface{}) error
	DeleteDay(ctx context.Context, tx *gorm.DB, dayID uuid.UUID) error

	ReplaceDayHabits(ctx context.Context, tx *gorm.DB, dayID uuid.UUID, habitIDs []uuid.UUID) error
	FindDayHabits(ctx context.Context, db *gorm.DB, dayID uuid.UUID) ([]*model.ProgramDayHabit, error)
}

type gormTemplateRepository struct{}

func NewGormTemplateRepository() TemplateRepository {
	return &gormTemplateRepository{}
}

func (r *gormTemplateRepository) Create(ctx context.Context, tx *gorm.DB, template *model.ProgramTemplate) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(template)
	if result.Error != nil {
		logger.Error("Error creating program template in DB",
			"error", result.Error,
			"name", template.Name,
		)
		return fmt.Errorf("gormTemplateRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormTemplateRepository) FindByID(ctx context.Context, db *gorm.DB, templateID uuid.UUID) (*model.ProgramTemplate, error) {
	logger := middleware.GetLogger(ctx)
	var template model.ProgramTemplate
	result := db.WithContext(ctx).Where("template_id = ?", templateID).First(&template)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding template by ID in DB",
			"error", result.Error,
			"template_id", templateID.String(),
		)
		return nil, fmt.Errorf("gormTemplateRepository.FindByID: %w", result.Error)
	}
	return &template, nil
}

func (r *gormTemplateRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.ProgramTemplate, error) {
	logger := middleware.GetLogger(ctx)
	var templates []*model.ProgramTemplate
	result := db.WithContext(ctx).Order("created_at ASC").Find(&templates)
	if result.Error != nil {
		logger.Error("Error finding templates in DB", "error", result.Error)
		return nil, fmt.Errorf("gormTemplateRepository.FindAll: %w", result.Error)
	}
	return templates, nil
}

// FindActive は新規エンロール用のアクティブなテンプレートを返します。
// アクティブなテンプレートが存在しない場合は model.ErrNoActiveTemplate を返します。
func (r *gormTemplateRepository) FindActive(ctx context.Context, db *gorm.DB) (*model.ProgramTemplate, error) {
	logger := middleware.GetLogger(ctx)
	var template model.ProgramTemplate
	result := db.WithContext(ctx).Where("is_active = ?", true).First(&template)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNoActiveTemplate
		}
		logger.Error("Error finding active template in DB", "error", result.Error)
		return nil, fmt.Errorf("gormTemplateRepository.FindActive: %w", result.Error)
	}
	return &template, nil
}

func (r *gormTemplateRepository) Update(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.ProgramTemplate{}).Where("template_id = ?", templateID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating template in DB",
			"error", result.Error,
			"template_id", templateID.String(),
		)
		return fmt.Errorf("gormTemplateRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ActivateExclusive は指定テンプレートをアクティブにし、他のすべてを非アクティブにします。
// 「アクティブなテンプレートは常に1つ」の不変条件は同一トランザクション内で維持されます。
func (r *gormTemplateRepository) ActivateExclusive(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	// 全テンプレートを非アクティブ化
	if err := tx.WithContext(ctx).Model(&model.ProgramTemplate{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error; err != nil {
		logger.Error("Error deactivating templates in DB", "error", err)
		return fmt.Errorf("gormTemplateRepository.ActivateExclusive: %w", err)
	}

	// 対象をアクティブ化
	result := tx.WithContext(ctx).Model(&model.ProgramTemplate{}).
		Where("template_id = ?", templateID).
		Update("is_active", true)
	if result.Error != nil {
		logger.Error("Error activating template in DB",
			"error", result.Error,
			"template_id", templateID.String(),
		)
		return fmt.Errorf("gormTemplateRepository.ActivateExclusive: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTemplateRepository) Delete(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("template_id = ?", templateID).Delete(&model.ProgramTemplate{})
	if result.Error != nil {
		logger.Error("Error deleting template in DB",
			"error", result.Error,
			"template_id", templateID.String(),
		)
		return fmt.Errorf("gormTemplateRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTemplateRepository) CreateDay(ctx context.Context, tx *gorm.DB, day *model.ProgramDay) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(day)
	if result.Error != nil {
		logger.Error("Error creating program day in DB",
			"error", result.Error,
			"template_id", day.TemplateID.String(),
			"day_number", day.DayNumber,
		)
		return fmt.Errorf("gormTemplateRepository.CreateDay: %w", result.Error)
	}
	return nil
}

func (r *gormTemplateRepository) FindDay(ctx context.Context, db *gorm.DB, templateID uuid.UUID, dayNumber int) (*model.ProgramDay, error) {
	logger := middleware.GetLogger(ctx)
	var day model.ProgramDay
	result := db.WithContext(ctx).Where("template_id = ? AND day_number = ?", templateID, dayNumber).First(&day)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding program day in DB",
			"error", result.Error,
			"template_id", templateID.String(),
			"day_number", dayNumber,
		)
		return nil, fmt.Errorf("gormTemplateRepository.FindDay: %w", result.Error)
	}
	return &day, nil
}

func (r *gormTemplateRepository) FindDayByID(ctx context.Context, db *gorm.DB, dayID uuid.UUID) (*model.ProgramDay, error) {
	logger := middleware.GetLogger(ctx)
	var day model.ProgramDay
	result := db.WithContext(ctx).Where("day_id = ?", dayID).First(&day)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding program day by ID in DB",
			"error", result.Error,
			"day_id", dayID.String(),
		)
		return nil, fmt.Errorf("gormTemplateRepository.FindDayByID: %w", result.Error)
	}
	return &day, nil
}

func (r *gormTemplateRepository) FindDays(ctx context.Context, db *gorm.DB, templateID uuid.UUID) ([]*model.ProgramDay, error) {
	logger := middleware.GetLogger(ctx)
	var days []*model.ProgramDay
	result := db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("day_number ASC").
		Find(&days)
	if result.Error != nil {
		logger.Error("Error finding program days in DB",
			"error", result.Error,
			"template_id", templateID.String(),
		)
		return nil, fmt.Errorf("gormTemplateRepository.FindDays: %w", result.Error)
	}
	return days, nil
}

func (r *gormTemplateRepository) CountDays(ctx context.Context, db *gorm.DB, templateID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.ProgramDay{}).Where("template_id = ?", templateID).Count(&count)
	if result.Error != nil {
		logger.Error("Error counting program days in DB",
			"error", result.Error,
			"template_id", templateID.String(),
		)
		return 0, fmt.Errorf("gormTemplateRepository.CountDays: %w", result.Error)
	}
	return count, nil
}

func (r *gormTemplateRepository) UpdateDay(ctx context.Context, tx *gorm.DB, dayID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.ProgramDay{}).Where("day_id = ?", dayID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating program day in DB",
			"error", result.Error,
			"day_id", dayID.String(),
		)
		return fmt.Errorf("gormTemplateRepository.UpdateDay: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormTemplateRepository) DeleteDay(ctx context.Context, tx *gorm.DB, dayID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	// 先に習慣との関連を削除してから日を削除する
	if err := tx.WithContext(ctx).Where("program_day_id = ?", dayID).Delete(&model.ProgramDayHabit{}).Error; err != nil {
		logger.Error("Error deleting day habits in DB",
			"error", err,
			"day_id", dayID.String(),
		)
		return fmt.Errorf("gormTemplateRepository.DeleteDay: %w", err)
	}

	result := tx.WithContext(ctx).Where("day_id = ?", dayID).Delete(&model.ProgramDay{})
	if result.Error != nil {
		logger.Error("Error deleting program day in DB",
			"error", result.Error,
			"day_id", dayID.String(),
		)
		return fmt.Errorf("gormTemplateRepository.DeleteDay: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ReplaceDayHabits は日の習慣参照を渡された順序で入れ替えます
func (r *gormTemplateRepository) ReplaceDayHabits(ctx context.Context, tx *gorm.DB, dayID uuid.UUID, habitIDs []uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	if err := tx.WithContext(ctx).Where("program_day_id = ?", dayID).Delete(&model.ProgramDayHabit{}).Error; err != nil {
		logger.Error("Error clearing day habits in DB",
			"error", err,
			"day_id", dayID.String(),
		)
		return fmt.Errorf("gormTemplateRepository.ReplaceDayHabits: %w", err)
	}

	for idx, habitID := range habitIDs {
		dayHabit := &model.ProgramDayHabit{
			ProgramDayID: dayID,
			HabitID:      habitID,
			SortOrder:    idx,
		}
		if err := tx.WithContext(ctx).Create(dayHabit).Error; err != nil {
			logger.Error("Error creating day habit in DB",
				"error", err,
				"day_id", dayID.String(),
				"habit_id", habitID.String(),
			)
			return fmt.Errorf("gormTemplateRepository.ReplaceDayHabits: %w", err)
		}
	}
	return nil
}

// FindDayHabits は日の習慣参照を sort_order 順で返します (Habitを解決済み)
func (r *gormTemplateRepository) FindDayHabits(ctx context.Context, db *gorm.DB, dayID uuid.UUID) ([]*model.ProgramDayHabit, error) {
	logger := middleware.GetLogger(ctx)
	var dayHabits []*model.ProgramDayHabit
	result := db.WithContext(ctx).
		Preload("Habit").
		Where("program_day_id = ?", dayID).
		Order("sort_order ASC").
		Find(&dayHabits)
	if result.Error != nil {
		logger.Error("Error finding day habits in DB",
			"error", result.Error,
			"day_id", dayID.String(),
		)
		return nil, fmt.Errorf("gormTemplateRepository.FindDayHabits: %w", result.Error)
	}
	return dayHabits, nil
}
