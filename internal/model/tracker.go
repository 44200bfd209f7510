// internal/model/tracker.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// HabitCategory は習慣のカテゴリを表す列挙型です
type HabitCategory string

const (
	CategoryFace      HabitCategory = "face"
	CategoryBody      HabitCategory = "body"
	CategoryLifestyle HabitCategory = "lifestyle"
	CategoryFocus     HabitCategory = "focus"
)

func (c HabitCategory) Valid() bool {
	switch c {
	case CategoryFace, CategoryBody, CategoryLifestyle, CategoryFocus:
		return true
	}
	return false
}

// Habit は毎日のセルフケア習慣の定義です。
// ユーザー向けテキストは en/ru/ky の3言語を保持し、言語選択は表示側が行います。
type Habit struct {
	HabitID       uuid.UUID     `gorm:"type:uuid;primaryKey" json:"habit_id"`
	Category      HabitCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Title         string        `gorm:"not null" json:"title"`
	TitleRu       string        `json:"title_ru"`
	TitleKy       string        `json:"title_ky"`
	Description   string        `json:"description"`
	DescriptionRu string        `json:"description_ru"`
	DescriptionKy string        `json:"description_ky"`
	// 非アクティブな習慣は今後の表示から除外されるが、過去の参照は残る
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Habit) TableName() string {
	return "tracker_habits"
}

// ProgramTemplate は30日プランのバージョン付きの定義です。
// 新規エンロール用にアクティブなテンプレートは常に1つだけです。
type ProgramTemplate struct {
	TemplateID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"template_id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	DescriptionRu string    `json:"description_ru"`
	DescriptionKy string    `json:"description_ky"`
	Version       int       `gorm:"not null;default:1" json:"version"`
	IsActive      bool      `gorm:"default:false;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Days []ProgramDay `gorm:"foreignKey:TemplateID" json:"-"`
}

func (ProgramTemplate) TableName() string {
	return "tracker_program_templates"
}

// ProgramDay はテンプレート内の1日分の定義です
type ProgramDay struct {
	DayID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"day_id"`
	TemplateID  uuid.UUID `gorm:"type:uuid;not null;index:idx_template_day,unique" json:"template_id"`
	DayNumber   int       `gorm:"not null;index:idx_template_day,unique" json:"day_number"`
	FocusText   string    `json:"focus_text"`
	FocusTextRu string    `json:"focus_text_ru"`
	FocusTextKy string    `json:"focus_text_ky"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 関連 (Preload用)
	DayHabits []ProgramDayHabit `gorm:"foreignKey:ProgramDayID" json:"-"`
}

func (ProgramDay) TableName() string {
	return "tracker_program_days"
}

// ProgramDayHabit は日と習慣の順序付き関連です (習慣は複数の日に重複して出現しうる)
type ProgramDayHabit struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	ProgramDayID uuid.UUID `gorm:"type:uuid;not null;index:idx_day_habit,unique" json:"program_day_id"`
	HabitID      uuid.UUID `gorm:"type:uuid;not null;index:idx_day_habit,unique" json:"habit_id"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`

	// 関連 (Preload用)
	Habit *Habit `gorm:"foreignKey:HabitID;references:HabitID" json:"-"`
}

func (ProgramDayHabit) TableName() string {
	return "tracker_program_day_habits"
}

// --- 管理API用DTO ---

type CreateTemplateRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Description   string `json:"description" validate:"max=2000"`
	DescriptionRu string `json:"description_ru" validate:"max=2000"`
	DescriptionKy string `json:"description_ky" validate:"max=2000"`
	Version       int    `json:"version" validate:"omitempty,min=1"`
}

type UpdateTemplateRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DescriptionRu *string `json:"description_ru,omitempty" validate:"omitempty,max=2000"`
	DescriptionKy *string `json:"description_ky,omitempty" validate:"omitempty,max=2000"`
	Version       *int    `json:"version,omitempty" validate:"omitempty,min=1"`
}

type CreateHabitRequest struct {
	Category      HabitCategory `json:"category" validate:"required,oneof=face body lifestyle focus"`
	Title         string        `json:"title" validate:"required,min=1,max=200"`
	TitleRu       string        `json:"title_ru" validate:"max=200"`
	TitleKy       string        `json:"title_ky" validate:"max=200"`
	Description   string        `json:"description" validate:"max=1000"`
	DescriptionRu string        `json:"description_ru" validate:"max=1000"`
	DescriptionKy string        `json:"description_ky" validate:"max=1000"`
}

type UpdateHabitRequest struct {
	Category      *HabitCategory `json:"category,omitempty" validate:"omitempty,oneof=face body lifestyle focus"`
	Title         *string        `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	TitleRu       *string        `json:"title_ru,omitempty" validate:"omitempty,max=200"`
	TitleKy       *string        `json:"title_ky,omitempty" validate:"omitempty,max=200"`
	Description   *string        `json:"description,omitempty" validate:"omitempty,max=1000"`
	DescriptionRu *string        `json:"description_ru,omitempty" validate:"omitempty,max=1000"`
	DescriptionKy *string        `json:"description_ky,omitempty" validate:"omitempty,max=1000"`
	IsActive      *bool          `json:"is_active,omitempty"`
}

type CreateProgramDayRequest struct {
	DayNumber   int         `json:"day_number" validate:"required,min=1,max=30"`
	FocusText   string      `json:"focus_text" validate:"max=500"`
	FocusTextRu string      `json:"focus_text_ru" validate:"max=500"`
	FocusTextKy string      `json:"focus_text_ky" validate:"max=500"`
	HabitIDs    []uuid.UUID `json:"habit_ids" validate:"required,min=1"`
}

type UpdateProgramDayRequest struct {
	FocusText   *string     `json:"focus_text,omitempty" validate:"omitempty,max=500"`
	FocusTextRu *string     `json:"focus_text_ru,omitempty" validate:"omitempty,max=500"`
	FocusTextKy *string     `json:"focus_text_ky,omitempty" validate:"omitempty,max=500"`
	HabitIDs    []uuid.UUID `json:"habit_ids,omitempty"`
}

// ProgramDayResponse は習慣を解決済みのテンプレート日レスポンスDTO
type ProgramDayResponse struct {
	DayID       uuid.UUID `json:"day_id"`
	DayNumber   int       `json:"day_number"`
	FocusText   string    `json:"focus_text"`
	FocusTextRu string    `json:"focus_text_ru"`
	FocusTextKy string    `json:"focus_text_ky"`
	Habits      []*Habit  `json:"habits"`
}

// --- 公開API用DTO ---

// PublicProgramResponse はゲスト向けのアクティブなプログラム一覧の要素です
type PublicProgramResponse struct {
	TemplateID    uuid.UUID `json:"template_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DescriptionRu string    `json:"description_ru"`
	DescriptionKy string    `json:"description_ky"`
	DaysCount     int       `json:"days_count"`
	Version       int       `json:"version"`
	IsActive      bool      `json:"is_active"`
}

// PublicInfoResponse はランディング用のトラッカー紹介テキストです
type PublicInfoResponse struct {
	Title         string   `json:"title"`
	TitleRu       string   `json:"title_ru"`
	TitleKy       string   `json:"title_ky"`
	Description   string   `json:"description"`
	DescriptionRu string   `json:"description_ru"`
	DescriptionKy string   `json:"description_ky"`
	Benefits      []string `json:"benefits"`
	BenefitsRu    []string `json:"benefits_ru"`
	BenefitsKy    []string `json:"benefits_ky"`
}

// DemoDayResponse は個人データなしのデモ用1日目レスポンスです
type DemoDayResponse struct {
	TemplateID  uuid.UUID `json:"template_id"`
	ProgramName string    `json:"program_name"`
	DayNumber   int       `json:"day_number"`
	FocusText   string    `json:"focus_text"`
	FocusTextRu string    `json:"focus_text_ru"`
	FocusTextKy string    `json:"focus_text_ky"`
	Habits      []*Habit  `json:"habits"`
	IsDemo      bool      `json:"is_demo"`
}
