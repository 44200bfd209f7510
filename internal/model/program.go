// internal/model/program.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgramStatus はユーザーのプログラム全体の状態です
type ProgramStatus string

const (
	ProgramActive    ProgramStatus = "active"
	ProgramCompleted ProgramStatus = "completed"
	ProgramAbandoned ProgramStatus = "abandoned"
)

// DayStatus は1日分の進行状態です。
// locked --(現在の日になる)--> open --(complete)--> completed [終端]
//                               open --(skip)-----> skipped   [終端]
// 終端状態から locked / open に戻る遷移は存在しません。
type DayStatus string

const (
	DayLocked    DayStatus = "locked"
	DayOpen      DayStatus = "open"
	DayCompleted DayStatus = "completed"
	DaySkipped   DayStatus = "skipped"
)

// UserProgram はユーザー1人のプログラムへのエンロールです。
// テンプレートIDはエンロール時点のスナップショットであり、
// その後のテンプレート編集が進行中のユーザーの日に波及することはありません。
type UserProgram struct {
	ProgramID  uuid.UUID     `gorm:"type:uuid;primaryKey" json:"program_id"`
	UserID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	TemplateID uuid.UUID     `gorm:"type:uuid;not null" json:"template_id"`
	Status     ProgramStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	// 現在の日へのポインタ (1始まり)。完了/スキップごとに厳密に1ずつ進み、決して戻らない。
	CurrentDayNumber int `gorm:"not null;default:1" json:"current_day_number"`

	AllowedSkips int `gorm:"not null" json:"allowed_skips"`
	UsedSkips    int `gorm:"not null;default:0" json:"used_skips"`

	// 集計の非正規化カウンタ。日付遷移と同一トランザクション内で更新される。
	CompletedDays int `gorm:"not null;default:0" json:"completed_days"`
	SkippedDays   int `gorm:"not null;default:0" json:"skipped_days"`
	CurrentStreak int `gorm:"not null;default:0" json:"current_streak"`

	// 楽観ロック用。更新系の操作はversionの一致を条件に更新し、外れたらConflict。
	Version int `gorm:"not null;default:1" json:"-"`

	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (UserProgram) TableName() string {
	return "tracker_user_programs"
}

// UserDay はユーザーの1日分の進行レコードです (user_program id + day_number で一意)
type UserDay struct {
	UserDayID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_day_id"`
	ProgramID uuid.UUID `gorm:"type:uuid;not null;index:idx_program_day_number,unique" json:"program_id"`
	DayNumber int       `gorm:"not null;index:idx_program_day_number,unique" json:"day_number"`
	Status    DayStatus `gorm:"type:varchar(20);not null;default:'locked'" json:"status"`
	OpenedAt  *time.Time `json:"opened_at,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (UserDay) TableName() string {
	return "tracker_user_days"
}

// HabitCheck はopen中の日における習慣ごとのチェック状態です (user_day id + habit id で一意)
type HabitCheck struct {
	CheckID   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"check_id"`
	UserDayID uuid.UUID  `gorm:"type:uuid;not null;index:idx_day_habit_check,unique" json:"user_day_id"`
	HabitID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_day_habit_check,unique" json:"habit_id"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (HabitCheck) TableName() string {
	return "tracker_habit_checks"
}

// --- トラッカーAPI用DTO ---

// DayHabitState は日のレスポンスに含まれる、チェック状態を解決済みの習慣です
type DayHabitState struct {
	HabitID       uuid.UUID     `json:"habit_id"`
	Category      HabitCategory `json:"category"`
	Title         string        `json:"title"`
	TitleRu       string        `json:"title_ru"`
	TitleKy       string        `json:"title_ky"`
	Description   string        `json:"description"`
	DescriptionRu string        `json:"description_ru"`
	DescriptionKy string        `json:"description_ky"`
	Completed     bool          `json:"completed"`
}

// DayResponse は1日分のレスポンスDTO (テンプレートの内容 + ユーザーの状態)
type DayResponse struct {
	UserDayID   uuid.UUID       `json:"user_day_id"`
	DayNumber   int             `json:"day_number"`
	Status      DayStatus       `json:"status"`
	FocusText   string          `json:"focus_text"`
	FocusTextRu string          `json:"focus_text_ru"`
	FocusTextKy string          `json:"focus_text_ky"`
	OpenedAt    *time.Time      `json:"opened_at,omitempty"`
	ClosedAt    *time.Time      `json:"closed_at,omitempty"`
	Habits      []*DayHabitState `json:"habits"`
}

// StartProgramResponse はプログラム開始時のレスポンス (プログラム + 1日目)
type StartProgramResponse struct {
	Program *UserProgram `json:"program"`
	Day     *DayResponse `json:"day"`
}

// TransitionResponse は complete/skip 後のレスポンス (更新後プログラム + 次の日)。
// プログラムが終了した場合 NextDay は null。
type TransitionResponse struct {
	Program *UserProgram `json:"program"`
	NextDay *DayResponse `json:"next_day,omitempty"`
}

// ToggleHabitResponse は習慣チェックの切り替え結果です
type ToggleHabitResponse struct {
	HabitID   uuid.UUID `json:"habit_id"`
	Completed bool      `json:"completed"`
}

// ProgressResponse は進捗の集計レスポンスDTO
type ProgressResponse struct {
	TotalDays            int     `json:"total_days"`
	CompletedDays        int     `json:"completed_days"`
	SkippedDays          int     `json:"skipped_days"`
	CurrentStreak        int     `json:"current_streak"`
	CompletionPercentage float64 `json:"completion_percentage"`
	CurrentDay           *int    `json:"current_day,omitempty"`
	UsedSkips            int     `json:"used_skips"`
	AllowedSkips         int     `json:"allowed_skips"`
}
