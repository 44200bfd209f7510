package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go_beauty_tracker/internal/config"
	"go_beauty_tracker/internal/middleware"
	"go_beauty_tracker/internal/model"
	"go_beauty_tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackerService は30日プログラムの進行エンジンです。
// 日の状態遷移 (locked -> open -> completed/skipped)、スキップ予算、
// ストリーク、進捗集計をすべてここで扱います。
type TrackerService interface {
	StartProgram(ctx context.Context, userID uuid.UUID) (*model.StartProgramResponse, error)
	GetCurrentProgram(ctx context.Context, userID uuid.UUID) (*model.UserProgram, error)
	GetCurrentDay(ctx context.Context, userID uuid.UUID) (*model.DayResponse, error)
	GetDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*model.DayResponse, error)
	GetDays(ctx context.Context, userID uuid.UUID) ([]*model.UserDay, error)
	ToggleHabit(ctx context.Context, userID uuid.UUID, dayNumber int, habitID uuid.UUID) (*model.ToggleHabitResponse, error)
	CompleteDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*model.TransitionResponse, error)
	SkipDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*model.TransitionResponse, error)
	GetProgress(ctx context.Context, userID uuid.UUID) (*model.ProgressResponse, error)
	AbandonProgram(ctx context.Context, userID uuid.UUID) (*model.UserProgram, error)
}

type trackerService struct {
	db           *gorm.DB
	programRepo  repository.ProgramRepository
	templateRepo repository.TemplateRepository
	cfg          *config.Config
}

// NewTrackerService は TrackerService の新しいインスタンスを生成します
func NewTrackerService(db *gorm.DB, programRepo repository.ProgramRepository, templateRepo repository.TemplateRepository, cfg *config.Config) TrackerService {
	return &trackerService{
		db:           db,
		programRepo:  programRepo,
		templateRepo: templateRepo,
		cfg:          cfg,
	}
}

// StartProgram はアクティブなテンプレートにエンロールし、全日分のレコードを生成します。
// 1日目だけが open で始まり、残りは locked です。
func (s *trackerService) StartProgram(ctx context.Context, userID uuid.UUID) (*model.StartProgramResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	var program *model.UserProgram
	var firstDay *model.UserDay

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 進行中プログラムの重複チェック
		_, err := s.programRepo.FindActiveByUserID(ctx, tx, userID)
		if err == nil {
			logger.Warn("User already has an active program")
			return model.NewAppError("PROGRAM_ALREADY_ACTIVE", "進行中のプログラムが既に存在します。", "", model.ErrProgramAlreadyActive)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check active program", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}

		// エンロール先はその時点でアクティブなテンプレート。IDはスナップショットとして保持する。
		template, err := s.templateRepo.FindActive(ctx, tx)
		if err != nil {
			if errors.Is(err, model.ErrNoActiveTemplate) {
				logger.Warn("No active program template")
				return model.NewAppError("NO_ACTIVE_TEMPLATE", "現在エンロール可能なプログラムがありません。", "", model.ErrNoActiveTemplate)
			}
			logger.Error("Failed to find active template", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}

		now := time.Now()
		program = &model.UserProgram{
			ProgramID:        uuid.New(),
			UserID:           userID,
			TemplateID:       template.TemplateID,
			Status:           model.ProgramActive,
			CurrentDayNumber: 1,
			AllowedSkips:     s.cfg.App.AllowedSkips,
			Version:          1,
			StartedAt:        now,
		}
		if err := s.programRepo.Create(ctx, tx, program); err != nil {
			logger.Error("Failed to create user program", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "プログラムの開始に失敗しました。", "", err)
		}

		days := make([]*model.UserDay, 0, s.cfg.App.ProgramDays)
		for n := 1; n <= s.cfg.App.ProgramDays; n++ {
			day := &model.UserDay{
				UserDayID: uuid.New(),
				ProgramID: program.ProgramID,
				DayNumber: n,
				Status:    model.DayLocked,
			}
			if n == 1 {
				day.Status = model.DayOpen
				opened := now
				day.OpenedAt = &opened
				firstDay = day
			}
			days = append(days, day)
		}
		if err := s.programRepo.CreateDays(ctx, tx, days); err != nil {
			logger.Error("Failed to create user days", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "プログラムの開始に失敗しました。", "", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	dayResp, err := s.buildDayResponse(ctx, s.db, program, firstDay)
	if err != nil {
		return nil, err
	}

	logger.Info("Program started", "program_id", program.ProgramID, "template_id", program.TemplateID)
	return &model.StartProgramResponse{Program: program, Day: dayResp}, nil
}

// GetCurrentProgram は進行中のプログラムを返します
func (s *trackerService) GetCurrentProgram(ctx context.Context, userID uuid.UUID) (*model.UserProgram, error) {
	return s.findActiveProgram(ctx, userID)
}

// GetCurrentDay は進行中プログラムの現在の日を返します
func (s *trackerService) GetCurrentDay(ctx context.Context, userID uuid.UUID) (*model.DayResponse, error) {
	program, err := s.findActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.GetDay(ctx, userID, program.CurrentDayNumber)
}

// GetDay は指定された日番号の日を返します。未到達の locked の日は参照できません。
func (s *trackerService) GetDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*model.DayResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "day_number", dayNumber)

	if dayNumber < 1 || dayNumber > s.cfg.App.ProgramDays {
		return nil, model.NewAppError("INVALID_DAY_NUMBER", "日番号が正しくありません。", "day_number", model.ErrInvalidInput)
	}

	program, err := s.findActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}

	userDay, err := s.programRepo.FindDay(ctx, s.db, program.ProgramID, dayNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("User day not found")
			return nil, model.NewAppError("DAY_NOT_FOUND", "指定された日が見つかりません。", "day_number", model.ErrNotFound)
		}
		logger.Error("Failed to find user day", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	if userDay.Status == model.DayLocked {
		logger.Warn("Attempt to view a locked day")
		return nil, model.NewAppError("DAY_NOT_OPEN", "この日はまだ開始されていません。", "day_number", model.ErrDayNotOpen)
	}

	return s.buildDayResponse(ctx, s.db, program, userDay)
}

// GetDays は全日の進行状態 (ステータスのみ) を日番号順で返します
func (s *trackerService) GetDays(ctx context.Context, userID uuid.UUID) ([]*model.UserDay, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	program, err := s.findActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}

	days, err := s.programRepo.FindDays(ctx, s.db, program.ProgramID)
	if err != nil {
		logger.Error("Failed to find user days", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	return days, nil
}

// ToggleHabit は open 中の日の習慣チェックを切り替えます。
// チェックが未作成なら completed=true で作成し、既存なら反転します。
func (s *trackerService) ToggleHabit(ctx context.Context, userID uuid.UUID, dayNumber int, habitID uuid.UUID) (*model.ToggleHabitResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "day_number", dayNumber, "habit_id", habitID.String())

	program, err := s.findActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}

	userDay, err := s.programRepo.FindDay(ctx, s.db, program.ProgramID, dayNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DAY_NOT_FOUND", "指定された日が見つかりません。", "day_number", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	// チェックの書き換えは open 中のみ。終端状態の日は読み取り専用。
	if userDay.Status != model.DayOpen {
		logger.Warn("Habit toggle on non-open day", "status", string(userDay.Status))
		return nil, model.NewAppError("DAY_NOT_OPEN", "この日はまだ開始されていないか、既に終了しています。", "day_number", model.ErrDayNotOpen)
	}

	// 習慣がその日のプランに含まれているか検証する
	inDay, err := s.habitBelongsToDay(ctx, program.TemplateID, dayNumber, habitID)
	if err != nil {
		return nil, err
	}
	if !inDay {
		logger.Warn("Habit not part of the day plan")
		return nil, model.NewAppError("HABIT_NOT_IN_DAY", "この習慣は指定された日のプランに含まれていません。", "habit_id", model.ErrNotFound)
	}

	var resp *model.ToggleHabitResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// closeDay と競合した場合に備えてトランザクション内で open を取り直す
		current, err := s.programRepo.FindDay(ctx, tx, program.ProgramID, dayNumber)
		if err != nil {
			logger.Error("Failed to re-check user day", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}
		if current.Status != model.DayOpen {
			logger.Warn("Day left open state before toggle", "status", string(current.Status))
			return model.NewAppError("DAY_NOT_OPEN", "この日はまだ開始されていないか、既に終了しています。", "day_number", model.ErrDayNotOpen)
		}

		check, err := s.programRepo.FindCheck(ctx, tx, userDay.UserDayID, habitID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				logger.Error("Failed to find habit check", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
			}
			// 初回タップはチェック済みとして作成
			newCheck := &model.HabitCheck{
				CheckID:   uuid.New(),
				UserDayID: userDay.UserDayID,
				HabitID:   habitID,
				Completed: true,
				CheckedAt: &now,
			}
			if err := s.programRepo.CreateCheck(ctx, tx, newCheck); err != nil {
				if errors.Is(err, model.ErrConflict) {
					logger.Warn("Concurrent habit check creation detected")
					return model.NewAppError("CONFLICT", "チェックが並行して更新されました。再度お試しください。", "habit_id", model.ErrConflict)
				}
				logger.Error("Failed to create habit check", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "チェックの保存に失敗しました。", "", err)
			}
			resp = &model.ToggleHabitResponse{HabitID: habitID, Completed: true}
			return nil
		}

		flipped := !check.Completed
		if err := s.programRepo.UpdateCheck(ctx, tx, check.CheckID, flipped, now); err != nil {
			logger.Error("Failed to update habit check", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "チェックの保存に失敗しました。", "", err)
		}
		resp = &model.ToggleHabitResponse{HabitID: habitID, Completed: flipped}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Habit check toggled", "completed", resp.Completed)
	return resp, nil
}

// CompleteDay は open 中の日を completed にし、次の日を開きます。
// 最終日の完了でプログラム全体が completed になります。
func (s *trackerService) CompleteDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*model.TransitionResponse, error) {
	return s.closeDay(ctx, userID, dayNumber, model.DayCompleted)
}

// SkipDay は open 中の日をスキップ予算の範囲内で skipped にし、次の日を開きます。
// スキップはストリークをゼロに戻します。
func (s *trackerService) SkipDay(ctx context.Context, userID uuid.UUID, dayNumber int) (*model.TransitionResponse, error) {
	return s.closeDay(ctx, userID, dayNumber, model.DaySkipped)
}

// closeDay は complete と skip に共通の遷移処理です。
// 日の遷移・カウンタ更新・次の日のオープンは同一トランザクションで行い、
// プログラム行は version 一致を条件に更新します。
func (s *trackerService) closeDay(ctx context.Context, userID uuid.UUID, dayNumber int, target model.DayStatus) (*model.TransitionResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "day_number", dayNumber, "target", string(target))

	program, err := s.findActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 閉じられるのは現在の日だけ
	if dayNumber != program.CurrentDayNumber {
		logger.Warn("Transition on non-current day", "current_day_number", program.CurrentDayNumber)
		return nil, model.NewAppError("DAY_NOT_OPEN", "この日はまだ開始されていないか、既に終了しています。", "day_number", model.ErrDayNotOpen)
	}

	if target == model.DaySkipped && program.UsedSkips >= program.AllowedSkips {
		logger.Warn("Skip budget exhausted", "used_skips", program.UsedSkips, "allowed_skips", program.AllowedSkips)
		return nil, model.NewAppError("SKIP_BUDGET_EXHAUSTED", "スキップ可能な回数を使い切りました。", "", model.ErrSkipBudgetExhausted)
	}

	userDay, err := s.programRepo.FindDay(ctx, s.db, program.ProgramID, dayNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DAY_NOT_FOUND", "指定された日が見つかりません。", "day_number", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	if userDay.Status != model.DayOpen {
		logger.Warn("Transition on non-open day", "status", string(userDay.Status))
		return nil, model.NewAppError("DAY_NOT_OPEN", "この日はまだ開始されていないか、既に終了しています。", "day_number", model.ErrDayNotOpen)
	}

	isLastDay := dayNumber == s.cfg.App.ProgramDays
	var nextUserDay *model.UserDay

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// open からのみ遷移させる。競合したリクエストは片方だけが通る。
		if err := s.programRepo.TransitionDay(ctx, tx, userDay.UserDayID, model.DayOpen, target, nil, &now); err != nil {
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Concurrent day transition detected")
				return model.NewAppError("CONFLICT", "この日は既に処理されています。", "day_number", model.ErrConflict)
			}
			logger.Error("Failed to transition user day", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "日の更新に失敗しました。", "", err)
		}

		updates := map[string]interface{}{}
		if target == model.DayCompleted {
			updates["completed_days"] = program.CompletedDays + 1
			updates["current_streak"] = program.CurrentStreak + 1
		} else {
			updates["used_skips"] = program.UsedSkips + 1
			updates["skipped_days"] = program.SkippedDays + 1
			updates["current_streak"] = 0
		}

		if isLastDay {
			// 最終日を閉じた時点でプログラムは終了。スキップで閉じても同じ。
			updates["status"] = model.ProgramCompleted
			updates["finished_at"] = now
		} else {
			updates["current_day_number"] = dayNumber + 1

			next, err := s.programRepo.FindDay(ctx, tx, program.ProgramID, dayNumber+1)
			if err != nil {
				logger.Error("Failed to find next user day", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "次の日の取得に失敗しました。", "", err)
			}
			if err := s.programRepo.TransitionDay(ctx, tx, next.UserDayID, model.DayLocked, model.DayOpen, &now, nil); err != nil {
				if errors.Is(err, model.ErrConflict) {
					return model.NewAppError("CONFLICT", "この日は既に処理されています。", "day_number", model.ErrConflict)
				}
				logger.Error("Failed to open next user day", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "次の日のオープンに失敗しました。", "", err)
			}
			nextUserDay = next
		}

		if err := s.programRepo.UpdateVersioned(ctx, tx, program.ProgramID, program.Version, updates); err != nil {
			if errors.Is(err, model.ErrVersionConflict) {
				logger.Warn("Program version conflict")
				return model.NewAppError("CONFLICT", "プログラムが並行して更新されました。再度お試しください。", "", model.ErrVersionConflict)
			}
			logger.Error("Failed to update user program", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "プログラムの更新に失敗しました。", "", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.programRepo.FindByID(ctx, s.db, program.ProgramID)
	if err != nil {
		logger.Error("Failed to reload program after transition", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	resp := &model.TransitionResponse{Program: updated}
	if nextUserDay != nil {
		// 遷移はコミット済みなのでステータスを読み替える
		nextUserDay.Status = model.DayOpen
		dayResp, err := s.buildDayResponse(ctx, s.db, updated, nextUserDay)
		if err != nil {
			return nil, err
		}
		resp.NextDay = dayResp
	}

	logger.Info("Day closed", "program_status", string(updated.Status), "current_day_number", updated.CurrentDayNumber)
	return resp, nil
}

// GetProgress は非正規化カウンタから進捗集計を組み立てます
func (s *trackerService) GetProgress(ctx context.Context, userID uuid.UUID) (*model.ProgressResponse, error) {
	program, err := s.findActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := s.cfg.App.ProgramDays
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(program.CompletedDays)/float64(total)*100*100) / 100
	}

	resp := &model.ProgressResponse{
		TotalDays:            total,
		CompletedDays:        program.CompletedDays,
		SkippedDays:          program.SkippedDays,
		CurrentStreak:        program.CurrentStreak,
		CompletionPercentage: percentage,
		UsedSkips:            program.UsedSkips,
		AllowedSkips:         program.AllowedSkips,
	}
	if program.Status == model.ProgramActive {
		current := program.CurrentDayNumber
		resp.CurrentDay = &current
	}
	return resp, nil
}

// AbandonProgram は進行中のプログラムを放棄します。放棄後は新しいプログラムを開始できます。
func (s *trackerService) AbandonProgram(ctx context.Context, userID uuid.UUID) (*model.UserProgram, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	program, err := s.findActiveProgram(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":      model.ProgramAbandoned,
			"finished_at": now,
		}
		if err := s.programRepo.UpdateVersioned(ctx, tx, program.ProgramID, program.Version, updates); err != nil {
			if errors.Is(err, model.ErrVersionConflict) {
				return model.NewAppError("CONFLICT", "プログラムが並行して更新されました。再度お試しください。", "", model.ErrVersionConflict)
			}
			logger.Error("Failed to abandon program", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "プログラムの放棄に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.programRepo.FindByID(ctx, s.db, program.ProgramID)
	if err != nil {
		logger.Error("Failed to reload program after abandon", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	logger.Info("Program abandoned", "program_id", updated.ProgramID)
	return updated, nil
}

// --- ヘルパー関数 ---

func (s *trackerService) findActiveProgram(ctx context.Context, userID uuid.UUID) (*model.UserProgram, error) {
	logger := middleware.GetLogger(ctx)
	program, err := s.programRepo.FindActiveByUserID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("No active program for user", "user_id", userID.String())
			return nil, model.NewAppError("NO_ACTIVE_PROGRAM", "進行中のプログラムがありません。", "", model.ErrNoActiveProgram)
		}
		logger.Error("Failed to find active program", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	return program, nil
}

func (s *trackerService) habitBelongsToDay(ctx context.Context, templateID uuid.UUID, dayNumber int, habitID uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)

	templateDay, err := s.templateRepo.FindDay(ctx, s.db, templateID, dayNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		logger.Error("Failed to find template day", "error", err)
		return false, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	dayHabits, err := s.templateRepo.FindDayHabits(ctx, s.db, templateDay.DayID)
	if err != nil {
		logger.Error("Failed to find day habits", "error", err)
		return false, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	for _, dh := range dayHabits {
		if dh.HabitID == habitID {
			return true, nil
		}
	}
	return false, nil
}

// buildDayResponse はテンプレートの内容とユーザーのチェック状態を突き合わせて1日分のDTOを組み立てます。
// テンプレート側に日の定義がない場合は習慣なしの日として返します。
func (s *trackerService) buildDayResponse(ctx context.Context, db *gorm.DB, program *model.UserProgram, userDay *model.UserDay) (*model.DayResponse, error) {
	logger := middleware.GetLogger(ctx)

	resp := &model.DayResponse{
		UserDayID: userDay.UserDayID,
		DayNumber: userDay.DayNumber,
		Status:    userDay.Status,
		OpenedAt:  userDay.OpenedAt,
		ClosedAt:  userDay.ClosedAt,
		Habits:    []*model.DayHabitState{},
	}

	templateDay, err := s.templateRepo.FindDay(ctx, db, program.TemplateID, userDay.DayNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return resp, nil
		}
		logger.Error("Failed to find template day", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	resp.FocusText = templateDay.FocusText
	resp.FocusTextRu = templateDay.FocusTextRu
	resp.FocusTextKy = templateDay.FocusTextKy

	dayHabits, err := s.templateRepo.FindDayHabits(ctx, db, templateDay.DayID)
	if err != nil {
		logger.Error("Failed to find day habits", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	checks, err := s.programRepo.FindChecks(ctx, db, userDay.UserDayID)
	if err != nil {
		logger.Error("Failed to find habit checks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	checked := make(map[uuid.UUID]bool, len(checks))
	for _, c := range checks {
		checked[c.HabitID] = c.Completed
	}

	for _, dh := range dayHabits {
		if dh.Habit == nil {
			continue
		}
		// 非アクティブ化された習慣でもチェック済みの過去参照は残す
		if !dh.Habit.IsActive && !checked[dh.HabitID] {
			continue
		}
		resp.Habits = append(resp.Habits, &model.DayHabitState{
			HabitID:       dh.HabitID,
			Category:      dh.Habit.Category,
			Title:         dh.Habit.Title,
			TitleRu:       dh.Habit.TitleRu,
			TitleKy:       dh.Habit.TitleKy,
			Description:   dh.Habit.Description,
			DescriptionRu: dh.Habit.DescriptionRu,
			DescriptionKy: dh.Habit.DescriptionKy,
			Completed:     checked[dh.HabitID],
		})
	}

	return resp, nil
}
