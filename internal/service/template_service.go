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

// TemplateService はプログラムテンプレートの管理 (admin) と公開カタログ (ゲスト) を扱います
type TemplateService interface {
	CreateTemplate(ctx context.Context, req *model.CreateTemplateRequest) (*model.ProgramTemplate, error)
	ListTemplates(ctx context.Context) ([]*model.ProgramTemplate, error)
	GetTemplate(ctx context.Context, templateID uuid.UUID) (*model.ProgramTemplate, error)
	UpdateTemplate(ctx context.Context, templateID uuid.UUID, req *model.UpdateTemplateRequest) (*model.ProgramTemplate, error)
	ActivateTemplate(ctx context.Context, templateID uuid.UUID) (*model.ProgramTemplate, error)
	DeleteTemplate(ctx context.Context, templateID uuid.UUID) error

	CreateDay(ctx context.Context, templateID uuid.UUID, req *model.CreateProgramDayRequest) (*model.ProgramDayResponse, error)
	ListDays(ctx context.Context, templateID uuid.UUID) ([]*model.ProgramDayResponse, error)
	UpdateDay(ctx context.Context, templateID uuid.UUID, dayNumber int, req *model.UpdateProgramDayRequest) (*model.ProgramDayResponse, error)
	DeleteDay(ctx context.Context, templateID uuid.UUID, dayNumber int) error

	GetPublicInfo(ctx context.Context) (*model.PublicInfoResponse, error)
	ListPublicPrograms(ctx context.Context) ([]*model.PublicProgramResponse, error)
	GetDemoDay(ctx context.Context, templateID uuid.UUID) (*model.DemoDayResponse, error)
}

type templateService struct {
	db           *gorm.DB
	templateRepo repository.TemplateRepository
	habitRepo    repository.HabitRepository
}

// NewTemplateService は TemplateService の新しいインスタンスを生成します
func NewTemplateService(db *gorm.DB, templateRepo repository.TemplateRepository, habitRepo repository.HabitRepository) TemplateService {
	return &templateService{
		db:           db,
		templateRepo: templateRepo,
		habitRepo:    habitRepo,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, req *model.CreateTemplateRequest) (*model.ProgramTemplate, error) {
	logger := middleware.GetLogger(ctx)

	version := req.Version
	if version == 0 {
		version = 1
	}
	template := &model.ProgramTemplate{
		TemplateID:    uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		DescriptionRu: req.DescriptionRu,
		DescriptionKy: req.DescriptionKy,
		Version:       version,
		IsActive:      false, // 有効化は明示的な activate 操作でのみ行う
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.templateRepo.Create(ctx, tx, template); err != nil {
			logger.Error("Failed to create template", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テンプレートの作成に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Template created", "template_id", template.TemplateID, "name", template.Name)
	return template, nil
}

func (s *templateService) ListTemplates(ctx context.Context) ([]*model.ProgramTemplate, error) {
	logger := middleware.GetLogger(ctx)
	templates, err := s.templateRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list templates", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	return templates, nil
}

func (s *templateService) GetTemplate(ctx context.Context, templateID uuid.UUID) (*model.ProgramTemplate, error) {
	logger := middleware.GetLogger(ctx)
	template, err := s.templateRepo.FindByID(ctx, s.db, templateID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("TEMPLATE_NOT_FOUND", "テンプレートが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to find template", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	return template, nil
}

func (s *templateService) UpdateTemplate(ctx context.Context, templateID uuid.UUID, req *model.UpdateTemplateRequest) (*model.ProgramTemplate, error) {
	logger := middleware.GetLogger(ctx).With("template_id", templateID.String())

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
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
	if req.Version != nil {
		updates["version"] = *req.Version
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.templateRepo.Update(ctx, tx, templateID, updates); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("TEMPLATE_NOT_FOUND", "テンプレートが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Failed to update template", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テンプレートの更新に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Template updated")
	return s.GetTemplate(ctx, templateID)
}

// ActivateTemplate は指定テンプレートを唯一のアクティブなテンプレートにします
func (s *templateService) ActivateTemplate(ctx context.Context, templateID uuid.UUID) (*model.ProgramTemplate, error) {
	logger := middleware.GetLogger(ctx).With("template_id", templateID.String())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.templateRepo.ActivateExclusive(ctx, tx, templateID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("TEMPLATE_NOT_FOUND", "テンプレートが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Failed to activate template", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テンプレートの有効化に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Template activated")
	return s.GetTemplate(ctx, templateID)
}

func (s *templateService) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("template_id", templateID.String())

	template, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return err
	}
	// アクティブなテンプレートは削除前に別テンプレートへ切り替える必要がある
	if template.IsActive {
		logger.Warn("Attempt to delete active template")
		return model.NewAppError("TEMPLATE_ACTIVE", "アクティブなテンプレートは削除できません。", "", model.ErrConflict)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		days, err := s.templateRepo.FindDays(ctx, tx, templateID)
		if err != nil {
			logger.Error("Failed to list template days for delete", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テンプレートの削除に失敗しました。", "", err)
		}
		for _, day := range days {
			if err := s.templateRepo.DeleteDay(ctx, tx, day.DayID); err != nil && !errors.Is(err, model.ErrNotFound) {
				logger.Error("Failed to delete template day", "error", err, "day_id", day.DayID)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "テンプレートの削除に失敗しました。", "", err)
			}
		}
		if err := s.templateRepo.Delete(ctx, tx, templateID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("TEMPLATE_NOT_FOUND", "テンプレートが見つかりません。", "", model.ErrNotFound)
			}
			logger.Error("Failed to delete template", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テンプレートの削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Template deleted")
	return nil
}

// CreateDay はテンプレートに日を追加します。日番号はテンプレート内で一意です。
func (s *templateService) CreateDay(ctx context.Context, templateID uuid.UUID, req *model.CreateProgramDayRequest) (*model.ProgramDayResponse, error) {
	logger := middleware.GetLogger(ctx).With("template_id", templateID.String(), "day_number", req.DayNumber)

	if _, err := s.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	// 日番号の重複チェック
	if _, err := s.templateRepo.FindDay(ctx, s.db, templateID, req.DayNumber); err == nil {
		logger.Warn("Day number already exists")
		return nil, model.NewAppError("DUPLICATE_DAY_NUMBER", "この日番号は既に使用されています。", "day_number", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to check day number", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	if err := s.verifyHabitsExist(ctx, req.HabitIDs); err != nil {
		return nil, err
	}

	day := &model.ProgramDay{
		DayID:       uuid.New(),
		TemplateID:  templateID,
		DayNumber:   req.DayNumber,
		FocusText:   req.FocusText,
		FocusTextRu: req.FocusTextRu,
		FocusTextKy: req.FocusTextKy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.templateRepo.CreateDay(ctx, tx, day); err != nil {
			logger.Error("Failed to create program day", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "日の作成に失敗しました。", "", err)
		}
		if err := s.templateRepo.ReplaceDayHabits(ctx, tx, day.DayID, req.HabitIDs); err != nil {
			logger.Error("Failed to set day habits", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "日の作成に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Program day created", "day_id", day.DayID)
	return s.buildProgramDayResponse(ctx, day)
}

func (s *templateService) ListDays(ctx context.Context, templateID uuid.UUID) ([]*model.ProgramDayResponse, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := s.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	days, err := s.templateRepo.FindDays(ctx, s.db, templateID)
	if err != nil {
		logger.Error("Failed to list program days", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	responses := make([]*model.ProgramDayResponse, 0, len(days))
	for _, day := range days {
		resp, err := s.buildProgramDayResponse(ctx, day)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *templateService) UpdateDay(ctx context.Context, templateID uuid.UUID, dayNumber int, req *model.UpdateProgramDayRequest) (*model.ProgramDayResponse, error) {
	logger := middleware.GetLogger(ctx).With("template_id", templateID.String(), "day_number", dayNumber)

	day, err := s.templateRepo.FindDay(ctx, s.db, templateID, dayNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DAY_NOT_FOUND", "指定された日が見つかりません。", "day_number", model.ErrNotFound)
		}
		logger.Error("Failed to find program day", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	updates := map[string]interface{}{}
	if req.FocusText != nil {
		updates["focus_text"] = *req.FocusText
	}
	if req.FocusTextRu != nil {
		updates["focus_text_ru"] = *req.FocusTextRu
	}
	if req.FocusTextKy != nil {
		updates["focus_text_ky"] = *req.FocusTextKy
	}

	if len(req.HabitIDs) > 0 {
		if err := s.verifyHabitsExist(ctx, req.HabitIDs); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := s.templateRepo.UpdateDay(ctx, tx, day.DayID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("DAY_NOT_FOUND", "指定された日が見つかりません。", "day_number", model.ErrNotFound)
				}
				logger.Error("Failed to update program day", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "日の更新に失敗しました。", "", err)
			}
		}
		if len(req.HabitIDs) > 0 {
			if err := s.templateRepo.ReplaceDayHabits(ctx, tx, day.DayID, req.HabitIDs); err != nil {
				logger.Error("Failed to replace day habits", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "日の更新に失敗しました。", "", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.templateRepo.FindDayByID(ctx, s.db, day.DayID)
	if err != nil {
		logger.Error("Failed to reload program day", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	logger.Info("Program day updated", "day_id", day.DayID)
	return s.buildProgramDayResponse(ctx, updated)
}

func (s *templateService) DeleteDay(ctx context.Context, templateID uuid.UUID, dayNumber int) error {
	logger := middleware.GetLogger(ctx).With("template_id", templateID.String(), "day_number", dayNumber)

	day, err := s.templateRepo.FindDay(ctx, s.db, templateID, dayNumber)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("DAY_NOT_FOUND", "指定された日が見つかりません。", "day_number", model.ErrNotFound)
		}
		logger.Error("Failed to find program day", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.templateRepo.DeleteDay(ctx, tx, day.DayID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("DAY_NOT_FOUND", "指定された日が見つかりません。", "day_number", model.ErrNotFound)
			}
			logger.Error("Failed to delete program day", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "日の削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Program day deleted", "day_id", day.DayID)
	return nil
}

// GetPublicInfo はランディングページ用のトラッカー紹介テキストを返します
func (s *templateService) GetPublicInfo(ctx context.Context) (*model.PublicInfoResponse, error) {
	return &model.PublicInfoResponse{
		Title:         "30-Day Beauty Tracker",
		TitleRu:       "Бьюти-трекер на 30 дней",
		TitleKy:       "30 күндүк сулуулук трекери",
		Description:   "A guided 30-day self-care program with daily habits, focus themes and progress tracking.",
		DescriptionRu: "30-дневная программа ухода за собой с ежедневными привычками, темами дня и отслеживанием прогресса.",
		DescriptionKy: "Күнүмдүк адаттар, күндүн темалары жана прогрессти көзөмөлдөө менен 30 күндүк өзүнө кам көрүү программасы.",
		Benefits: []string{
			"Daily skincare and body care habits",
			"One guided focus theme per day",
			"Streaks and completion tracking",
			"Up to 3 rest days without losing progress",
		},
		BenefitsRu: []string{
			"Ежедневные привычки ухода за кожей и телом",
			"Одна тема дня с рекомендациями",
			"Серии и отслеживание прогресса",
			"До 3 дней отдыха без потери прогресса",
		},
		BenefitsKy: []string{
			"Тери жана дене багуу боюнча күнүмдүк адаттар",
			"Ар бир күнгө бир тема жана сунуштар",
			"Удаалаш күндөр жана прогрессти көзөмөлдөө",
			"Прогрессти жоготпостон 3 күнгө чейин эс алуу",
		},
	}, nil
}

// ListPublicPrograms はゲスト向けにアクティブなテンプレートの一覧を返します
func (s *templateService) ListPublicPrograms(ctx context.Context) ([]*model.PublicProgramResponse, error) {
	logger := middleware.GetLogger(ctx)

	templates, err := s.templateRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list templates for public catalog", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	responses := make([]*model.PublicProgramResponse, 0, len(templates))
	for _, template := range templates {
		if !template.IsActive {
			continue
		}
		count, err := s.templateRepo.CountDays(ctx, s.db, template.TemplateID)
		if err != nil {
			logger.Error("Failed to count template days", "error", err, "template_id", template.TemplateID)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}
		responses = append(responses, &model.PublicProgramResponse{
			TemplateID:    template.TemplateID,
			Name:          template.Name,
			Description:   template.Description,
			DescriptionRu: template.DescriptionRu,
			DescriptionKy: template.DescriptionKy,
			DaysCount:     int(count),
			Version:       template.Version,
			IsActive:      template.IsActive,
		})
	}
	return responses, nil
}

// GetDemoDay は未登録ユーザー向けに、個人データなしでテンプレートの1日目を返します
func (s *templateService) GetDemoDay(ctx context.Context, templateID uuid.UUID) (*model.DemoDayResponse, error) {
	logger := middleware.GetLogger(ctx).With("template_id", templateID.String())

	template, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	day, err := s.templateRepo.FindDay(ctx, s.db, templateID, 1)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Template has no first day")
			return nil, model.NewAppError("DAY_NOT_FOUND", "このプログラムにはまだ日が定義されていません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to find first day", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	habits, err := s.resolveDayHabits(ctx, day.DayID)
	if err != nil {
		return nil, err
	}

	return &model.DemoDayResponse{
		TemplateID:  template.TemplateID,
		ProgramName: template.Name,
		DayNumber:   day.DayNumber,
		FocusText:   day.FocusText,
		FocusTextRu: day.FocusTextRu,
		FocusTextKy: day.FocusTextKy,
		Habits:      habits,
		IsDemo:      true,
	}, nil
}

// --- ヘルパー関数 ---

func (s *templateService) verifyHabitsExist(ctx context.Context, habitIDs []uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	for _, habitID := range habitIDs {
		if _, err := s.habitRepo.FindByID(ctx, s.db, habitID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Habit not found", "habit_id", habitID.String())
				return model.NewAppError("HABIT_NOT_FOUND", "指定された習慣が見つかりません。", "habit_ids", model.ErrInvalidInput)
			}
			logger.Error("Failed to verify habit", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
		}
	}
	return nil
}

func (s *templateService) resolveDayHabits(ctx context.Context, dayID uuid.UUID) ([]*model.Habit, error) {
	logger := middleware.GetLogger(ctx)
	dayHabits, err := s.templateRepo.FindDayHabits(ctx, s.db, dayID)
	if err != nil {
		logger.Error("Failed to find day habits", "error", err, "day_id", dayID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}
	habits := make([]*model.Habit, 0, len(dayHabits))
	for _, dh := range dayHabits {
		if dh.Habit == nil || !dh.Habit.IsActive {
			continue
		}
		habits = append(habits, dh.Habit)
	}
	return habits, nil
}

func (s *templateService) buildProgramDayResponse(ctx context.Context, day *model.ProgramDay) (*model.ProgramDayResponse, error) {
	habits, err := s.resolveDayHabits(ctx, day.DayID)
	if err != nil {
		return nil, err
	}
	return &model.ProgramDayResponse{
		DayID:       day.DayID,
		DayNumber:   day.DayNumber,
		FocusText:   day.FocusText,
		FocusTextRu: day.FocusTextRu,
		FocusTextKy: day.FocusTextKy,
		Habits:      habits,
	}, nil
}
