// internal/handlers/admin_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_beauty_tracker/internal/model"
	"go_beauty_tracker/internal/service"
	"go_beauty_tracker/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AdminHandler はテンプレートと習慣カタログの管理APIを扱います。
// ルーティング側で admin ロールが要求されます。
type AdminHandler struct {
	templateService service.TemplateService
	habitService    service.HabitService
	logger          *slog.Logger
}

func NewAdminHandler(templateService service.TemplateService, habitService service.HabitService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		templateService: templateService,
		habitService:    habitService,
		logger:          logger,
	}
}

// --- テンプレート ---

// PostTemplate は新しいプログラムテンプレートを作成するハンドラ
func (h *AdminHandler) PostTemplate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostTemplate"))

	var req model.CreateTemplateRequest
	if !h.decodeAndValidate(w, r, logger, &req) {
		return
	}

	template, err := h.templateService.CreateTemplate(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating template in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Template created successfully", slog.String("template_id", template.TemplateID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, template, logger)
}

// GetTemplates はテンプレートの一覧を取得するハンドラ
func (h *AdminHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTemplates"))

	templates, err := h.templateService.ListTemplates(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if templates == nil {
		templates = []*model.ProgramTemplate{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, templates, logger)
}

// GetTemplate は特定のテンプレートを取得するハンドラ
func (h *AdminHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTemplate"))

	templateID, ok := h.parseTemplateID(w, r, logger)
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(r.Context(), templateID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Template not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting template from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, template, logger)
}

// PatchTemplate はテンプレートを部分更新するハンドラ
func (h *AdminHandler) PatchTemplate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchTemplate"))

	templateID, ok := h.parseTemplateID(w, r, logger)
	if !ok {
		return
	}

	var req model.UpdateTemplateRequest
	if !h.decodeAndValidate(w, r, logger, &req) {
		return
	}

	template, err := h.templateService.UpdateTemplate(r.Context(), templateID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Template updated successfully", slog.String("template_id", templateID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, template, logger)
}

// ActivateTemplate はテンプレートを唯一のアクティブなテンプレートにするハンドラ
func (h *AdminHandler) ActivateTemplate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ActivateTemplate"))

	templateID, ok := h.parseTemplateID(w, r, logger)
	if !ok {
		return
	}

	template, err := h.templateService.ActivateTemplate(r.Context(), templateID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Template activated successfully", slog.String("template_id", templateID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, template, logger)
}

// DeleteTemplate はテンプレートを削除するハンドラ
func (h *AdminHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteTemplate"))

	templateID, ok := h.parseTemplateID(w, r, logger)
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(r.Context(), templateID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Template deleted successfully", slog.String("template_id", templateID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// --- テンプレートの日 ---

// PostTemplateDay はテンプレートに日を追加するハンドラ
func (h *AdminHandler) PostTemplateDay(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostTemplateDay"))

	templateID, ok := h.parseTemplateID(w, r, logger)
	if !ok {
		return
	}

	var req model.CreateProgramDayRequest
	if !h.decodeAndValidate(w, r, logger, &req) {
		return
	}

	day, err := h.templateService.CreateDay(r.Context(), templateID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Template day created successfully", slog.String("template_id", templateID.String()), slog.Int("day_number", day.DayNumber))
	webutil.RespondWithJSON(w, http.StatusCreated, day, logger)
}

// GetTemplateDays はテンプレートの日の一覧を取得するハンドラ
func (h *AdminHandler) GetTemplateDays(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTemplateDays"))

	templateID, ok := h.parseTemplateID(w, r, logger)
	if !ok {
		return
	}

	days, err := h.templateService.ListDays(r.Context(), templateID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if days == nil {
		days = []*model.ProgramDayResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, days, logger)
}

// PatchTemplateDay はテンプレートの日を部分更新するハンドラ
func (h *AdminHandler) PatchTemplateDay(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchTemplateDay"))

	templateID, ok := h.parseTemplateID(w, r, logger)
	if !ok {
		return
	}
	dayNumber, ok := h.parseDayNumber(w, r, logger)
	if !ok {
		return
	}

	var req model.UpdateProgramDayRequest
	if !h.decodeAndValidate(w, r, logger, &req) {
		return
	}

	day, err := h.templateService.UpdateDay(r.Context(), templateID, dayNumber, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Template day updated successfully", slog.String("template_id", templateID.String()), slog.Int("day_number", dayNumber))
	webutil.RespondWithJSON(w, http.StatusOK, day, logger)
}

// DeleteTemplateDay はテンプレートの日を削除するハンドラ
func (h *AdminHandler) DeleteTemplateDay(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteTemplateDay"))

	templateID, ok := h.parseTemplateID(w, r, logger)
	if !ok {
		return
	}
	dayNumber, ok := h.parseDayNumber(w, r, logger)
	if !ok {
		return
	}

	if err := h.templateService.DeleteDay(r.Context(), templateID, dayNumber); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Template day deleted successfully", slog.String("template_id", templateID.String()), slog.Int("day_number", dayNumber))
	w.WriteHeader(http.StatusNoContent)
}

// --- 習慣カタログ ---

// PostHabit は新しい習慣を作成するハンドラ
func (h *AdminHandler) PostHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostHabit"))

	var req model.CreateHabitRequest
	if !h.decodeAndValidate(w, r, logger, &req) {
		return
	}

	habit, err := h.habitService.CreateHabit(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Habit created successfully", slog.String("habit_id", habit.HabitID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, habit, logger)
}

// GetHabits は習慣の一覧を取得するハンドラ。?category= で絞り込めます。
func (h *AdminHandler) GetHabits(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHabits"))

	var category *model.HabitCategory
	if c := r.URL.Query().Get("category"); c != "" {
		hc := model.HabitCategory(c)
		category = &hc
	}

	habits, err := h.habitService.ListHabits(r.Context(), category)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if habits == nil {
		habits = []*model.Habit{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, habits, logger)
}

// GetHabit は特定の習慣を取得するハンドラ
func (h *AdminHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHabit"))

	habitID, ok := h.parseHabitID(w, r, logger)
	if !ok {
		return
	}

	habit, err := h.habitService.GetHabit(r.Context(), habitID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, habit, logger)
}

// PatchHabit は習慣を部分更新するハンドラ
func (h *AdminHandler) PatchHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchHabit"))

	habitID, ok := h.parseHabitID(w, r, logger)
	if !ok {
		return
	}

	var req model.UpdateHabitRequest
	if !h.decodeAndValidate(w, r, logger, &req) {
		return
	}

	habit, err := h.habitService.UpdateHabit(r.Context(), habitID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Habit updated successfully", slog.String("habit_id", habitID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, habit, logger)
}

// DeleteHabit は習慣を非アクティブ化するハンドラ
func (h *AdminHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteHabit"))

	habitID, ok := h.parseHabitID(w, r, logger)
	if !ok {
		return
	}

	if err := h.habitService.DeleteHabit(r.Context(), habitID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Habit deactivated successfully", slog.String("habit_id", habitID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー関数 ---

// decodeAndValidate はボディのデコードとバリデーションをまとめて行い、
// 失敗時はエラーレスポンスを書き込んで false を返します。
func (h *AdminHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, req interface{}) bool {
	if err := webutil.DecodeJSONBody(r, req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return false
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			// 最初のエラーを代表としてクライアントに返す
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return false
	}
	return true
}

func (h *AdminHandler) parseTemplateID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	templateIDStr := chi.URLParam(r, "template_id")
	templateID, err := uuid.Parse(templateIDStr)
	if err != nil {
		logger.Warn("Invalid template ID format in URL", slog.String("template_id_str", templateIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "template_idの形式が正しくありません。", "template_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return templateID, true
}

func (h *AdminHandler) parseHabitID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	habitIDStr := chi.URLParam(r, "habit_id")
	habitID, err := uuid.Parse(habitIDStr)
	if err != nil {
		logger.Warn("Invalid habit ID format in URL", slog.String("habit_id_str", habitIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "habit_idの形式が正しくありません。", "habit_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return habitID, true
}

func (h *AdminHandler) parseDayNumber(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int, bool) {
	dayNumberStr := chi.URLParam(r, "day_number")
	dayNumber, err := strconv.Atoi(dayNumberStr)
	if err != nil {
		logger.Warn("Invalid day number format in URL", slog.String("day_number_str", dayNumberStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "day_numberの形式が正しくありません。", "day_number", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return 0, false
	}
	return dayNumber, true
}
