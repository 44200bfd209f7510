// internal/handlers/tracker_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_beauty_tracker/internal/middleware"
	"go_beauty_tracker/internal/model"
	"go_beauty_tracker/internal/service"
	"go_beauty_tracker/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TrackerHandler は30日プログラムのユーザー向けAPIと公開APIを扱います
type TrackerHandler struct {
	trackerService  service.TrackerService
	templateService service.TemplateService
	logger          *slog.Logger
}

func NewTrackerHandler(trackerService service.TrackerService, templateService service.TemplateService, logger *slog.Logger) *TrackerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackerHandler{
		trackerService:  trackerService,
		templateService: templateService,
		logger:          logger,
	}
}

// StartProgram はアクティブなテンプレートへのエンロールを開始するハンドラ
func (h *TrackerHandler) StartProgram(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartProgram"))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	resp, err := h.trackerService.StartProgram(r.Context(), userID)
	if err != nil {
		logger.Warn("Error starting program in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Program started successfully", slog.String("program_id", resp.Program.ProgramID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

// GetCurrentProgram は進行中のプログラムを取得するハンドラ
func (h *TrackerHandler) GetCurrentProgram(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurrentProgram"))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	program, err := h.trackerService.GetCurrentProgram(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, program, logger)
}

// GetDays は全日の進行状態の一覧を取得するハンドラ
func (h *TrackerHandler) GetDays(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDays"))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	days, err := h.trackerService.GetDays(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, days, logger)
}

// GetCurrentDay は現在の日を取得するハンドラ
func (h *TrackerHandler) GetCurrentDay(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCurrentDay"))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	resp, err := h.trackerService.GetCurrentDay(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetDay は指定された日番号の日を取得するハンドラ
func (h *TrackerHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDay"))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	dayNumber, ok := h.parseDayNumber(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()), slog.Int("day_number", dayNumber))

	resp, err := h.trackerService.GetDay(r.Context(), userID, dayNumber)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// ToggleHabit は open 中の日の習慣チェックを切り替えるハンドラ
func (h *TrackerHandler) ToggleHabit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ToggleHabit"))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	dayNumber, ok := h.parseDayNumber(w, r, logger)
	if !ok {
		return
	}

	habitIDStr := chi.URLParam(r, "habit_id")
	habitID, err := uuid.Parse(habitIDStr)
	if err != nil {
		logger.Warn("Invalid habit ID format in URL", slog.String("habit_id_str", habitIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "habit_idの形式が正しくありません。", "habit_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()), slog.Int("day_number", dayNumber), slog.String("habit_id", habitID.String()))

	resp, err := h.trackerService.ToggleHabit(r.Context(), userID, dayNumber, habitID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Habit toggled successfully", slog.Bool("completed", resp.Completed))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// CompleteDay は現在の日を完了扱いで閉じるハンドラ
func (h *TrackerHandler) CompleteDay(w http.ResponseWriter, r *http.Request) {
	h.closeDay(w, r, "CompleteDay")
}

// SkipDay は現在の日をスキップ扱いで閉じるハンドラ
func (h *TrackerHandler) SkipDay(w http.ResponseWriter, r *http.Request) {
	h.closeDay(w, r, "SkipDay")
}

func (h *TrackerHandler) closeDay(w http.ResponseWriter, r *http.Request, handlerName string) {
	logger := h.logger.With(slog.String("handler", handlerName))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	dayNumber, ok := h.parseDayNumber(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()), slog.Int("day_number", dayNumber))

	var resp *model.TransitionResponse
	var err error
	if handlerName == "SkipDay" {
		resp, err = h.trackerService.SkipDay(r.Context(), userID, dayNumber)
	} else {
		resp, err = h.trackerService.CompleteDay(r.Context(), userID, dayNumber)
	}
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Day transition successful", slog.String("program_status", string(resp.Program.Status)))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetProgress は進捗集計を取得するハンドラ
func (h *TrackerHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgress"))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	resp, err := h.trackerService.GetProgress(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// AbandonProgram は進行中のプログラムを放棄するハンドラ
func (h *TrackerHandler) AbandonProgram(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AbandonProgram"))

	userID, ok := h.requireUser(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	program, err := h.trackerService.AbandonProgram(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Program abandoned successfully", slog.String("program_id", program.ProgramID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, program, logger)
}

// --- 公開API (認証不要) ---

// GetPublicInfo はランディング用のトラッカー紹介テキストを返すハンドラ
func (h *TrackerHandler) GetPublicInfo(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPublicInfo"))

	resp, err := h.templateService.GetPublicInfo(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// ListPublicPrograms はゲスト向けのアクティブなプログラム一覧を返すハンドラ
func (h *TrackerHandler) ListPublicPrograms(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListPublicPrograms"))

	programs, err := h.templateService.ListPublicPrograms(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if programs == nil {
		programs = []*model.PublicProgramResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, programs, logger)
}

// GetDemoDay は未登録ユーザー向けにテンプレートの1日目をデモとして返すハンドラ
func (h *TrackerHandler) GetDemoDay(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDemoDay"))

	templateIDStr := chi.URLParam(r, "template_id")
	templateID, err := uuid.Parse(templateIDStr)
	if err != nil {
		logger.Warn("Invalid template ID format in URL", slog.String("template_id_str", templateIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "template_idの形式が正しくありません。", "template_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("template_id", templateID.String()))

	resp, err := h.templateService.GetDemoDay(r.Context(), templateID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// --- ヘルパー関数 ---

func (h *TrackerHandler) requireUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return userID, true
}

func (h *TrackerHandler) parseDayNumber(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int, bool) {
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
