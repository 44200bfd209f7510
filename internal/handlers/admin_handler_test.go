// internal/handlers/admin_handler_test.go
package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"go_beauty_tracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoleEnforcement(t *testing.T) {
	userID := uuid.New()

	t.Run("clientロールでは管理APIにアクセスできない", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/admin/tracker/habits", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "FORBIDDEN", decodeErrorBody(t, rr))
	})

	t.Run("professionalロールでも管理APIにアクセスできない", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/admin/tracker/templates", nil, &userID, model.RoleProfessional)
		rr := executeRequest(req)

		require.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("adminロールはアクセスできる", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/admin/tracker/habits", nil, &userID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestAdminHabitCRUD(t *testing.T) {
	adminID := uuid.New()

	var habitID uuid.UUID

	t.Run("習慣の作成", func(t *testing.T) {
		body := model.CreateHabitRequest{
			Category: model.CategoryLifestyle,
			Title:    "Evening stretching",
			TitleRu:  "Вечерняя растяжка",
		}
		req := createRequest(t, http.MethodPost, "/api/v1/admin/tracker/habits", body, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

		var habit model.Habit
		decodeBody(t, rr, &habit)
		assert.Equal(t, "Evening stretching", habit.Title)
		assert.True(t, habit.IsActive)
		habitID = habit.HabitID
	})

	t.Run("バリデーションエラーは400", func(t *testing.T) {
		body := model.CreateHabitRequest{Category: model.CategoryFace} // Titleなし
		req := createRequest(t, http.MethodPost, "/api/v1/admin/tracker/habits", body, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeErrorBody(t, rr))
	})

	t.Run("習慣の更新", func(t *testing.T) {
		newTitle := "Evening stretching (15 min)"
		body := model.UpdateHabitRequest{Title: &newTitle}
		path := fmt.Sprintf("/api/v1/admin/tracker/habits/%s", habitID)
		req := createRequest(t, http.MethodPatch, path, body, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var habit model.Habit
		decodeBody(t, rr, &habit)
		assert.Equal(t, newTitle, habit.Title)
	})

	t.Run("カテゴリでの絞り込み", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/admin/tracker/habits?category=lifestyle", nil, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code)

		var habits []*model.Habit
		decodeBody(t, rr, &habits)
		require.NotEmpty(t, habits)
		for _, habit := range habits {
			assert.Equal(t, model.CategoryLifestyle, habit.Category)
		}
	})

	t.Run("未知のカテゴリは400", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/admin/tracker/habits?category=unknown", nil, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("削除は非アクティブ化", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/admin/tracker/habits/%s", habitID)
		req := createRequest(t, http.MethodDelete, path, nil, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusNoContent, rr.Code)

		req = createRequest(t, http.MethodGet, path, nil, &adminID, model.RoleAdmin)
		rr = executeRequest(req)
		require.Equal(t, http.StatusOK, rr.Code)

		var habit model.Habit
		decodeBody(t, rr, &habit)
		assert.False(t, habit.IsActive)
	})

	t.Run("存在しない習慣は404", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/admin/tracker/habits/%s", uuid.New())
		req := createRequest(t, http.MethodGet, path, nil, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "HABIT_NOT_FOUND", decodeErrorBody(t, rr))
	})
}

func TestAdminTemplateCRUD(t *testing.T) {
	adminID := uuid.New()
	seededTemplateID := activeTemplateID(t)

	var templateID uuid.UUID
	var habitID uuid.UUID

	t.Run("テンプレートの作成は非アクティブで始まる", func(t *testing.T) {
		body := model.CreateTemplateRequest{Name: "30 Days Beauty (draft v2)", Description: "Next season draft"}
		req := createRequest(t, http.MethodPost, "/api/v1/admin/tracker/templates", body, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

		var template model.ProgramTemplate
		decodeBody(t, rr, &template)
		assert.False(t, template.IsActive)
		assert.Equal(t, 1, template.Version)
		templateID = template.TemplateID
	})

	t.Run("日の追加", func(t *testing.T) {
		// 日に紐付ける習慣を用意する
		habitBody := model.CreateHabitRequest{Category: model.CategoryFace, Title: "Morning cleanse (draft)"}
		req := createRequest(t, http.MethodPost, "/api/v1/admin/tracker/habits", habitBody, &adminID, model.RoleAdmin)
		rr := executeRequest(req)
		require.Equal(t, http.StatusCreated, rr.Code)
		var habit model.Habit
		decodeBody(t, rr, &habit)
		habitID = habit.HabitID

		dayBody := model.CreateProgramDayRequest{DayNumber: 1, FocusText: "Fresh start", HabitIDs: []uuid.UUID{habitID}}
		path := fmt.Sprintf("/api/v1/admin/tracker/templates/%s/days", templateID)
		req = createRequest(t, http.MethodPost, path, dayBody, &adminID, model.RoleAdmin)
		rr = executeRequest(req)

		require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

		var day model.ProgramDayResponse
		decodeBody(t, rr, &day)
		assert.Equal(t, 1, day.DayNumber)
		require.Len(t, day.Habits, 1)
		assert.Equal(t, habitID, day.Habits[0].HabitID)
	})

	t.Run("日番号の重複は409", func(t *testing.T) {
		dayBody := model.CreateProgramDayRequest{DayNumber: 1, HabitIDs: []uuid.UUID{habitID}}
		path := fmt.Sprintf("/api/v1/admin/tracker/templates/%s/days", templateID)
		req := createRequest(t, http.MethodPost, path, dayBody, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "DUPLICATE_DAY_NUMBER", decodeErrorBody(t, rr))
	})

	t.Run("存在しない習慣を含む日の追加は400", func(t *testing.T) {
		dayBody := model.CreateProgramDayRequest{DayNumber: 2, HabitIDs: []uuid.UUID{uuid.New()}}
		path := fmt.Sprintf("/api/v1/admin/tracker/templates/%s/days", templateID)
		req := createRequest(t, http.MethodPost, path, dayBody, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "HABIT_NOT_FOUND", decodeErrorBody(t, rr))
	})

	t.Run("日の更新", func(t *testing.T) {
		focus := "Fresh start (revised)"
		dayBody := model.UpdateProgramDayRequest{FocusText: &focus}
		path := fmt.Sprintf("/api/v1/admin/tracker/templates/%s/days/1", templateID)
		req := createRequest(t, http.MethodPatch, path, dayBody, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var day model.ProgramDayResponse
		decodeBody(t, rr, &day)
		assert.Equal(t, focus, day.FocusText)
	})

	t.Run("有効化は排他的", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/admin/tracker/templates/%s/activate", templateID)
		req := createRequest(t, http.MethodPost, path, nil, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var template model.ProgramTemplate
		decodeBody(t, rr, &template)
		assert.True(t, template.IsActive)

		// 元のテンプレートは非アクティブになっている
		seededPath := fmt.Sprintf("/api/v1/admin/tracker/templates/%s", seededTemplateID)
		req = createRequest(t, http.MethodGet, seededPath, nil, &adminID, model.RoleAdmin)
		rr = executeRequest(req)
		require.Equal(t, http.StatusOK, rr.Code)
		decodeBody(t, rr, &template)
		assert.False(t, template.IsActive)

		// 後続のテストのためにシード済みテンプレートに戻す
		restorePath := fmt.Sprintf("/api/v1/admin/tracker/templates/%s/activate", seededTemplateID)
		req = createRequest(t, http.MethodPost, restorePath, nil, &adminID, model.RoleAdmin)
		rr = executeRequest(req)
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("アクティブなテンプレートの削除は409", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/admin/tracker/templates/%s", seededTemplateID)
		req := createRequest(t, http.MethodDelete, path, nil, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "TEMPLATE_ACTIVE", decodeErrorBody(t, rr))
	})

	t.Run("非アクティブなテンプレートは日ごと削除できる", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/admin/tracker/templates/%s", templateID)
		req := createRequest(t, http.MethodDelete, path, nil, &adminID, model.RoleAdmin)
		rr := executeRequest(req)

		require.Equal(t, http.StatusNoContent, rr.Code)

		req = createRequest(t, http.MethodGet, path, nil, &adminID, model.RoleAdmin)
		rr = executeRequest(req)
		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "TEMPLATE_NOT_FOUND", decodeErrorBody(t, rr))
	})
}
