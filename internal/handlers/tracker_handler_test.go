// internal/handlers/tracker_handler_test.go
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

// TestTrackerFlow はシード済みのインメモリDBに対して
// 開始→チェック→完了→スキップ→進捗→放棄の一連の流れを検証します。
func TestTrackerFlow(t *testing.T) {
	userID := uuid.New()

	var firstDayHabitID uuid.UUID

	t.Run("プログラム未開始の進捗取得は404", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/progress", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "NO_ACTIVE_PROGRAM", decodeErrorBody(t, rr))
	})

	t.Run("プログラム未開始の現在プログラム取得は404", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/programs/current", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "NO_ACTIVE_PROGRAM", decodeErrorBody(t, rr))
	})

	t.Run("プログラム開始で1日目がopenになる", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, "/api/v1/tracker/programs/start", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

		var resp model.StartProgramResponse
		decodeBody(t, rr, &resp)
		require.NotNil(t, resp.Program)
		assert.Equal(t, model.ProgramActive, resp.Program.Status)
		assert.Equal(t, 1, resp.Program.CurrentDayNumber)
		assert.Equal(t, 3, resp.Program.AllowedSkips)

		require.NotNil(t, resp.Day)
		assert.Equal(t, 1, resp.Day.DayNumber)
		assert.Equal(t, model.DayOpen, resp.Day.Status)
		require.NotEmpty(t, resp.Day.Habits)
		firstDayHabitID = resp.Day.Habits[0].HabitID
	})

	t.Run("進行中プログラムの取得", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/programs/current", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code)

		var program model.UserProgram
		decodeBody(t, rr, &program)
		assert.Equal(t, model.ProgramActive, program.Status)
		assert.Equal(t, 1, program.CurrentDayNumber)
	})

	t.Run("二重開始は409", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, "/api/v1/tracker/programs/start", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "PROGRAM_ALREADY_ACTIVE", decodeErrorBody(t, rr))
	})

	t.Run("現在の日の取得", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/days/current", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code)

		var day model.DayResponse
		decodeBody(t, rr, &day)
		assert.Equal(t, 1, day.DayNumber)
		assert.Equal(t, model.DayOpen, day.Status)
	})

	t.Run("全日の進行状態一覧", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/days", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code)

		var days []model.UserDay
		decodeBody(t, rr, &days)
		require.Len(t, days, 30)
		assert.Equal(t, 1, days[0].DayNumber)
		assert.Equal(t, model.DayOpen, days[0].Status)
		assert.Equal(t, model.DayLocked, days[29].Status)
	})

	t.Run("未到達の日は参照できない", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/days/10", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "DAY_NOT_OPEN", decodeErrorBody(t, rr))
	})

	t.Run("習慣チェックのトグル", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/tracker/days/1/habits/%s/toggle", firstDayHabitID)

		req := createRequest(t, http.MethodPost, path, nil, &userID, model.RoleClient)
		rr := executeRequest(req)
		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var resp model.ToggleHabitResponse
		decodeBody(t, rr, &resp)
		assert.True(t, resp.Completed)

		// 再度トグルすると外れる
		req = createRequest(t, http.MethodPost, path, nil, &userID, model.RoleClient)
		rr = executeRequest(req)
		require.Equal(t, http.StatusOK, rr.Code)
		decodeBody(t, rr, &resp)
		assert.False(t, resp.Completed)
	})

	t.Run("その日のプランにない習慣のトグルは404", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/tracker/days/1/habits/%s/toggle", uuid.New())
		req := createRequest(t, http.MethodPost, path, nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "HABIT_NOT_IN_DAY", decodeErrorBody(t, rr))
	})

	t.Run("現在の日以外の完了は409", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, "/api/v1/tracker/days/2/complete", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "DAY_NOT_OPEN", decodeErrorBody(t, rr))
	})

	t.Run("1日目の完了で2日目が開く", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, "/api/v1/tracker/days/1/complete", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var resp model.TransitionResponse
		decodeBody(t, rr, &resp)
		assert.Equal(t, 2, resp.Program.CurrentDayNumber)
		assert.Equal(t, 1, resp.Program.CompletedDays)
		assert.Equal(t, 1, resp.Program.CurrentStreak)
		require.NotNil(t, resp.NextDay)
		assert.Equal(t, 2, resp.NextDay.DayNumber)
		assert.Equal(t, model.DayOpen, resp.NextDay.Status)
	})

	t.Run("スキップでストリークがゼロに戻る", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, "/api/v1/tracker/days/2/skip", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var resp model.TransitionResponse
		decodeBody(t, rr, &resp)
		assert.Equal(t, 3, resp.Program.CurrentDayNumber)
		assert.Equal(t, 1, resp.Program.UsedSkips)
		assert.Equal(t, 1, resp.Program.SkippedDays)
		assert.Equal(t, 0, resp.Program.CurrentStreak)
	})

	t.Run("スキップ予算を使い切ると409", func(t *testing.T) {
		// 残り2回のスキップを消費する
		for _, dayNumber := range []int{3, 4} {
			path := fmt.Sprintf("/api/v1/tracker/days/%d/skip", dayNumber)
			req := createRequest(t, http.MethodPost, path, nil, &userID, model.RoleClient)
			rr := executeRequest(req)
			require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
		}

		req := createRequest(t, http.MethodPost, "/api/v1/tracker/days/5/skip", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "SKIP_BUDGET_EXHAUSTED", decodeErrorBody(t, rr))
	})

	t.Run("予算切れ後も完了は可能", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, "/api/v1/tracker/days/5/complete", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var resp model.TransitionResponse
		decodeBody(t, rr, &resp)
		assert.Equal(t, 6, resp.Program.CurrentDayNumber)
		assert.Equal(t, 2, resp.Program.CompletedDays)
		assert.Equal(t, 1, resp.Program.CurrentStreak)
	})

	t.Run("進捗の集計", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/progress", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp model.ProgressResponse
		decodeBody(t, rr, &resp)
		assert.Equal(t, 30, resp.TotalDays)
		assert.Equal(t, 2, resp.CompletedDays)
		assert.Equal(t, 3, resp.SkippedDays)
		assert.Equal(t, 1, resp.CurrentStreak)
		assert.InDelta(t, 6.67, resp.CompletionPercentage, 0.001)
		require.NotNil(t, resp.CurrentDay)
		assert.Equal(t, 6, *resp.CurrentDay)
		assert.Equal(t, 3, resp.UsedSkips)
	})

	t.Run("放棄後は新しいプログラムを開始できる", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, "/api/v1/tracker/programs/abandon", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var program model.UserProgram
		decodeBody(t, rr, &program)
		assert.Equal(t, model.ProgramAbandoned, program.Status)

		req = createRequest(t, http.MethodPost, "/api/v1/tracker/programs/start", nil, &userID, model.RoleClient)
		rr = executeRequest(req)
		require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())
	})
}

func TestTrackerValidation(t *testing.T) {
	userID := uuid.New()

	t.Run("X-User-IDなしは403", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/progress", nil, nil, "")
		rr := executeRequest(req)

		require.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeErrorBody(t, rr))
	})

	t.Run("日番号が数値でない場合は400", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/days/abc", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("範囲外の日番号は400", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/tracker/days/31", nil, &userID, model.RoleClient)
		rr := executeRequest(req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "INVALID_DAY_NUMBER", decodeErrorBody(t, rr))
	})
}

func TestPublicEndpoints(t *testing.T) {
	t.Run("紹介テキストの取得", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/public/info", nil, nil, "")
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code)

		var info model.PublicInfoResponse
		decodeBody(t, rr, &info)
		assert.NotEmpty(t, info.Title)
		assert.NotEmpty(t, info.Benefits)
	})

	t.Run("アクティブなプログラムの一覧", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, "/api/v1/public/programs", nil, nil, "")
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code)

		var programs []*model.PublicProgramResponse
		decodeBody(t, rr, &programs)
		require.NotEmpty(t, programs)
		assert.Equal(t, 30, programs[0].DaysCount)
		assert.True(t, programs[0].IsActive)
	})

	t.Run("デモ日の取得", func(t *testing.T) {
		templateID := activeTemplateID(t)
		path := fmt.Sprintf("/api/v1/public/programs/%s/demo-day", templateID)
		req := createRequest(t, http.MethodGet, path, nil, nil, "")
		rr := executeRequest(req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())

		var demo model.DemoDayResponse
		decodeBody(t, rr, &demo)
		assert.True(t, demo.IsDemo)
		assert.Equal(t, 1, demo.DayNumber)
		assert.NotEmpty(t, demo.Habits)
	})

	t.Run("存在しないテンプレートのデモ日は404", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/public/programs/%s/demo-day", uuid.New())
		req := createRequest(t, http.MethodGet, path, nil, nil, "")
		rr := executeRequest(req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "TEMPLATE_NOT_FOUND", decodeErrorBody(t, rr))
	})
}
