// internal/service/habit_service_test.go
package service

import (
	"context"
	"testing"

	"go_beauty_tracker/internal/model"
	"go_beauty_tracker/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_habitService_CreateHabit(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 作成された習慣はアクティブ", func(t *testing.T) {
		habitRepo := new(mocks.HabitRepository)
		habitRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Habit")).
			Run(func(args mock.Arguments) {
				habit := args.Get(2).(*model.Habit)
				assert.Equal(t, model.CategoryLifestyle, habit.Category)
				assert.True(t, habit.IsActive)
			}).Return(nil).Once()

		svc := NewHabitService(setupTestDBTracker(), habitRepo)
		habit, err := svc.CreateHabit(ctx, &model.CreateHabitRequest{
			Category: model.CategoryLifestyle,
			Title:    "Drink 2L of water",
			TitleRu:  "Выпить 2л воды",
		})

		require.NoError(t, err)
		assert.True(t, habit.IsActive)
		assert.Equal(t, "Drink 2L of water", habit.Title)
		habitRepo.AssertExpectations(t)
	})
}

func Test_habitService_ListHabits(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: カテゴリで絞り込める", func(t *testing.T) {
		habitRepo := new(mocks.HabitRepository)
		category := model.CategoryFace
		habitRepo.On("FindAll", ctx, mock.AnythingOfType("*gorm.DB"), &category).
			Return([]*model.Habit{{HabitID: uuid.New(), Category: model.CategoryFace, Title: "Cleanse face"}}, nil).Once()

		svc := NewHabitService(setupTestDBTracker(), habitRepo)
		habits, err := svc.ListHabits(ctx, &category)

		require.NoError(t, err)
		require.Len(t, habits, 1)
		assert.Equal(t, model.CategoryFace, habits[0].Category)
		habitRepo.AssertExpectations(t)
	})

	t.Run("異常系: 未知のカテゴリ", func(t *testing.T) {
		habitRepo := new(mocks.HabitRepository)
		category := model.HabitCategory("unknown")

		svc := NewHabitService(setupTestDBTracker(), habitRepo)
		habits, err := svc.ListHabits(ctx, &category)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, habits)
		habitRepo.AssertExpectations(t)
	})
}

func Test_habitService_DeleteHabit(t *testing.T) {
	ctx := context.Background()
	habitID := uuid.New()

	t.Run("正常系: 削除は非アクティブ化として実行される", func(t *testing.T) {
		habitRepo := new(mocks.HabitRepository)
		habitRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), habitID, map[string]interface{}{"is_active": false}).
			Return(nil).Once()

		svc := NewHabitService(setupTestDBTracker(), habitRepo)
		err := svc.DeleteHabit(ctx, habitID)

		require.NoError(t, err)
		habitRepo.AssertExpectations(t)
	})

	t.Run("異常系: 習慣が存在しない", func(t *testing.T) {
		habitRepo := new(mocks.HabitRepository)
		habitRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), habitID, map[string]interface{}{"is_active": false}).
			Return(model.ErrNotFound).Once()

		svc := NewHabitService(setupTestDBTracker(), habitRepo)
		err := svc.DeleteHabit(ctx, habitID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		habitRepo.AssertExpectations(t)
	})
}
