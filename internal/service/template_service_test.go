// internal/service/template_service_test.go
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

func newTestTemplateService(templateRepo *mocks.TemplateRepository, habitRepo *mocks.HabitRepository) TemplateService {
	return NewTemplateService(setupTestDBTracker(), templateRepo, habitRepo)
}

// --- Test CreateTemplate ---
func Test_templateService_CreateTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 作成直後のテンプレートは非アクティブ", func(t *testing.T) {
		templateRepo := new(mocks.TemplateRepository)
		habitRepo := new(mocks.HabitRepository)

		templateRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgramTemplate")).
			Run(func(args mock.Arguments) {
				template := args.Get(2).(*model.ProgramTemplate)
				assert.Equal(t, "30 Days Beauty v2", template.Name)
				assert.Equal(t, 1, template.Version)
				assert.False(t, template.IsActive)
			}).Return(nil).Once()

		svc := newTestTemplateService(templateRepo, habitRepo)
		template, err := svc.CreateTemplate(ctx, &model.CreateTemplateRequest{Name: "30 Days Beauty v2"})

		require.NoError(t, err)
		require.NotNil(t, template)
		assert.False(t, template.IsActive)
		assert.Equal(t, 1, template.Version)

		templateRepo.AssertExpectations(t)
	})
}

// --- Test ActivateTemplate ---
func Test_templateService_ActivateTemplate(t *testing.T) {
	ctx := context.Background()
	templateID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(templateRepo *mocks.TemplateRepository)
		wantErr   error
	}{
		{
			name: "正常系: テンプレートが排他的にアクティブになる",
			setupMock: func(templateRepo *mocks.TemplateRepository) {
				templateRepo.On("ActivateExclusive", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
					Return(nil).Once()
				templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
					Return(&model.ProgramTemplate{TemplateID: templateID, Name: "30 Days Beauty", IsActive: true}, nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: テンプレートが存在しない",
			setupMock: func(templateRepo *mocks.TemplateRepository) {
				templateRepo.On("ActivateExclusive", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
					Return(model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			templateRepo := new(mocks.TemplateRepository)
			habitRepo := new(mocks.HabitRepository)
			if tt.setupMock != nil {
				tt.setupMock(templateRepo)
			}
			svc := newTestTemplateService(templateRepo, habitRepo)

			template, err := svc.ActivateTemplate(ctx, templateID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, template)
			} else {
				require.NoError(t, err)
				require.NotNil(t, template)
				assert.True(t, template.IsActive)
			}

			templateRepo.AssertExpectations(t)
		})
	}
}

// --- Test DeleteTemplate ---
func Test_templateService_DeleteTemplate(t *testing.T) {
	ctx := context.Background()
	templateID := uuid.New()

	t.Run("正常系: 日とその関連を先に消してからテンプレートを削除する", func(t *testing.T) {
		templateRepo := new(mocks.TemplateRepository)
		habitRepo := new(mocks.HabitRepository)

		dayID := uuid.New()
		templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
			Return(&model.ProgramTemplate{TemplateID: templateID, Name: "Old template", IsActive: false}, nil).Once()
		templateRepo.On("FindDays", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
			Return([]*model.ProgramDay{{DayID: dayID, TemplateID: templateID, DayNumber: 1}}, nil).Once()
		templateRepo.On("DeleteDay", ctx, mock.AnythingOfType("*gorm.DB"), dayID).
			Return(nil).Once()
		templateRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
			Return(nil).Once()

		svc := newTestTemplateService(templateRepo, habitRepo)
		err := svc.DeleteTemplate(ctx, templateID)

		require.NoError(t, err)
		templateRepo.AssertExpectations(t)
	})

	t.Run("異常系: アクティブなテンプレートは削除できない", func(t *testing.T) {
		templateRepo := new(mocks.TemplateRepository)
		habitRepo := new(mocks.HabitRepository)

		templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
			Return(&model.ProgramTemplate{TemplateID: templateID, Name: "30 Days Beauty", IsActive: true}, nil).Once()

		svc := newTestTemplateService(templateRepo, habitRepo)
		err := svc.DeleteTemplate(ctx, templateID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		templateRepo.AssertExpectations(t)
	})
}

// --- Test CreateDay ---
func Test_templateService_CreateDay(t *testing.T) {
	ctx := context.Background()
	templateID := uuid.New()
	habitID := uuid.New()

	template := &model.ProgramTemplate{TemplateID: templateID, Name: "30 Days Beauty"}

	tests := []struct {
		name      string
		req       *model.CreateProgramDayRequest
		setupMock func(templateRepo *mocks.TemplateRepository, habitRepo *mocks.HabitRepository)
		wantErr   error
	}{
		{
			name: "正常系: 日と習慣の関連が作成される",
			req:  &model.CreateProgramDayRequest{DayNumber: 5, FocusText: "Hydration day", HabitIDs: []uuid.UUID{habitID}},
			setupMock: func(templateRepo *mocks.TemplateRepository, habitRepo *mocks.HabitRepository) {
				templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
					Return(template, nil).Once()
				templateRepo.On("FindDay", ctx, mock.AnythingOfType("*gorm.DB"), templateID, 5).
					Return(nil, model.ErrNotFound).Once()
				habitRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), habitID).
					Return(&model.Habit{HabitID: habitID, Category: model.CategoryFace, Title: "Cleanse face", IsActive: true}, nil).Once()
				templateRepo.On("CreateDay", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgramDay")).
					Run(func(args mock.Arguments) {
						day := args.Get(2).(*model.ProgramDay)
						assert.Equal(t, templateID, day.TemplateID)
						assert.Equal(t, 5, day.DayNumber)
						assert.Equal(t, "Hydration day", day.FocusText)
					}).Return(nil).Once()
				templateRepo.On("ReplaceDayHabits", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID"), []uuid.UUID{habitID}).
					Return(nil).Once()
				templateRepo.On("FindDayHabits", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID")).
					Return([]*model.ProgramDayHabit{{HabitID: habitID, Habit: &model.Habit{HabitID: habitID, Category: model.CategoryFace, Title: "Cleanse face", IsActive: true}}}, nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: 日番号が重複している",
			req:  &model.CreateProgramDayRequest{DayNumber: 5, HabitIDs: []uuid.UUID{habitID}},
			setupMock: func(templateRepo *mocks.TemplateRepository, habitRepo *mocks.HabitRepository) {
				templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
					Return(template, nil).Once()
				templateRepo.On("FindDay", ctx, mock.AnythingOfType("*gorm.DB"), templateID, 5).
					Return(&model.ProgramDay{DayID: uuid.New(), TemplateID: templateID, DayNumber: 5}, nil).Once()
			},
			wantErr: model.ErrConflict,
		},
		{
			name: "異常系: 存在しない習慣が指定されている",
			req:  &model.CreateProgramDayRequest{DayNumber: 5, HabitIDs: []uuid.UUID{habitID}},
			setupMock: func(templateRepo *mocks.TemplateRepository, habitRepo *mocks.HabitRepository) {
				templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
					Return(template, nil).Once()
				templateRepo.On("FindDay", ctx, mock.AnythingOfType("*gorm.DB"), templateID, 5).
					Return(nil, model.ErrNotFound).Once()
				habitRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), habitID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: テンプレートが存在しない",
			req:  &model.CreateProgramDayRequest{DayNumber: 5, HabitIDs: []uuid.UUID{habitID}},
			setupMock: func(templateRepo *mocks.TemplateRepository, habitRepo *mocks.HabitRepository) {
				templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			templateRepo := new(mocks.TemplateRepository)
			habitRepo := new(mocks.HabitRepository)
			if tt.setupMock != nil {
				tt.setupMock(templateRepo, habitRepo)
			}
			svc := newTestTemplateService(templateRepo, habitRepo)

			resp, err := svc.CreateDay(ctx, templateID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, 5, resp.DayNumber)
				require.Len(t, resp.Habits, 1)
				assert.Equal(t, habitID, resp.Habits[0].HabitID)
			}

			templateRepo.AssertExpectations(t)
			habitRepo.AssertExpectations(t)
		})
	}
}

// --- Test ListPublicPrograms ---
func Test_templateService_ListPublicPrograms(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: アクティブなテンプレートのみが日数つきで返る", func(t *testing.T) {
		templateRepo := new(mocks.TemplateRepository)
		habitRepo := new(mocks.HabitRepository)

		activeID := uuid.New()
		templateRepo.On("FindAll", ctx, mock.AnythingOfType("*gorm.DB")).
			Return([]*model.ProgramTemplate{
				{TemplateID: activeID, Name: "30 Days Beauty", IsActive: true, Version: 2},
				{TemplateID: uuid.New(), Name: "Draft template", IsActive: false},
			}, nil).Once()
		templateRepo.On("CountDays", ctx, mock.AnythingOfType("*gorm.DB"), activeID).
			Return(int64(30), nil).Once()

		svc := newTestTemplateService(templateRepo, habitRepo)
		programs, err := svc.ListPublicPrograms(ctx)

		require.NoError(t, err)
		require.Len(t, programs, 1)
		assert.Equal(t, activeID, programs[0].TemplateID)
		assert.Equal(t, 30, programs[0].DaysCount)
		assert.Equal(t, 2, programs[0].Version)

		templateRepo.AssertExpectations(t)
	})
}

// --- Test GetDemoDay ---
func Test_templateService_GetDemoDay(t *testing.T) {
	ctx := context.Background()
	templateID := uuid.New()

	t.Run("正常系: 1日目が非アクティブ習慣を除いて返る", func(t *testing.T) {
		templateRepo := new(mocks.TemplateRepository)
		habitRepo := new(mocks.HabitRepository)

		dayID := uuid.New()
		activeHabit := &model.Habit{HabitID: uuid.New(), Category: model.CategoryFace, Title: "Cleanse face", IsActive: true}
		inactiveHabit := &model.Habit{HabitID: uuid.New(), Category: model.CategoryBody, Title: "Retired habit", IsActive: false}

		templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
			Return(&model.ProgramTemplate{TemplateID: templateID, Name: "30 Days Beauty", IsActive: true}, nil).Once()
		templateRepo.On("FindDay", ctx, mock.AnythingOfType("*gorm.DB"), templateID, 1).
			Return(&model.ProgramDay{DayID: dayID, TemplateID: templateID, DayNumber: 1, FocusText: "Day 1 focus"}, nil).Once()
		templateRepo.On("FindDayHabits", ctx, mock.AnythingOfType("*gorm.DB"), dayID).
			Return([]*model.ProgramDayHabit{
				{HabitID: activeHabit.HabitID, Habit: activeHabit},
				{HabitID: inactiveHabit.HabitID, Habit: inactiveHabit},
			}, nil).Once()

		svc := newTestTemplateService(templateRepo, habitRepo)
		demo, err := svc.GetDemoDay(ctx, templateID)

		require.NoError(t, err)
		assert.True(t, demo.IsDemo)
		assert.Equal(t, "30 Days Beauty", demo.ProgramName)
		assert.Equal(t, 1, demo.DayNumber)
		require.Len(t, demo.Habits, 1)
		assert.Equal(t, activeHabit.HabitID, demo.Habits[0].HabitID)

		templateRepo.AssertExpectations(t)
	})

	t.Run("異常系: テンプレートに日が定義されていない", func(t *testing.T) {
		templateRepo := new(mocks.TemplateRepository)
		habitRepo := new(mocks.HabitRepository)

		templateRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), templateID).
			Return(&model.ProgramTemplate{TemplateID: templateID, Name: "Empty template"}, nil).Once()
		templateRepo.On("FindDay", ctx, mock.AnythingOfType("*gorm.DB"), templateID, 1).
			Return(nil, model.ErrNotFound).Once()

		svc := newTestTemplateService(templateRepo, habitRepo)
		demo, err := svc.GetDemoDay(ctx, templateID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, demo)

		templateRepo.AssertExpectations(t)
	})
}
