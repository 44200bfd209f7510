// Package seed はデモ・開発環境用の初期データを投入します。
// 基本の習慣カタログと30日プログラムのテンプレートを作成します。
package seed

import (
	"fmt"
	"log/slog"

	"go_beauty_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run は習慣カタログと30日テンプレートを投入します。
// テンプレートが既に存在する場合は何もしません (冪等)。
func Run(db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.Model(&model.ProgramTemplate{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed.Run: %w", err)
	}
	if count > 0 {
		logger.Info("Tracker data already exists, skipping seed")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		template := &model.ProgramTemplate{
			TemplateID: uuid.New(),
			Name:       "30 Days Beauty",
			Version:    1,
			IsActive:   true,
		}
		if err := tx.Create(template).Error; err != nil {
			return fmt.Errorf("seed.Run: create template: %w", err)
		}
		logger.Info("Seeded program template", "name", template.Name)

		habits := baseHabits()
		for _, habit := range habits {
			if err := tx.Create(habit).Error; err != nil {
				return fmt.Errorf("seed.Run: create habit: %w", err)
			}
		}
		logger.Info("Seeded habits", "count", len(habits))

		for dayNum := 1; dayNum <= 30; dayNum++ {
			day := &model.ProgramDay{
				DayID:       uuid.New(),
				TemplateID:  template.TemplateID,
				DayNumber:   dayNum,
				FocusText:   fmt.Sprintf("Day %d focus", dayNum),
				FocusTextRu: fmt.Sprintf("Фокус дня %d", dayNum),
				FocusTextKy: fmt.Sprintf("%d күн фокусу", dayNum),
			}
			if err := tx.Create(day).Error; err != nil {
				return fmt.Errorf("seed.Run: create day %d: %w", dayNum, err)
			}

			for idx, habitID := range dayHabitIDs(habits, dayNum) {
				dayHabit := &model.ProgramDayHabit{
					ProgramDayID: day.DayID,
					HabitID:      habitID,
					SortOrder:    idx,
				}
				if err := tx.Create(dayHabit).Error; err != nil {
					return fmt.Errorf("seed.Run: link habit to day %d: %w", dayNum, err)
				}
			}
		}
		logger.Info("Seeded program days", "count", 30)

		return nil
	})
}

func baseHabits() []*model.Habit {
	type h struct {
		category model.HabitCategory
		title    string
		titleRu  string
		titleKy  string
	}
	data := []h{
		{model.CategoryFace, "Cleanse face", "Очистить лицо", "Бетти тазалоо"},
		{model.CategoryFace, "Apply moisturizer", "Нанести увлажняющий крем", "Нымдатуучу крем сүртүү"},
		{model.CategoryFace, "Apply sunscreen", "Нанести солнцезащитный крем", "Күн коргоочу крем сүртүү"},
		{model.CategoryFace, "Face mask", "Маска для лица", "Бет маскасы"},
		{model.CategoryFace, "Eye cream", "Крем для глаз", "Көз крем"},

		{model.CategoryBody, "Body moisturizer", "Увлажняющий крем для тела", "Денеге нымдатуучу крем"},
		{model.CategoryBody, "Exfoliate", "Скрабирование", "Скраб кылуу"},
		{model.CategoryBody, "Body oil", "Масло для тела", "Дене майы"},
		{model.CategoryBody, "Dry brushing", "Сухая чистка", "Кургак тазалоо"},

		{model.CategoryLifestyle, "Drink 8 glasses of water", "Выпить 8 стаканов воды", "8 стакан суу ичүү"},
		{model.CategoryLifestyle, "30 min walk", "30 минут прогулки", "30 мүнөт сейилдөө"},
		{model.CategoryLifestyle, "Healthy meal", "Здоровый прием пищи", "Ден соолуктуу тамак"},
		{model.CategoryLifestyle, "8 hours sleep", "8 часов сна", "8 саат уйку"},
		{model.CategoryLifestyle, "Meditation", "Медитация", "Медитация"},
	}

	habits := make([]*model.Habit, 0, len(data))
	for _, d := range data {
		habits = append(habits, &model.Habit{
			HabitID:  uuid.New(),
			Category: d.category,
			Title:    d.title,
			TitleRu:  d.titleRu,
			TitleKy:  d.titleKy,
			IsActive: true,
		})
	}
	return habits
}

// dayHabitIDs は日番号に応じた習慣の組み合わせを返します。
// 毎日の基本セットに加えて、3日ごとにマスク、5日ごとにスクラブ、7日ごとに散歩が入ります。
func dayHabitIDs(habits []*model.Habit, dayNum int) []uuid.UUID {
	ids := []uuid.UUID{
		habits[0].HabitID, // Cleanse face
		habits[1].HabitID, // Apply moisturizer
		habits[9].HabitID, // Drink 8 glasses of water
	}
	if dayNum%3 == 0 {
		ids = append(ids, habits[3].HabitID) // Face mask
	}
	if dayNum%5 == 0 {
		ids = append(ids, habits[6].HabitID) // Exfoliate
	}
	if dayNum%7 == 0 {
		ids = append(ids, habits[10].HabitID) // 30 min walk
	}
	return ids
}
