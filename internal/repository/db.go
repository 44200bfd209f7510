// internal/repository/db.go
package repository

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"go_beauty_tracker/internal/model"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB はPostgresへのGORM接続を初期化します
func NewDB(databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {

	// === slog を利用する GORM Logger の設定 ===
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond), // 遅いクエリの閾値
	)
	finalGormLogger := slogGormLogger.LogMode(gormLogLevel)

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: finalGormLogger,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	// Pingで接続確認
	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	// コネクションプールの設定
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established with GORM")

	return db, nil
}

// NewDemoDB はデモモード用のインメモリSQLite接続を初期化します。
// Postgresの代わりに同じリポジトリ群をそのまま動かすためのもので、
// スキーマはAutoMigrateで作成します (シードはseedパッケージが行う)。
func NewDemoDB(appLogger *slog.Logger) (*gorm.DB, error) {
	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: slogGormLogger.LogMode(gormlogger.Warn),
	})
	if err != nil {
		appLogger.Error("Failed to open in-memory SQLite for demo mode", slog.Any("error", err))
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		appLogger.Error("Failed to migrate demo database", slog.Any("error", err))
		return nil, err
	}

	appLogger.Info("Demo database (in-memory SQLite) ready")
	return db, nil
}

// AutoMigrate は全モデルのスキーマを作成します (デモモードとテストで使用)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserVerificationToken{},
		&model.Habit{},
		&model.ProgramTemplate{},
		&model.ProgramDay{},
		&model.ProgramDayHabit{},
		&model.UserProgram{},
		&model.UserDay{},
		&model.HabitCheck{},
	)
}
