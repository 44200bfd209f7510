// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "BeautyTrackerAPI"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultProgramDays    = 30
	DefaultAllowedSkips   = 3
	DefaultJWTExpiryHours = 24
	DefaultAuthEnabled    = true
)
