// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict")

	// トラッカーの事前条件違反 (決定的なクライアントエラー。リトライ不可)
	ErrNoActiveTemplate     = errors.New("no active program template")
	ErrProgramAlreadyActive = errors.New("program already active")
	ErrNoActiveProgram      = errors.New("no active program")
	ErrDayNotOpen           = errors.New("day is not open")
	ErrSkipBudgetExhausted  = errors.New("skip budget exhausted")

	// 同時更新の競合。唯一リトライ可能なエラー (再取得して1回だけ再試行)
	ErrVersionConflict = errors.New("concurrent modification conflict")
)

// ErrorDetail はクライアントに返すエラーの詳細です
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコード・ユーザー向けメッセージと根本原因をまとめたカスタムエラーです。
// Unwrapで根本原因 (上のsentinelエラー) を返すため、errors.Is での判定が可能です。
type AppError struct {
	Detail ErrorDetail
	err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		err: err,
	}
}

func (e *AppError) Error() string {
	if e.err != nil {
		return e.Detail.Code + ": " + e.Detail.Message + " (" + e.err.Error() + ")"
	}
	return e.Detail.Code + ": " + e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}
