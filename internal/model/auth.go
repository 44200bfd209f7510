// internal/model/auth.go
package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest は新規登録APIのリクエストボディ (DTO)
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     Role   `json:"role" validate:"omitempty,oneof=client professional"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

// JWTCustomClaims はJWTに含めるカスタムクレーム。
// subには UserID、roleにはユーザーのロールを入れる。
type JWTCustomClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}
