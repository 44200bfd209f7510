// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"go_beauty_tracker/internal/config"
	"go_beauty_tracker/internal/model"
	"go_beauty_tracker/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// stubMailer は送信内容を記録するだけのテスト用 Mailer です
type stubMailer struct {
	lastTo      string
	lastSubject string
	sendErr     error
}

func (m *stubMailer) Send(_ context.Context, to, subject, _ string) error {
	m.lastTo = to
	m.lastSubject = subject
	return m.sendErr
}

func setupTestDBAuth(t *testing.T) *gorm.DB {
	t.Helper()
	db := setupTestDBTracker()
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return db
}

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key"
	cfg.JWT.ExpiryHours = 72
	cfg.App.PublicURL = "http://localhost:3000"
	return cfg
}

// --- Test Register ---
func Test_authService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       *model.RegisterRequest
		sendErr   error
		setupMock func(userRepo *mocks.UserRepository, tokenRepo *mocks.TokenRepository)
		wantErr   error
	}{
		{
			name: "正常系: ロール未指定はclientとして無効状態で登録される",
			req:  &model.RegisterRequest{Name: "Aiturgan", Email: "aiturgan@example.com", Password: "password123"},
			setupMock: func(userRepo *mocks.UserRepository, tokenRepo *mocks.TokenRepository) {
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "aiturgan@example.com").
					Return(nil, model.ErrNotFound).Once()
				userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						user := args.Get(2).(*model.User)
						assert.Equal(t, model.RoleClient, user.Role)
						assert.False(t, user.IsActive)
						assert.NotEqual(t, "password123", user.PasswordHash)
					}).Return(nil).Once()
				tokenRepo.On("CreateVerificationToken", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.UserVerificationToken")).
					Run(func(args mock.Arguments) {
						token := args.Get(2).(*model.UserVerificationToken)
						assert.Len(t, token.Token, 64)
						assert.True(t, token.ExpiresAt.After(time.Now()))
					}).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "正常系: professionalロールで登録できる",
			req:  &model.RegisterRequest{Name: "Master", Email: "master@example.com", Password: "password123", Role: model.RoleProfessional},
			setupMock: func(userRepo *mocks.UserRepository, tokenRepo *mocks.TokenRepository) {
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "master@example.com").
					Return(nil, model.ErrNotFound).Once()
				userRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						user := args.Get(2).(*model.User)
						assert.Equal(t, model.RoleProfessional, user.Role)
					}).Return(nil).Once()
				tokenRepo.On("CreateVerificationToken", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.UserVerificationToken")).
					Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: Emailが重複している",
			req:  &model.RegisterRequest{Name: "Dup", Email: "dup@example.com", Password: "password123"},
			setupMock: func(userRepo *mocks.UserRepository, tokenRepo *mocks.TokenRepository) {
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "dup@example.com").
					Return(&model.User{UserID: uuid.New(), Email: "dup@example.com"}, nil).Once()
			},
			wantErr: model.ErrConflict,
		},
		{
			name: "異常系: adminロールはAPI経由で登録できない",
			req:  &model.RegisterRequest{Name: "Evil", Email: "evil@example.com", Password: "password123", Role: model.RoleAdmin},
			setupMock: func(userRepo *mocks.UserRepository, tokenRepo *mocks.TokenRepository) {
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "evil@example.com").
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mocks.UserRepository)
			tokenRepo := new(mocks.TokenRepository)
			mailer := &stubMailer{sendErr: tt.sendErr}
			if tt.setupMock != nil {
				tt.setupMock(userRepo, tokenRepo)
			}
			svc := NewAuthService(setupTestDBAuth(t), userRepo, tokenRepo, mailer, testAuthConfig())

			user, err := svc.Register(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.req.Email, user.Email)
				assert.Equal(t, tt.req.Email, mailer.lastTo)
				assert.NotEmpty(t, mailer.lastSubject)
			}

			userRepo.AssertExpectations(t)
			tokenRepo.AssertExpectations(t)
		})
	}
}

// --- Test Login ---
func Test_authService_Login(t *testing.T) {
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	activeUser := &model.User{
		UserID:       userID,
		Name:         "Aiturgan",
		Email:        "aiturgan@example.com",
		PasswordHash: string(hashed),
		Role:         model.RoleClient,
		IsActive:     true,
	}

	tests := []struct {
		name      string
		req       *model.LoginRequest
		setupMock func(userRepo *mocks.UserRepository)
		wantErr   error
	}{
		{
			name: "正常系: ロールをクレームに含むJWTが発行される",
			req:  &model.LoginRequest{Email: "aiturgan@example.com", Password: "password123"},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "aiturgan@example.com").
					Return(activeUser, nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: ユーザーが存在しない",
			req:  &model.LoginRequest{Email: "nobody@example.com", Password: "password123"},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "nobody@example.com").
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: パスワードが一致しない",
			req:  &model.LoginRequest{Email: "aiturgan@example.com", Password: "wrong-password"},
			setupMock: func(userRepo *mocks.UserRepository) {
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "aiturgan@example.com").
					Return(activeUser, nil).Once()
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: アカウントが未有効化",
			req:  &model.LoginRequest{Email: "inactive@example.com", Password: "password123"},
			setupMock: func(userRepo *mocks.UserRepository) {
				inactive := *activeUser
				inactive.Email = "inactive@example.com"
				inactive.IsActive = false
				userRepo.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), "inactive@example.com").
					Return(&inactive, nil).Once()
			},
			wantErr: model.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mocks.UserRepository)
			tokenRepo := new(mocks.TokenRepository)
			cfg := testAuthConfig()
			if tt.setupMock != nil {
				tt.setupMock(userRepo)
			}
			svc := NewAuthService(setupTestDBAuth(t), userRepo, tokenRepo, &stubMailer{}, cfg)

			resp, err := svc.Login(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				require.NotEmpty(t, resp.AccessToken)
				require.NotNil(t, resp.User)
				assert.Equal(t, userID, resp.User.UserID)

				// 発行されたトークンを検証する
				claims := &model.JWTCustomClaims{}
				parsed, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(_ *jwt.Token) (interface{}, error) {
					return []byte(cfg.JWT.SecretKey), nil
				})
				require.NoError(t, err)
				assert.True(t, parsed.Valid)
				assert.Equal(t, userID.String(), claims.Subject)
				assert.Equal(t, model.RoleClient, claims.Role)
				assert.Equal(t, config.AppName, claims.Issuer)
			}

			userRepo.AssertExpectations(t)
		})
	}
}

// --- Test VerifyAccount ---
func Test_authService_VerifyAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: トークン検証でアカウントが有効化され、トークンは削除される", func(t *testing.T) {
		db := setupTestDBAuth(t)
		userRepo := new(mocks.UserRepository)
		tokenRepo := new(mocks.TokenRepository)

		user := &model.User{
			UserID:       uuid.New(),
			Name:         "Aiturgan",
			Email:        uuid.New().String() + "@example.com",
			PasswordHash: "hashed",
			Role:         model.RoleClient,
			IsActive:     false,
		}
		require.NoError(t, db.Create(user).Error)

		tokenString := "valid-token"
		tokenRepo.On("FindVerificationToken", ctx, mock.AnythingOfType("*gorm.DB"), tokenString).
			Return(&model.UserVerificationToken{
				Token:     tokenString,
				UserID:    user.UserID,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil).Once()
		tokenRepo.On("DeleteVerificationToken", ctx, mock.AnythingOfType("*gorm.DB"), tokenString).
			Return(nil).Once()

		svc := NewAuthService(db, userRepo, tokenRepo, &stubMailer{}, testAuthConfig())
		err := svc.VerifyAccount(ctx, tokenString)

		require.NoError(t, err)

		var reloaded model.User
		require.NoError(t, db.First(&reloaded, "user_id = ?", user.UserID).Error)
		assert.True(t, reloaded.IsActive)

		tokenRepo.AssertExpectations(t)
	})

	t.Run("異常系: トークンが存在しない", func(t *testing.T) {
		db := setupTestDBAuth(t)
		tokenRepo := new(mocks.TokenRepository)

		tokenRepo.On("FindVerificationToken", ctx, mock.AnythingOfType("*gorm.DB"), "missing-token").
			Return(nil, model.ErrNotFound).Once()

		svc := NewAuthService(db, new(mocks.UserRepository), tokenRepo, &stubMailer{}, testAuthConfig())
		err := svc.VerifyAccount(ctx, "missing-token")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("異常系: トークンの有効期限が切れている", func(t *testing.T) {
		db := setupTestDBAuth(t)
		tokenRepo := new(mocks.TokenRepository)

		tokenString := "expired-token"
		tokenRepo.On("FindVerificationToken", ctx, mock.AnythingOfType("*gorm.DB"), tokenString).
			Return(&model.UserVerificationToken{
				Token:     tokenString,
				UserID:    uuid.New(),
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil).Once()
		tokenRepo.On("DeleteVerificationToken", ctx, mock.AnythingOfType("*gorm.DB"), tokenString).
			Return(nil).Once()

		svc := NewAuthService(db, new(mocks.UserRepository), tokenRepo, &stubMailer{}, testAuthConfig())
		err := svc.VerifyAccount(ctx, tokenString)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		tokenRepo.AssertExpectations(t)
	})
}

// --- Test GetUser ---
func Test_authService_GetUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("正常系: ユーザー取得成功", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(&model.User{UserID: userID, Name: "Aiturgan"}, nil).Once()

		svc := NewAuthService(setupTestDBAuth(t), userRepo, new(mocks.TokenRepository), &stubMailer{}, testAuthConfig())
		user, err := svc.GetUser(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		userRepo.AssertExpectations(t)
	})

	t.Run("異常系: ユーザーが存在しない", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(nil, model.ErrNotFound).Once()

		svc := NewAuthService(setupTestDBAuth(t), userRepo, new(mocks.TokenRepository), &stubMailer{}, testAuthConfig())
		user, err := svc.GetUser(ctx, userID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, user)
		userRepo.AssertExpectations(t)
	})
}
