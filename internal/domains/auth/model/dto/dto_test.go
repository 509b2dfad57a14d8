package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shuttle/infras/jwt"
	"shuttle/internal/domains/auth/model/dto"
	userModel "shuttle/internal/domains/user/model"
	"shuttle/shared/constant"
	gModel "shuttle/shared/model"
	"shuttle/shared/timezone"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	phone := "081234567890"
	req := dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "plaintext",
		FullName: "New User",
		Phone:    &phone,
	}

	user := req.ToUserModel("guest", "hashed-password")

	assert.NotEmpty(t, user.ID, "expected ID to be generated")
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.Equal(t, constant.RoleUser, user.Role)
	assert.Equal(t, req.FullName, user.FullName)
	assert.Equal(t, &phone, user.Phone)
	assert.True(t, user.Active)
	assert.Equal(t, "guest", user.CreatedBy)
	assert.False(t, user.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestProfileResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	lastLogin := "2026-08-01T10:00:00Z"
	user := userModel.User{
		ID:        "user-id-123",
		Email:     "test@example.com",
		Role:      constant.RoleUser,
		FullName:  "Test User",
		LastLogin: &lastLogin,
		Active:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "guest",
			ModifiedBy: "guest",
		},
	}

	var response dto.ProfileResponse
	response.FromModel(user)

	assert.Equal(t, user.ID, response.ID)
	assert.Equal(t, user.Email, response.Email)
	assert.Equal(t, user.Role, response.Role)
	assert.Equal(t, user.FullName, response.FullName)
	assert.Equal(t, &lastLogin, response.LastLogin)
	assert.True(t, response.Active)
	assert.Equal(t, user.CreatedBy, response.CreatedBy)
}
