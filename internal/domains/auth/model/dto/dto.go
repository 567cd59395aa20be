package dto

import (
	"venuebook/infras/jwt"
	userModel "venuebook/internal/domains/user/model"
	userDto "venuebook/internal/domains/user/model/dto"
	"venuebook/shared/constant"
	gModel "venuebook/shared/model"
	"venuebook/shared/timezone"

	"github.com/google/uuid"
)

// RegisterRequest is the self sign-up payload. Admin accounts are never
// created here.
type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,max=50"`
	Lastname  string `json:"lastname"  validate:"required,max=50"`
	Username  string `json:"username"  validate:"required,min=3,max=50"`
	Password  string `json:"password"  validate:"required,min=6,max=72"`
	Role      string `json:"role"      validate:"omitempty,oneof=owner user"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	now := timezone.Now()

	return userModel.User{
		ID:        uuid.NewString(),
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Username:  r.Username,
		Password:  hashedPassword,
		Role:      role,
		Metadata:  gModel.NewMetadata(r.Username, now),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type AuthResponse struct {
	TokenResponse
	User userDto.UserResponse `json:"user"`
}

func (r *AuthResponse) FromModel(user userModel.User, tokenPair *jwt.TokenPair) {
	r.FromTokenPair(tokenPair)
	r.User.FromModel(user)
}

// UpdateProfileRequest lets a user edit their own account. The role is not
// part of it.
type UpdateProfileRequest struct {
	Firstname *string `db:"firstname" json:"firstname,omitempty" validate:"omitempty,max=50"`
	Lastname  *string `db:"lastname"  json:"lastname,omitempty"  validate:"omitempty,max=50"`
	Username  *string `db:"username"  json:"username,omitempty"  validate:"omitempty,min=3,max=50"`
	Password  *string `db:"password"  json:"password,omitempty"  validate:"omitempty,min=6,max=72"`
}
