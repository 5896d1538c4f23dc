package service

import (
	"errors"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"
	"go-pantry-mind/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrNoKitchen          = errors.New("user is not assigned to a kitchen")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type TokenValidationResponse struct {
	User model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Every authenticated call is scoped to a kitchen, so refuse logins
	// for users that have not joined one yet.
	if user.KitchenID == nil {
		return nil, ErrNoKitchen
	}

	token, err := jwt.GenerateToken(user.ID, *user.KitchenID, user.Email, user.Name)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return &TokenValidationResponse{User: user.ToResponse()}, nil
}

// CallerFromClaims builds the scoping context handed to every service call.
func CallerFromClaims(userID, kitchenID uuid.UUID) CallerContext {
	return CallerContext{UserID: userID, KitchenID: kitchenID}
}
