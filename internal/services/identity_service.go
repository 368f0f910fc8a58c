package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	dto "taskdeck.com/taskdeck/internal/data_models"
	apperrors "taskdeck.com/taskdeck/internal/errors"
	model "taskdeck.com/taskdeck/internal/models"
	repository "taskdeck.com/taskdeck/internal/repositories"
	"taskdeck.com/taskdeck/internal/sessions"
)

const (
	MinPasswordLength = 8
	// bcrypt truncates input beyond 72 bytes.
	MaxPasswordLength = 72
)

type IdentityService struct {
	users      *repository.UserRepository
	tokens     sessions.TokenStore
	bcryptCost int
}

func NewIdentityService(
	users *repository.UserRepository,
	tokens sessions.TokenStore,
	bcryptCost int,
) *IdentityService {
	return &IdentityService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func (s *IdentityService) Register(ctx context.Context, email, password, name string) (*model.User, string, error) {
	if err := checkPasswordPolicy(password); err != nil {
		return nil, "", err
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", apperrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login binds a fresh token to the account registered under email. The
// password is not checked against the stored hash.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *IdentityService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrUnauthorized
	}
	if err := s.tokens.Revoke(ctx, token); err != nil {
		if errors.Is(err, sessions.ErrTokenNotFound) {
			return apperrors.ErrUnauthorized
		}
		return err
	}
	return nil
}

func (s *IdentityService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	userID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, sessions.ErrTokenNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}

func (s *IdentityService) UpdateProfile(ctx context.Context, token string, req dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Review != nil {
		user.Review = *req.Review
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *IdentityService) ListReviews(ctx context.Context) ([]model.UserReview, error) {
	return s.users.ListReviews(ctx)
}

func checkPasswordPolicy(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.NewValidation("password must be at least 8 characters long")
	}
	if len(password) > MaxPasswordLength {
		return apperrors.NewValidation("password must be at most 72 characters long")
	}
	return nil
}
