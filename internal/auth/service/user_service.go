package service

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/Shaurya8425/Blogs/internal/auth/domain"
	"github.com/Shaurya8425/Blogs/internal/auth/dto"
	autherror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService struct {
	repo   domain.UserRepository
	tokens TokenManager
}

func NewUserService(repo domain.UserRepository, tokens TokenManager) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

func (s *UserService) Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthOutput, error) {
	if !emailPattern.MatchString(input.Email) {
		return nil, autherror.ErrInvalidEmail
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	slog.Info("user signed up", "user_id", user.ID)

	return &dto.AuthOutput{ID: user.ID, Email: user.Email, Name: user.Name, Token: token}, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthOutput, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	// Unknown user and wrong password are indistinguishable to the caller.
	if user == nil || !CheckPassword(input.Password, user.PasswordHash) {
		return nil, autherror.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)

	return &dto.AuthOutput{ID: user.ID, Email: user.Email, Name: user.Name, Token: token}, nil
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return &dto.UserOutput{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// UpdateProfile changes the display name and, when both password fields are
// supplied, the password. Only the profile owner may update it.
func (s *UserService) UpdateProfile(ctx context.Context, requesterID, targetID string, input dto.UpdateProfileInput) (*dto.UserOutput, error) {
	if requesterID != targetID {
		return nil, autherror.ErrNotOwner
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if input.CurrentPassword != "" && input.NewPassword != "" {
		if !CheckPassword(input.CurrentPassword, user.PasswordHash) {
			return nil, autherror.ErrWrongPassword
		}
		hash, err := HashPassword(input.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if input.Name != nil {
		user.Name = input.Name
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UserOutput{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}
