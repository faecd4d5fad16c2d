package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joshua-takyi/staybooking/internal/helpers"
	"github.com/joshua-takyi/staybooking/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type UserService struct {
	userRepo    models.UserRepo
	sessionRepo models.SessionRepo
	tokens      *helpers.TokenIssuer
	now         func() time.Time
}

func NewUserService(userRepo models.UserRepo, sessionRepo models.SessionRepo, tokens *helpers.TokenIssuer) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		now:         time.Now,
	}
}

func (us *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := helpers.NormalizeEmail(input.Email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if err := models.Validate.Var(input.Password, "required"); err != nil {
		return nil, ErrInvalidPassword
	}

	if _, err := us.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := us.userRepo.CreateUser(ctx, &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hash),
	})
	if errors.Is(err, models.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return us.issue(user)
}

func (us *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := us.userRepo.GetUserByEmail(ctx, helpers.NormalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return us.issue(user)
}

// Logout revokes the caller's token for the rest of its lifetime.
func (us *UserService) Logout(ctx context.Context, caller *helpers.CallerIdentity) error {
	ttl := caller.ExpiresAt.Sub(us.now())
	return us.sessionRepo.RevokeToken(ctx, caller.Token, ttl)
}

// ResolveCaller maps a bearer token back to the account it was issued for.
func (us *UserService) ResolveCaller(ctx context.Context, token string) (*helpers.CallerIdentity, error) {
	claims, err := us.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	revoked, err := us.sessionRepo.IsTokenRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, helpers.ErrInvalidToken
	}

	user, err := us.userRepo.GetUserByEmail(ctx, claims.Subject)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}

	caller := &helpers.CallerIdentity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Token:  token,
	}
	if claims.ExpiresAt != nil {
		caller.ExpiresAt = claims.ExpiresAt.Time
	}
	return caller, nil
}

func (us *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := us.userRepo.GetUserByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (us *UserService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := us.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
