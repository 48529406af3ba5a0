package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Domenick1991/skyflow/internal/auth"
	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/repository"
	"github.com/sirupsen/logrus"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.UserResponse, error)
	RegisterAdmin(ctx context.Context, input RegisterInput, caller auth.CallerContext) (*domain.UserResponse, error)
	Login(ctx context.Context, input LoginInput, caller auth.CallerContext) (*domain.AuthorizationResponse, error)
	Update(ctx context.Context, userID int64, input UpdateInput) (*domain.UserResponse, error)
	Me(ctx context.Context, caller auth.CallerContext) (*domain.UserResponse, error)
}

type TokenIssuer interface {
	Issue(email string) (string, error)
}

type CallerResolver interface {
	Lookup(ctx context.Context, caller auth.CallerContext) (*domain.User, bool, error)
	Resolve(ctx context.Context, caller auth.CallerContext) (*domain.User, error)
}

type RegisterInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	PictureURL string `json:"pictureUrl"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateInput is a partial update: nil or empty fields are left unchanged.
type UpdateInput struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	PictureURL *string `json:"pictureUrl"`
}

type UserService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens TokenIssuer
	caller CallerResolver
	log    logrus.FieldLogger
}

type UserServiceOption func(*UserService)

func WithLogger(log logrus.FieldLogger) UserServiceOption {
	return func(s *UserService) {
		s.log = log
	}
}

func NewUserService(
	users repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens TokenIssuer,
	caller CallerResolver,
	opts ...UserServiceOption,
) *UserService {
	service := &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		caller: caller,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.UserResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.Forbidden("Email is taken")
	}

	user, err := s.create(ctx, input, false)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return &domain.UserResponse{
		StatusCode: http.StatusOK,
		Message:    "Successfully registered user account",
		User:       domain.MapUser(user),
	}, nil
}

// RegisterAdmin creates an admin account. A caller whose token subject matches
// no stored user is not rejected here.
func (s *UserService) RegisterAdmin(ctx context.Context, input RegisterInput, caller auth.CallerContext) (*domain.UserResponse, error) {
	current, found, err := s.caller.Lookup(ctx, caller)
	if err != nil {
		return nil, err
	}
	if found && !current.IsAdmin {
		return nil, domain.InvalidBusinessArgument("You cannot register new admin as standard user")
	}
	if !validEmail(input.Email) {
		return nil, domain.InvalidData("Wrong register input")
	}
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.Forbidden("Email is taken")
	}

	user, err := s.create(ctx, input, true)
	if err != nil {
		return nil, err
	}

	entry := s.log.WithField("user_id", user.ID)
	if found {
		entry = entry.WithField("created_by", current.ID)
	}
	entry.Info("admin registered")
	return &domain.UserResponse{
		StatusCode: http.StatusOK,
		Message:    "Successfully registered admin user account",
		User:       domain.MapUser(user),
	}, nil
}

func (s *UserService) Login(ctx context.Context, input LoginInput, caller auth.CallerContext) (*domain.AuthorizationResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if !exists {
		return nil, domain.EntityNotFound("User with given data does not exist")
	}
	if caller.Present {
		return nil, domain.Auth("You cannot log in while you are logged in", nil)
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.EntityNotFound("User with given data does not exist")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := s.hasher.Verify(input.Password, user.PasswordHash); err != nil {
		s.log.WithField("user_id", user.ID).Warn("login rejected")
		return nil, err
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &domain.AuthorizationResponse{
		StatusCode: http.StatusOK,
		Message:    "Successfully logged in",
		Token:      token,
	}, nil
}

// Update applies input to the user with userID. The email uniqueness check
// runs on any supplied email, including the user's own.
func (s *UserService) Update(ctx context.Context, userID int64, input UpdateInput) (*domain.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.EntityNotFound("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if input.Email != nil {
		exists, err := s.users.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if exists {
			return nil, domain.DuplicatedData("User with given email already exists")
		}
	}

	if v, ok := supplied(input.FirstName); ok {
		user.FirstName = v
	}
	if v, ok := supplied(input.LastName); ok {
		user.LastName = v
	}
	if v, ok := supplied(input.Email); ok {
		user.Email = v
	}
	if v, ok := supplied(input.Password); ok {
		hash, err := s.hasher.Hash(v)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if v, ok := supplied(input.PictureURL); ok {
		user.PictureURL = v
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, domain.DuplicatedData("User with given email already exists")
		case errors.Is(err, repository.ErrNotFound):
			return nil, domain.EntityNotFound("User not found")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user updated")
	return &domain.UserResponse{
		StatusCode: http.StatusAccepted,
		Message:    "User data updated",
		User:       domain.MapUser(user),
	}, nil
}

func (s *UserService) Me(ctx context.Context, caller auth.CallerContext) (*domain.UserResponse, error) {
	user, err := s.caller.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &domain.UserResponse{
		StatusCode: http.StatusOK,
		Message:    "Current user",
		User:       domain.MapUser(user),
	}, nil
}

func (s *UserService) create(ctx context.Context, input RegisterInput, admin bool) (*domain.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		PictureURL:   input.PictureURL,
		IsAdmin:      admin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Forbidden("Email is taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func validEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

func supplied(v *string) (string, bool) {
	if v == nil || *v == "" {
		return "", false
	}
	return *v, true
}

var _ UserUseCase = (*UserService)(nil)
