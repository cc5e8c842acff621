package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"propertyhub/internal/auth"
	"propertyhub/internal/errors"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 12

var signupMessages = messages{
	"Email.email_shape": "Invalid email format",
	"Password.required": "Password is required",
	"Username.min":      "Username must be between 3 and 50 characters",
	"Username.max":      "Username must be between 3 and 50 characters",
}

// SignupInput carries a registration request. Any role sent by the client is
// not part of it; new accounts always get the default role.
type SignupInput struct {
	Email    string `validate:"email_shape"`
	Password string `validate:"required"`
	Username string `validate:"omitempty,min=3,max=50"`
	FullName string
}

// LoginInput carries a login request. Identifier wins over Email, which wins
// over Username.
type LoginInput struct {
	Identifier string
	Email      string
	Username   string
	Password   string
}

func (in LoginInput) identifier() string {
	for _, candidate := range []string{in.Identifier, in.Email, in.Username} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return ""
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	// CreateUser registers an account with an explicit role. It is not reachable over HTTP.
	CreateUser(ctx context.Context, input SignupInput, role string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	bcryptCost int
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
	}
}

// Signup creates a user with the default role and returns a token for it.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	user, err := s.CreateUser(ctx, input, model.DefaultRole)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) CreateUser(ctx context.Context, input SignupInput, role string) (*model.User, error) {
	input.Email = normalizeEmail(input.Email)
	input.Username = strings.TrimSpace(input.Username)
	if err := validateStruct(input, signupMessages); err != nil {
		return nil, err
	}

	if err := s.ensureAvailable(ctx, input.Email, input.Username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Role:         role,
	}
	if input.Username != "" {
		username := input.Username
		user.Username = &username
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent signup; tell which field collided.
			if availErr := s.ensureAvailable(ctx, input.Email, input.Username); availErr != nil {
				return nil, availErr
			}
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// normalizeEmail trims and lower-cases an address so uniqueness does not
// depend on the database collation.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) ensureAvailable(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return errors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if username == "" {
		return nil
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return errors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

// Login authenticates by email or username. Unknown accounts and wrong
// passwords produce the same error.
func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	identifier := input.identifier()
	if identifier == "" || input.Password == "" {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
