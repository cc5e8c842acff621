package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"propertyhub/internal/auth"
	"propertyhub/internal/errors"
	"propertyhub/internal/model"
)

func newTestAuthService(repo *MockUserRepository) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, jwtService, bcrypt.MinCost), jwtService
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		input         SignupInput
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedMsg   string
	}{
		{
			name:  "successful signup",
			input: SignupInput{Email: "a@b.com", Password: "pw123456", FullName: "A"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Role == model.DefaultRole && u.Username == nil && u.PasswordHash != "pw123456"
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 1
				}).Return(nil)
			},
		},
		{
			name:  "email is stored lower-cased",
			input: SignupInput{Email: " Jane.Doe@Example.COM ", Password: "pw123456", FullName: "A"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane.doe@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "jane.doe@example.com"
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 1
				}).Return(nil)
			},
		},
		{
			name:  "email already registered",
			input: SignupInput{Email: "a@b.com", Password: "pw123456"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{ID: 1}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:  "username already taken",
			input: SignupInput{Email: "c@d.com", Password: "pw123456", Username: "jdoe"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "c@d.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "jdoe").Return(&model.User{ID: 2}, nil)
			},
			expectedError: errors.ErrUsernameTaken,
		},
		{
			name:  "unique index catches a concurrent signup",
			input: SignupInput{Email: "a@b.com", Password: "pw123456"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound).Once()
				m.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
				m.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{ID: 9}, nil).Once()
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:        "malformed email",
			input:       SignupInput{Email: "not-an-email", Password: "pw123456"},
			setupMock:   func(m *MockUserRepository) {},
			expectedMsg: "Invalid email format",
		},
		{
			name:        "short username and missing password",
			input:       SignupInput{Email: "a@b.com", Username: "ab"},
			setupMock:   func(m *MockUserRepository) {},
			expectedMsg: "Password is required, Username must be between 3 and 50 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			service, jwtService := newTestAuthService(mockRepo)

			result, err := service.Signup(context.Background(), tt.input)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			case tt.expectedMsg != "":
				var validationErr *errors.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, tt.expectedMsg, err.Error())
				assert.Nil(t, result)
			default:
				require.NoError(t, err)
				assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.input.Email)), result.User.Email)
				assert.Equal(t, model.DefaultRole, result.User.Role)

				claims, err := jwtService.ValidateToken(result.Token)
				require.NoError(t, err)
				assert.Equal(t, uint(1), claims.UserID)
				assert.Equal(t, "A", claims.FullName)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	username := "jdoe"
	stored := &model.User{ID: 3, Email: "test@example.com", Username: &username, PasswordHash: string(hashedPassword), Role: "admin"}

	tests := []struct {
		name          string
		input         LoginInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "login by email field",
			input: LoginInput{Email: "test@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "test@example.com").Return(stored, nil)
			},
		},
		{
			name:  "identifier wins over email",
			input: LoginInput{Identifier: "jdoe", Email: "ignored@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "jdoe").Return(stored, nil)
			},
		},
		{
			name:  "login by username field",
			input: LoginInput{Username: "jdoe", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "jdoe").Return(stored, nil)
			},
		},
		{
			name:  "unknown account",
			input: LoginInput{Email: "notfound@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:  "wrong password",
			input: LoginInput{Email: "test@example.com", Password: "wrong"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifier", mock.Anything, "test@example.com").Return(stored, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:          "no identifier",
			input:         LoginInput{Password: "password123"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			service, _ := newTestAuthService(mockRepo)

			result, err := service.Login(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, result.Token)
				assert.Equal(t, "admin", result.User.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_CreateUserKeepsRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool { return u.Role == "admin" })).Return(nil)
	service, _ := newTestAuthService(mockRepo)

	user, err := service.CreateUser(context.Background(), SignupInput{Email: "admin@example.com", Password: "admin123"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	mockRepo.AssertExpectations(t)
}
