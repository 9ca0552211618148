package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lab-annotate/cataloger-api/internal/constants"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTooShort     = errors.New("username too short")
	ErrUsernameTaken        = errors.New("username already registered")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserNotActive        = errors.New("user not activated")
	ErrGroupNotFound        = errors.New("group not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// Authenticator verifies credentials against one of the configured
// backends (local password, LDAP, external gateway).
type Authenticator interface {
	// Authenticate verifies the credentials and returns the account info
	// known to the backend. For remote backends the local user row may not
	// exist yet.
	Authenticate(username, password string) (*AccountInfo, error)
}

// AccountInfo is what an auth backend knows about an account.
type AccountInfo struct {
	Username  string
	FirstName string
	LastName  string
}

// AuthService handles registration, login and session user lookup.
type AuthService struct {
	userRepo      repository.UserRepository
	groupRepo     repository.GroupRepository
	authenticator Authenticator
}

// NewAuthService creates a new AuthService. The authenticator decides how
// Login verifies passwords; remote backends provision local rows on first
// successful login.
func NewAuthService(userRepo repository.UserRepository, groupRepo repository.GroupRepository, authenticator Authenticator) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		groupRepo:     groupRepo,
		authenticator: authenticator,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	GroupID   uint64
}

// Signup creates a new local user attached to an existing group.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < constants.MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	group, err := s.groupRepo.FindByID(input.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	groupID := group.ID
	user := &models.User{
		Username:     username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hashedPassword),
		GroupID:      &groupID,
		Active:       true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials via the configured backend and returns the
// local user, provisioning it first when a remote backend accepted an
// account we have not seen before.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	info, err := s.authenticator.Authenticate(input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(info.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		user = &models.User{
			Username:  info.Username,
			FirstName: info.FirstName,
			LastName:  info.LastName,
			Active:    true,
		}
		if cerr := s.userRepo.Create(user); cerr != nil {
			return nil, ErrFailedToCreateUser
		}
	}

	if !user.Active {
		return nil, ErrUserNotActive
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// LocalAuthenticator checks passwords against the local bcrypt hashes.
type LocalAuthenticator struct {
	userRepo repository.UserRepository
}

// NewLocalAuthenticator creates a LocalAuthenticator.
func NewLocalAuthenticator(userRepo repository.UserRepository) *LocalAuthenticator {
	return &LocalAuthenticator{userRepo: userRepo}
}

func (a *LocalAuthenticator) Authenticate(username, password string) (*AccountInfo, error) {
	user, err := a.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AccountInfo{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}
