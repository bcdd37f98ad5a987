package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/xaramillo/crossfit/internal/domain"
	"github.com/xaramillo/crossfit/internal/repository"
)

// --- Error Definitions ---
var (
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// Default credentials created on an empty credential store. A deliberate
// first-run convenience; main logs a loud warning when it happens.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
	DefaultAdminFullName = "Administrator"
)

// --- Service Interface ---
type AuthService interface {
	// Register creates a self-service account. The role is always
	// domain.RoleUser; registration cannot self-elevate.
	Register(ctx context.Context, username, password, fullName string) (*domain.User, error)
	// Login authenticates and returns a signed session token plus the
	// user. Unknown username and wrong password fail identically.
	Login(ctx context.Context, username, password string) (token string, user *domain.User, err error)
	// ChangePassword re-verifies the old password before storing a new
	// hash. Returns ErrAuthenticationFailed when the old password is wrong.
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	// EnsureDefaultAdmin creates the admin/admin account when the store
	// holds zero users. Reports whether it did so.
	EnsureDefaultAdmin(ctx context.Context) (bool, error)
	GetJWTSecret() string
}

// --- Service Implementation ---

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// HashPassword produces a salted bcrypt hash. Hashing the same password
// twice yields different bytes; both verify.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

// VerifyPassword checks a password against a stored hash. A malformed hash
// is a mismatch, never a panic or an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register handles self-service registration.
func (s *authService) Register(ctx context.Context, username, password, fullName string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password cannot be empty")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		FullName:     fullName,
	}

	// The unique index is the authority on duplicates; no pre-check, so
	// there is no window for a racing registration to slip through.
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and session token generation.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Not-found maps to the same failure as a bad password so the
			// response never leaks which half was wrong.
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// ChangePassword re-verifies the old password before accepting the new one.
func (s *authService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAuthenticationFailed
		}
		return err
	}

	if !VerifyPassword(oldPassword, user.PasswordHash) {
		return ErrAuthenticationFailed
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePasswordHash(ctx, userID, hash)
}

// EnsureDefaultAdmin bootstraps the admin/admin account on first startup.
func (s *authService) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := HashPassword(DefaultAdminPassword)
	if err != nil {
		return false, err
	}

	admin := &domain.User{
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		FullName:     DefaultAdminFullName,
	}

	if _, err := s.userRepo.Create(ctx, admin); err != nil {
		// Another instance may have bootstrapped between the count and
		// the insert; that is fine.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// --- JWT Helper ---

// Claims is the session token payload: the acting identity and its role.
type Claims struct {
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new signed token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "crossfit-pr-tracker",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
