package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/storage"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is shared by every demo account.
const DemoPassword = "password"

const tokenType = "access"

const invalidCredentialsMessage = "Invalid username or password"

type account struct {
	user models.User
	hash []byte
}

// demoUsers is the fixed credential table.
var demoUsers = []models.User{
	{ID: "1", Username: "admin", Name: "Admin User", Role: models.RoleAdmin},
	{ID: "2", Username: "waiter1", Name: "John Waiter", Role: models.RoleWaiter},
	{ID: "3", Username: "chef1", Name: "Chef Mike", Role: models.RoleKitchen},
	{ID: "4", Username: "guest", Name: "Guest User", Role: models.RoleCustomer},
}

// AuthService signs staff in against the demo credential table and keeps
// the signed-in user per session.
type AuthService interface {
	Login(ctx context.Context, sessionID string, req *models.LoginRequest) (*models.LoginResponse, *ServiceError)
	Logout(ctx context.Context, sessionID string) *ServiceError
	CurrentUser(ctx context.Context, sessionID string) (*models.User, *ServiceError)
	ParseToken(token string) (*models.User, error)
}

type authServiceImpl struct {
	accounts map[string]account
	store    storage.Store
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
}

// NewAuthService hashes the demo credentials with cost and returns the
// service. secret signs the bearer tokens.
func NewAuthService(store storage.Store, secret string, ttl time.Duration, cost int, logger *zap.Logger) (AuthService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret not configured")
	}
	accounts := make(map[string]account, len(demoUsers))
	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		accounts[u.Username] = account{user: u, hash: hash}
	}
	return &authServiceImpl{
		accounts: accounts,
		store:    store,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
	}, nil
}

func unauthorized(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: msg}
}

func (s *authServiceImpl) Login(ctx context.Context, sessionID string, req *models.LoginRequest) (*models.LoginResponse, *ServiceError) {
	acc, ok := s.accounts[strings.TrimSpace(req.Username)]
	if !ok {
		return nil, unauthorized(invalidCredentialsMessage)
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)); err != nil {
		s.logger.Warn("Failed login attempt", zap.String("username", acc.user.Username))
		return nil, unauthorized(invalidCredentialsMessage)
	}

	token, err := s.generateToken(acc.user)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, internal("Failed to sign in")
	}
	if err := storage.SaveJSON(ctx, s.store, sessionID, storage.KeyUser, acc.user); err != nil {
		s.logger.Error("Failed to save session user", zap.String("session_id", sessionID), zap.Error(err))
		return nil, internal("Failed to sign in")
	}

	s.logger.Info("User signed in", zap.String("username", acc.user.Username), zap.String("role", string(acc.user.Role)))
	return &models.LoginResponse{User: acc.user, Token: token, ExpiresIn: int64(s.ttl.Seconds())}, nil
}

func (s *authServiceImpl) generateToken(u models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"name":     u.Name,
		"role":     string(u.Role),
		"typ":      tokenType,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authServiceImpl) Logout(ctx context.Context, sessionID string) *ServiceError {
	if err := s.store.Delete(ctx, sessionID, storage.KeyUser); err != nil {
		s.logger.Error("Failed to clear session user", zap.String("session_id", sessionID), zap.Error(err))
		return internal("Failed to sign out")
	}
	return nil
}

// CurrentUser returns the session's user, or 401 when nobody is signed in.
// An unreadable record counts as signed out.
func (s *authServiceImpl) CurrentUser(ctx context.Context, sessionID string) (*models.User, *ServiceError) {
	user, err := storage.LoadJSON[*models.User](ctx, s.store, sessionID, storage.KeyUser, nil)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("Discarding unreadable session user", zap.String("session_id", sessionID), zap.Error(err))
	}
	if user == nil || !user.Role.IsValid() {
		return nil, unauthorized("Not signed in")
	}
	return user, nil
}

// ParseToken validates a bearer token and returns the user it was issued to.
func (s *authServiceImpl) ParseToken(tokenStr string) (*models.User, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if typ, _ := claims["typ"].(string); typ != tokenType {
		return nil, fmt.Errorf("invalid token type")
	}
	user := &models.User{}
	user.ID, _ = claims["sub"].(string)
	user.Username, _ = claims["username"].(string)
	user.Name, _ = claims["name"].(string)
	role, _ := claims["role"].(string)
	user.Role = models.Role(role)
	if user.ID == "" || !user.Role.IsValid() {
		return nil, fmt.Errorf("invalid token claims")
	}
	return user, nil
}
