package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ticket-board-api/internal/cache"
	"ticket-board-api/internal/config"
	"ticket-board-api/internal/domain"
	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/repository"
	"ticket-board-api/internal/response"
)

// defaultCategories are the columns every new account starts with
var defaultCategories = []struct {
	Name  string
	Color string
}{
	{Name: "To Do", Color: "#6B7280"},
	{Name: "In Progress", Color: "#3B82F6"},
	{Name: "Done", Color: "#10B981"},
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error)
	SignOut(ctx context.Context, token string) error
	Session(ctx context.Context) (*dto.UserResponse, error)
	// ValidateToken parses and verifies a bearer token, rejecting
	// signed-out tokens, and returns the authenticated user's ID
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	blacklist    *cache.TokenBlacklist
	jwtCfg       config.JWTConfig
	logger       *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	blacklist *cache.TokenBlacklist,
	jwtCfg config.JWTConfig,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		blacklist:    blacklist,
		jwtCfg:       jwtCfg,
		logger:       logger,
	}
}

// SignUp creates an account and seeds it with the default board columns
func (s *authServiceImpl) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Email is already registered", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check email", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user := &domain.User{
		Email:            req.Email,
		Name:             req.Name,
		PasswordHash:     string(hash),
		NotifyDaysBefore: domain.DefaultNotifyDaysBefore,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to create account", err.Error())
	}

	for i, c := range defaultCategories {
		category := &domain.Category{
			UserID:   user.ID,
			Name:     c.Name,
			Color:    c.Color,
			Position: i,
		}
		if err := s.categoryRepo.Create(ctx, category); err != nil {
			// The account still works without seeded columns
			s.logger.Warn("Failed to seed default category",
				zap.String("user_id", user.ID.String()),
				zap.String("name", c.Name),
				zap.Error(err))
		}
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// SignIn authenticates by email and password. Unknown emails and wrong
// passwords produce the same error so accounts cannot be enumerated.
func (s *authServiceImpl) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load account", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// SignOut blacklists the token for its remaining lifetime
func (s *authServiceImpl) SignOut(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return response.NewAppError(response.ErrCodeUnauthorized, "Invalid token", "")
	}

	ttl := time.Duration(0)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if err := s.blacklist.Add(ctx, token, ttl); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to sign out", err.Error())
	}
	return nil
}

// Session returns the authenticated user's profile
func (s *authServiceImpl) Session(ctx context.Context) (*dto.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Account no longer exists", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load account", err.Error())
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ValidateToken verifies the token signature, expiry and blacklist state
func (s *authServiceImpl) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	if s.blacklist.Contains(ctx, token) {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "Token has been signed out", "")
	}

	claims, err := s.parseToken(token)
	if err != nil {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid token", "")
	}

	sub, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid token claims", "")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid token claims", "")
	}
	return userID, nil
}

func (s *authServiceImpl) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.jwtCfg.Expiry.Std()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

func (s *authServiceImpl) parseToken(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		AvatarURL:        user.AvatarURL,
		NotifyDaysBefore: user.NotifyDaysBefore,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}
