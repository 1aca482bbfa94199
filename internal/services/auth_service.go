package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"invoicehub/internal/caching"
	"invoicehub/internal/common"
	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	CompanyName string `json:"company_name"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*models.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	db          repositories.DB
	userRepo    repositories.UserRepository
	companyRepo repositories.CompanyRepository
	cacheSvc    caching.CacheService
	jwtSecret   []byte
	tokenTTL    time.Duration
	refreshTTL  time.Duration
}

func NewAuthService(db repositories.DB, userRepo repositories.UserRepository, companyRepo repositories.CompanyRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		db:          db,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		cacheSvc:    cacheSvc,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		refreshTTL:  refreshTTL,
	}
}

// Register provisions a tenant: company plus its first staff user, in one
// transaction.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.TokenResponse, error) {
	if err := common.ValidateRequiredString(req.CompanyName, "company_name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return nil, err
	}
	if err := common.ValidateEmail(req.Email, "email"); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	company := &models.Company{
		ID:        uuid.New(),
		Name:      req.CompanyName,
		Email:     req.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &models.User{
		ID:           uuid.New(),
		CompanyID:    &company.ID,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         models.RoleStaff,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.companyRepo.CreateTx(ctx, tx, company); err != nil {
			return err
		}
		return s.userRepo.CreateTx(ctx, tx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("provision tenant: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		// Same error for unknown email and bad password.
		return nil, fmt.Errorf("invalid credentials")
	}
	if !user.Active {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	tokenHash := s.hashToken(refreshToken)
	cacheKey := fmt.Sprintf("refresh_token:%s", tokenHash)

	userIDStr, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || !user.Active {
		return nil, fmt.Errorf("invalid refresh token")
	}

	// Rotate: the old token is gone once used.
	if err := s.cacheSvc.Delete(ctx, cacheKey); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	companyID := ""
	if user.CompanyID != nil {
		companyID = user.CompanyID.String()
	}

	claims := common.AuthClaims{
		UserID:    user.ID.String(),
		CompanyID: companyID,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "invoicehub",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	refreshToken, err := s.generateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	cacheKey := fmt.Sprintf("refresh_token:%s", s.hashToken(refreshToken))
	if err := s.cacheSvc.SetString(ctx, cacheKey, user.ID.String(), s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		CompanyID:    companyID,
		Role:         user.Role,
		IssuedAt:     now,
	}, nil
}

func (s *authService) generateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *authService) hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
