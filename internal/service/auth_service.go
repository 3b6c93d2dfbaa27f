package service

import (
	"context"
	"errors"
	"time"

	"garagedesk/internal/config"
	"garagedesk/internal/dto"
	"garagedesk/internal/model"
	"garagedesk/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]dto.StaffResponse, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	DeactivateStaff(ctx context.Context, id uuid.UUID) error
	ReactivateStaff(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.ProfileRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.ProfileRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         profileToResponse(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, errors.New("user not found or inactive")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         profileToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.Profile, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	p := &model.Profile{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errors.New("could not create staff member (email already in use?)")
	}
	resp := profileToResponse(p)
	return &resp, nil
}

func (s *authService) ListStaff(ctx context.Context, includeInactive bool) ([]dto.StaffResponse, error) {
	profiles, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, profileToResponse(&profiles[i]))
	}
	return out, nil
}

func (s *authService) UpdateStaff(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("staff member not found")
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := profileToResponse(user)
	return &resp, nil
}

func (s *authService) DeactivateStaff(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *authService) ReactivateStaff(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func profileToResponse(p *model.Profile) dto.StaffResponse {
	return dto.StaffResponse{
		ID:       p.ID.String(),
		Email:    p.Email,
		FullName: p.FullName,
		Role:     p.Role,
		Active:   p.Active,
	}
}
