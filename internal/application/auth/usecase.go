package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/warehouse-pos/internal/application/dto"
	"github.com/jhoicas/warehouse-pos/internal/domain"
	"github.com/jhoicas/warehouse-pos/internal/domain/entity"
	"github.com/jhoicas/warehouse-pos/internal/domain/repository"
	"github.com/jhoicas/warehouse-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenBlocklist lista de tokens revocados por jti hasta su vencimiento.
type TokenBlocklist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: login, logout y administración de contraseñas.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	blocklist    TokenBlocklist
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. blocklist puede ser nil (logout sin efecto).
func NewAuthUseCase(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository, blocklist TokenBlocklist, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, employeeRepo: employeeRepo, blocklist: blocklist, jwtCfg: jwtCfg}
}

// Login verifica usuario/password, genera JWT con bodega, cargo y secciones.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	emp, err := uc.employeeRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if emp != nil && emp.IsBlocked() && !user.IsSuperuser {
		return nil, fmt.Errorf("%w: empleado bloqueado", domain.ErrForbidden)
	}

	sub := jwt.Subject{UserID: user.ID, Sections: []string{}}
	resp := dto.UserResponse{ID: user.ID, Username: user.Username, IsSuperuser: user.IsSuperuser, Sections: []string{}}
	if emp != nil {
		sub.EmployeeID = emp.ID
		sub.WarehouseID = emp.WarehouseID
		sub.Role = emp.Position
		sub.Sections = emp.Sections
		resp.EmployeeID = emp.ID
		resp.FullName = emp.FullName
		resp.Position = emp.Position
		resp.WarehouseID = emp.WarehouseID
		resp.Sections = emp.Sections
	}
	if user.IsSuperuser {
		sub.Role = jwt.RoleSuperuser
		sub.WarehouseID = ""
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, sub)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: exp, User: resp}, nil
}

// Logout revoca el jti hasta su vencimiento. Sin lista configurada no hace nada.
func (uc *AuthUseCase) Logout(ctx context.Context, jti string, exp time.Time) error {
	if uc.blocklist == nil || jti == "" {
		return nil
	}
	return uc.blocklist.Revoke(ctx, jti, exp)
}

// IsActive indica si el usuario del token sigue habilitado: activo y con empleado no bloqueado.
func (uc *AuthUseCase) IsActive(ctx context.Context, userID string) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil || !user.IsActive {
		return false, nil
	}
	if user.IsSuperuser {
		return true, nil
	}
	emp, err := uc.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return emp == nil || !emp.IsBlocked(), nil
}

// CreateSuperuser crea un superusuario (CLI).
func (uc *AuthUseCase) CreateSuperuser(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		IsSuperuser:  true,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResetPassword cambia la contraseña de un usuario existente (CLI).
func (uc *AuthUseCase) ResetPassword(ctx context.Context, username, password string) error {
	if len(password) < 6 {
		return domain.ErrInvalidInput
	}
	u, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, u.ID, string(hash))
}
