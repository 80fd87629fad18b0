package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventory-manager/internal/application/dto"
	"github.com/jhoicas/inventory-manager/internal/domain"
	"github.com/jhoicas/inventory-manager/internal/domain/entity"
	"github.com/jhoicas/inventory-manager/internal/domain/repository"
	"github.com/jhoicas/inventory-manager/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokenDenylist revocación de tokens hasta su expiración natural (opcional).
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SessionUser identidad reconstruida desde los claims del token (no se consulta la DB).
type SessionUser struct {
	ID        string
	Username  string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin indica si el rol del token es admin.
func (u *SessionUser) IsAdmin() bool { return u != nil && u.Role == entity.RoleAdmin }

// LoginResult token emitido y usuario autenticado.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      dto.UserResponse
}

// AuthUseCase casos de uso de autenticación: login, registro, sesión y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	denylist TokenDenylist
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. denylist puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, denylist TokenDenylist, jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.TTL <= 0 {
		jwtCfg.TTL = 8 * time.Hour
	}
	return &AuthUseCase{userRepo: userRepo, denylist: denylist, jwtCfg: jwtCfg}
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// dummyPasswordHash hash fijo contra el que se compara cuando el usuario no existe,
// para que ambos fallos de login tarden lo mismo.
func dummyPasswordHash() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	})
	return dummyHash
}

// NormalizeUsername recorta espacios y normaliza a NFC.
func NormalizeUsername(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Login verifica usuario/password y emite el token de sesión.
// Usuario inexistente y password incorrecto devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*LoginResult, error) {
	username := NormalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	token, err := jwt.GenerateAt(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, user.ID, user.Username, user.Role, uc.jwtCfg.TTL, now)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(uc.jwtCfg.TTL),
		User:      toUserResponse(user),
	}, nil
}

// Register crea un usuario con password bcrypt. El caller (ruta) ya verificó que es admin.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := NormalizeUsername(in.Username)
	if username == "" || in.Password == "" || !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    time.Now(),
	}
	// El repositorio traduce la violación de unicidad a ErrUsernameTaken (alta concurrente).
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

// EnsureAdmin crea el usuario como admin o, si ya existe, lo promueve a admin
// sin tocar su password. created indica cuál de los dos casos ocurrió.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password string) (out *dto.UserResponse, created bool, err error) {
	existing, err := uc.userRepo.GetByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		out, err = uc.Register(ctx, dto.RegisterRequest{Username: username, Password: password, Role: entity.RoleAdmin})
		return out, err == nil, err
	}
	if existing.Role != entity.RoleAdmin {
		if err := uc.userRepo.UpdateRole(ctx, existing.ID, entity.RoleAdmin); err != nil {
			return nil, false, err
		}
		existing.Role = entity.RoleAdmin
	}
	resp := toUserResponse(existing)
	return &resp, false, nil
}

// CurrentUser valida el token y reconstruye el usuario desde sus claims.
// Cualquier fallo (vacío, firma, expiración, revocado) es ErrUnauthorized.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, token string) (*SessionUser, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.UserID == "" || !entity.ValidRole(claims.Role) {
		return nil, domain.ErrUnauthorized
	}
	if uc.denylist != nil && claims.ID != "" {
		revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
		if err != nil || revoked {
			return nil, domain.ErrUnauthorized
		}
	}
	u := &SessionUser{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		u.ExpiresAt = claims.ExpiresAt.Time
	}
	return u, nil
}

// IsAdmin atajo sobre CurrentUser.
func (uc *AuthUseCase) IsAdmin(ctx context.Context, token string) bool {
	u, err := uc.CurrentUser(ctx, token)
	return err == nil && u.IsAdmin()
}

// CurrentRole lee el rol vigente en la DB; lo usan las rutas de administración
// para que un cambio de rol surta efecto sin esperar a que expire el token.
func (uc *AuthUseCase) CurrentRole(ctx context.Context, userID string) (string, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUnauthorized
	}
	return user.Role, nil
}

// Logout revoca el token si hay denylist configurada. Sin denylist es un no-op:
// la cookie la borra el handler y el token sigue siendo válido hasta expirar.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if uc.denylist == nil || token == "" {
		return nil
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := uc.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return errors.Join(errors.New("auth: revocar token"), err)
	}
	return nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
