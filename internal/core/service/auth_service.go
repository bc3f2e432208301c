package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardianlink/portal/internal/api/metrics"
	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

const (
	defaultMaxLoginAttempts = 5
	defaultLockoutDuration  = 30 * time.Minute
)

// AuthConfig holds the account security policy.
type AuthConfig struct {
	PasswordMinLength int
	MaxLoginAttempts  int
	LockoutDuration   time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// AuthService implements registration, login, sessions and password changes.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	tokens   *TokenIssuer
	audit    ports.AuditRecorder
	cfg      AuthConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	tokens *TokenIssuer,
	audit ports.AuditRecorder,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.PasswordMinLength <= 0 {
		cfg.PasswordMinLength = DefaultPasswordMinLength
	}
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = defaultMaxLoginAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = defaultLockoutDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		audit:    audit,
		cfg:      cfg,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	phone := domain.NormalizePhone(in.Phone)
	if email == "" || phone == "" {
		return nil, domain.ErrIdentifierRequired
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}
	if _, err := s.users.FindByPhone(ctx, phone); err == nil {
		return nil, domain.ErrPhoneExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup phone: %w", err)
	}

	if err := ValidatePassword(in.Password, s.cfg.PasswordMinLength); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Roles:        domain.RolesFor(in.IsGuardian),
		IsGuardian:   in.IsGuardian,
		IsActive:     true,
		Preferences:  domain.DefaultPreferences(),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.startSession(ctx, created)
	if err != nil {
		return nil, err
	}

	role := string(domain.RoleNormalUser)
	if created.IsGuardian {
		role = string(domain.RoleGuardian)
	}
	metrics.RegistrationsTotal.WithLabelValues(role).Inc()
	s.record(domain.EventRegistered, created.ID, created.Email, in.Meta)
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")

	return result, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	user, err := s.lookup(ctx, in.Email, in.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if user.IsLocked(now) {
		metrics.LoginsTotal.WithLabelValues("locked").Inc()
		s.record(domain.EventLoginFailed, user.ID, user.Email, in.Meta)
		return nil, domain.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, s.failLogin(ctx, user, now, in.Meta)
	}

	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, domain.ErrAccountInactive
	}

	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("login: record login: %w", err)
	}
	user.LoginAttempts = 0
	user.LockedUntil = nil
	user.LastLogin = &now

	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.EventLoginSucceeded, user.ID, user.Email, in.Meta)
	s.log.Info().Str("user_id", user.ID).Str("session_id", result.SessionID).Msg("user logged in")

	return result, nil
}

// failLogin counts a bad password and locks the account once the limit is hit.
func (s *AuthService) failLogin(ctx context.Context, user *domain.User, now time.Time, meta ports.RequestMeta) error {
	// A lapsed lockout starts a fresh window.
	if user.LockedUntil != nil {
		if err := s.users.ResetLoginAttempts(ctx, user.ID); err != nil {
			return fmt.Errorf("login: reset attempts: %w", err)
		}
	}

	attempts, err := s.users.IncrementLoginAttempts(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("login: record failure: %w", err)
	}
	s.record(domain.EventLoginFailed, user.ID, user.Email, meta)

	if attempts < s.cfg.MaxLoginAttempts {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return domain.ErrInvalidCredentials
	}

	until := now.Add(s.cfg.LockoutDuration)
	if err := s.users.LockUntil(ctx, user.ID, until); err != nil {
		return fmt.Errorf("login: lock account: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues("locked").Inc()
	metrics.AccountLockoutsTotal.Inc()
	s.record(domain.EventAccountLocked, user.ID, user.Email, meta)
	s.log.Warn().Str("user_id", user.ID).Time("locked_until", until).Int("attempts", attempts).Msg("account locked")

	return domain.ErrAccountLocked
}

// Logout deletes the session. Logging out of an unknown session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string, meta ports.RequestMeta) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("logout: %w", err)
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: delete session: %w", err)
	}

	metrics.SessionsRevokedTotal.Inc()
	s.record(domain.EventLoggedOut, sess.UserID, sess.Email, meta)
	s.log.Info().Str("user_id", sess.UserID).Str("session_id", sessionID).Msg("user logged out")
	return nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta ports.RequestMeta) (*ports.RefreshResult, error) {
	claims, err := s.tokens.Parse(refreshToken, TokenRefresh)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("invalid_token").Inc()
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("session_missing").Inc()
		return nil, err
	}
	if sess.UserID != claims.Subject {
		metrics.TokenRefreshTotal.WithLabelValues("invalid_token").Inc()
		return nil, fmt.Errorf("%w: session owner mismatch", domain.ErrInvalidToken)
	}

	user, err := s.CurrentUser(ctx, claims.Subject)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("rejected").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", domain.ErrInvalidToken)
		}
		return nil, err
	}

	access, exp, err := s.tokens.IssueAccess(user, sess.ID)
	if err != nil {
		return nil, err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	s.record(domain.EventTokenRefreshed, user.ID, user.Email, meta)
	return &ports.RefreshResult{AccessToken: access, AccessExpiresAt: exp}, nil
}

// CurrentUser loads an account that is allowed to use the API right now.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	if user.IsLocked(s.now()) {
		return nil, domain.ErrAccountLocked
	}
	return user, nil
}

func (s *AuthService) Session(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string, meta ports.RequestMeta) error {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrIncorrectPassword
	}
	if err := ValidatePassword(next, s.cfg.PasswordMinLength); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash), s.now()); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.record(domain.EventPasswordChange, user.ID, user.Email, meta)
	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// lookup prefers email over phone, matching the login form.
func (s *AuthService) lookup(ctx context.Context, email, phone string) (*domain.User, error) {
	email = normalizeEmail(email)
	phone = domain.NormalizePhone(phone)
	switch {
	case email != "":
		return s.users.FindByEmail(ctx, email)
	case phone != "":
		return s.users.FindByPhone(ctx, phone)
	default:
		return nil, domain.ErrIdentifierRequired
	}
}

func (s *AuthService) startSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	sid := uuid.NewString()

	access, accessExp, err := s.tokens.IssueAccess(user, sid)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.IssueRefresh(user.ID, sid)
	if err != nil {
		return nil, err
	}

	sess := domain.Session{
		ID:        sid,
		UserID:    user.ID,
		Email:     user.Email,
		Roles:     user.Roles,
		CreatedAt: s.now(),
		ExpiresAt: refreshExp,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &ports.AuthResult{
		Tokens: ports.TokenPair{
			AccessToken:      access,
			RefreshToken:     refresh,
			AccessExpiresAt:  accessExp,
			RefreshExpiresAt: refreshExp,
		},
		User:       user,
		SessionID:  sid,
		RedirectTo: domain.HomeRoute(user.Roles),
	}, nil
}

func (s *AuthService) record(kind domain.AuthEventKind, userID, email string, meta ports.RequestMeta) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		UserID:    userID,
		Email:     email,
		Kind:      kind,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		At:        s.now(),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
