package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/choppersalon/platform/internal/observability/metrics"
	"github.com/choppersalon/platform/pkg/logging"
)

const (
	msgEmailTaken         = "Email already registered"
	msgInvalidCredentials = "Invalid email or password"
	msgRegistered         = "Registration successful"
	msgLoggedIn           = "Login successful"
)

// LegacyCredentials are the env-configured fallback values from the old
// token-based scheme. A login matching them when no record exists migrates
// them into the credential store.
type LegacyCredentials struct {
	Email    string
	Password string
}

// Service implements register/login/logout over a credential repository and
// a session store.
type Service struct {
	repo     Repository
	sessions *SessionStore
	legacy   LegacyCredentials
	latency  time.Duration
	metrics  *metrics.SalonMetrics
	logger   *logging.Logger
}

// NewService constructs an auth service. latency is the fixed simulated
// delay applied before register and login resolve.
func NewService(repo Repository, sessions *SessionStore, legacy LegacyCredentials, latency time.Duration, m *metrics.SalonMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("auth: repository required")
	}
	if sessions == nil {
		panic("auth: session store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:     repo,
		sessions: sessions,
		legacy:   legacy,
		latency:  latency,
		metrics:  m,
		logger:   logger.Component("auth"),
	}
}

// simulateLatency blocks for the configured delay. Concurrent calls are not
// coordinated; the last session write wins.
func (s *Service) simulateLatency() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

// Register creates a credential record and establishes a session for the new
// user. A duplicate email fails without altering the store.
func (s *Service) Register(ctx context.Context, sessionID string, req RegisterRequest) (Result, *Session, error) {
	s.simulateLatency()

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		s.metrics.ObserveAuthAttempt("register", "duplicate_email")
		return Result{Success: false, Message: msgEmailTaken}, nil, nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return Result{}, nil, err
	}

	cred := &Credential{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := s.repo.Insert(ctx, cred); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			s.metrics.ObserveAuthAttempt("register", "duplicate_email")
			return Result{Success: false, Message: msgEmailTaken}, nil, nil
		}
		return Result{}, nil, err
	}

	user := cred.User()
	sess := &Session{IsAuthenticated: true, User: &user}
	if err := s.sessions.Put(ctx, sessionID, sess); err != nil {
		return Result{}, nil, err
	}

	s.metrics.ObserveAuthAttempt("register", "success")
	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return Result{Success: true, Message: msgRegistered}, sess, nil
}

// Login establishes a session when a stored record matches email+password
// exactly.
func (s *Service) Login(ctx context.Context, sessionID string, req LoginRequest) (Result, *Session, error) {
	s.simulateLatency()

	cred, err := s.repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if cred.Password != req.Password {
			s.metrics.ObserveAuthAttempt("login", "invalid_credentials")
			return Result{Success: false, Message: msgInvalidCredentials}, nil, nil
		}
	case errors.Is(err, ErrUserNotFound):
		cred, err = s.migrateLegacy(ctx, req)
		if err != nil {
			return Result{}, nil, err
		}
		if cred == nil {
			s.metrics.ObserveAuthAttempt("login", "invalid_credentials")
			return Result{Success: false, Message: msgInvalidCredentials}, nil, nil
		}
	default:
		return Result{}, nil, err
	}

	user := cred.User()
	sess := &Session{IsAuthenticated: true, User: &user}
	if err := s.sessions.Put(ctx, sessionID, sess); err != nil {
		return Result{}, nil, err
	}

	s.metrics.ObserveAuthAttempt("login", "success")
	s.logger.Info("user logged in", "user_id", user.ID)
	return Result{Success: true, Message: msgLoggedIn}, sess, nil
}

// migrateLegacy handles the one-time migration path: a login matching the
// env-configured fallback pair is promoted to a real credential record.
// Returns nil when the pair does not match.
func (s *Service) migrateLegacy(ctx context.Context, req LoginRequest) (*Credential, error) {
	if s.legacy.Email == "" || req.Email != s.legacy.Email || req.Password != s.legacy.Password {
		return nil, nil
	}
	cred := &Credential{
		ID:       uuid.NewString(),
		Name:     "Salon Owner",
		Email:    s.legacy.Email,
		Password: s.legacy.Password,
	}
	if err := s.repo.Insert(ctx, cred); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// Another login migrated it first; re-read the record.
			return s.repo.GetByEmail(ctx, s.legacy.Email)
		}
		return nil, err
	}
	s.logger.Info("legacy credentials migrated", "email", cred.Email)
	return cred, nil
}

// Logout clears the session. Synchronous, no failure mode beyond storage
// errors.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return err
	}
	s.metrics.ObserveAuthAttempt("logout", "success")
	return nil
}

// Session returns the current session for the id, empty when absent.
func (s *Service) Session(ctx context.Context, sessionID string) (*Session, error) {
	return s.sessions.Get(ctx, sessionID)
}
