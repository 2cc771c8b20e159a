package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/solvely-pub/internal/logging"
	"github.com/iliyamo/solvely-pub/internal/queue"
	"github.com/iliyamo/solvely-pub/internal/repository"
	"github.com/iliyamo/solvely-pub/internal/utils"
)

var (
	// ErrUserNotFound: no live user has the submitted username.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch: the submitted password does not encrypt to the stored pwd.
	ErrPasswordMismatch = errors.New("password error")
)

// LoginRequest is the input of AuthService.Login.  RemoteIP and RequestID
// only feed the audit event.
type LoginRequest struct {
	Username  string
	Password  string
	RemoteIP  string
	RequestID string
}

// UserInfo is the profile exposed to an authenticated caller.
type UserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthService verifies credentials and issues tokens.
//
// Passwords are compared by re-encrypting the submitted value under the
// user's salt and matching the stored ciphertext exactly.  The scheme is
// reversible; it is kept because stored pwd values depend on it.
type AuthService struct {
	Users  UserRepository
	Cipher CipherService
	Tokens TokenService
	Events EventPublisher
	Now    func() time.Time
}

func NewAuthService(users UserRepository, cipher CipherService, tokens TokenService, events EventPublisher) *AuthService {
	if users == nil || cipher == nil || tokens == nil {
		panic("nil dependency passed to NewAuthService")
	}
	if events == nil {
		events = NopPublisher{}
	}
	return &AuthService{Users: users, Cipher: cipher, Tokens: tokens, Events: events, Now: time.Now}
}

// Login runs lookup -> password check -> token issue.  It returns
// ErrUserNotFound or ErrPasswordMismatch for rejected credentials; any other
// error is an internal failure.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	token, outcome, err := s.login(ctx, req)
	s.publish(ctx, req, outcome)
	return token, err
}

func (s *AuthService) login(ctx context.Context, req LoginRequest) (string, string, error) {
	log := logging.FromContext(ctx)

	u, err := s.Users.FindByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info().Str("username", req.Username).Msg("login rejected: user not found")
		return "", queue.OutcomeUserNotFound, ErrUserNotFound
	}
	if err != nil {
		return "", queue.OutcomeError, fmt.Errorf("lookup user: %w", err)
	}

	candidate, err := s.Cipher.Encrypt(req.Password, u.Salt)
	if err != nil {
		// The salt is ours, so a bad key size here is a data problem, not user input.
		return "", queue.OutcomeError, fmt.Errorf("encrypt password for %q: %w", u.Username, err)
	}
	if candidate != u.Pwd {
		log.Info().Str("username", req.Username).Msg("login rejected: password error")
		return "", queue.OutcomePasswordFail, ErrPasswordMismatch
	}

	token, err := s.Tokens.Issue(u.Username, u.Email)
	if err != nil {
		return "", queue.OutcomeError, fmt.Errorf("issue token: %w", err)
	}
	log.Info().Str("username", u.Username).Msg("login success")
	return token, queue.OutcomeSuccess, nil
}

func (s *AuthService) publish(ctx context.Context, req LoginRequest, outcome string) {
	ev := queue.LoginEvent{
		Username:  req.Username,
		Outcome:   outcome,
		RemoteIP:  req.RemoteIP,
		RequestID: req.RequestID,
		At:        s.Now().UTC(),
	}
	if err := s.Events.PublishLogin(ctx, ev); err != nil {
		log := logging.FromContext(ctx)
		log.Warn().Err(err).Str("outcome", outcome).Msg("login event not published")
	}
}

// Profile returns the user info carried by verified claims.
func (s *AuthService) Profile(claims utils.Claims) UserInfo {
	return UserInfo{Username: claims.Username, Email: claims.Email}
}
