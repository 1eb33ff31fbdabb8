package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "daytrack.com/daytrack/internal/errors"
	model "daytrack.com/daytrack/internal/models"
	repository "daytrack.com/daytrack/internal/repositories"
)

const minPasswordLength = 6

// Service implements sign-up, sign-in/out and token authentication.
type Service struct {
	users      *repository.UserRepository
	profiles   *repository.ProfileRepository
	sessions   SessionStore
	tokens     *TokenIssuer
	sessionTTL time.Duration
}

func NewService(
	users *repository.UserRepository,
	profiles *repository.ProfileRepository,
	sessions SessionStore,
	tokens *TokenIssuer,
	sessionTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		profiles:   profiles,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

// SignUp creates the credential row and then writes the profile row
// best-effort: a profile failure is logged and the sign-up still succeeds.
func (s *Service) SignUp(ctx context.Context, email, password string, role model.Role) (*model.User, error) {
	if len(password) < minPasswordLength {
		return nil, apperrors.ErrWeakPassword
	}
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		ID:        user.ID,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		log.Printf("signup: profile write failed for user %s: %v", user.ID, err)
	}

	return user, nil
}

// SignIn verifies the credentials, opens a session and returns a signed
// bearer token for it.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Put(ctx, sessionID, user.ID, s.sessionTTL); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, sessionID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Authenticate resolves a bearer token to a user id. The token must carry a
// valid signature and reference a session that is still live.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}

	userID, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", err
	}

	if userID != claims.Subject {
		return "", apperrors.ErrUnauthorized
	}

	return userID, nil
}

// SignOut revokes the session behind the token. An already-expired token is
// not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

// ProfileByID returns nil when no profile row exists; the caller decides
// what a missing profile means for its view.
func (s *Service) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
