package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/auth"
	"taskboard/internal/identity"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	minPasswordLength    = 6
	maxNameLength        = 100
	confirmationCodeTTL  = 20 * time.Minute
	confirmationCodeSize = 6
)

// ConfirmationSender mails the code that confirms an address.
type ConfirmationSender interface {
	SendConfirmationCode(ctx context.Context, to, code string, expires time.Duration) error
}

type TokenSettings struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Session is the token pair handed out by Login and Refresh.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
	User         *model.User
}

type UserService struct {
	store  repository.Store
	people *identity.Directory
	mailer ConfirmationSender
	tokens TokenSettings
	now    func() time.Time
}

func NewUserService(store repository.Store, people *identity.Directory, mailer ConfirmationSender, tokens TokenSettings) *UserService {
	return &UserService{
		store:  store,
		people: people,
		mailer: mailer,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register creates an unconfirmed account and mails its confirmation code.
// Registering an address that is still unconfirmed sends a fresh code.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	code, err := newConfirmationCode()
	if err != nil {
		return nil, err
	}
	expires := s.now().UTC().Add(confirmationCodeTTL)

	var user *model.User
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil && existing.EmailConfirmed {
			return fmt.Errorf("%w: user already exists", ErrValidation)
		}

		if existing != nil {
			user = existing
			user.ConfirmationCode = code
			user.ConfirmationCodeExpiresAt = &expires
			if err := tx.Users().Update(ctx, user); err != nil {
				return err
			}
		} else {
			hashed, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			user = &model.User{
				ID:                        uuid.New(),
				Email:                     email,
				HashedPassword:            hashed,
				Name:                      name,
				ConfirmationCode:          code,
				ConfirmationCodeExpiresAt: &expires,
			}
			if err := tx.Users().Create(ctx, user); err != nil {
				return err
			}
		}

		if err := s.mailer.SendConfirmationCode(ctx, email, code, confirmationCodeTTL); err != nil {
			return fmt.Errorf("send confirmation code: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("user_id", user.ID).Info("user registered, awaiting email confirmation")
	return user, nil
}

// ConfirmEmail marks the address confirmed when code matches the latest
// unexpired code sent to it.
func (s *UserService) ConfirmEmail(ctx context.Context, email, code string) error {
	invalid := fmt.Errorf("%w: invalid or expired confirmation code", ErrValidation)

	user, err := s.store.Users().FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return invalid
	}
	if user.EmailConfirmed {
		return nil
	}
	if user.ConfirmationCode == "" || user.ConfirmationCodeExpiresAt == nil ||
		!s.now().Before(*user.ConfirmationCodeExpiresAt) ||
		subtle.ConstantTimeCompare([]byte(user.ConfirmationCode), []byte(strings.TrimSpace(code))) != 1 {
		return invalid
	}

	user.EmailConfirmed = true
	user.ConfirmationCode = ""
	user.ConfirmationCodeExpiresAt = nil
	if err := s.store.Users().Update(ctx, user); err != nil {
		return err
	}

	log.WithField("user_id", user.ID).Info("email confirmed")
	return nil
}

// Login checks the credentials and opens a session.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.store.Users().FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.EmailConfirmed {
		return nil, fmt.Errorf("%w: please confirm your email address before logging in", ErrValidation)
	}

	return s.openSession(ctx, s.store, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A token can be used once.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	invalid := fmt.Errorf("%w: invalid refresh token", ErrInvalidCredentials)

	userID, tokenID, err := auth.ParseRefreshToken(s.tokens.Secret, refreshToken)
	if err != nil {
		return nil, invalid
	}

	var session *Session
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		stored, err := tx.RefreshTokens().GetByID(ctx, tokenID)
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return invalid
		}
		if err != nil {
			return err
		}
		if stored.UserID != userID || stored.Expired(s.now()) {
			return invalid
		}

		if err := tx.RefreshTokens().Delete(ctx, tokenID); err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return invalid
			}
			return err
		}
		user, err := tx.Users().GetByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return invalid
		}
		if err != nil {
			return err
		}

		session, err = s.openSession(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Revoke drops every refresh token of the user. Access tokens already
// issued stay valid until they expire.
func (s *UserService) Revoke(ctx context.Context, userID uuid.UUID) error {
	n, err := s.store.RefreshTokens().DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "revoked": n}).Info("refresh tokens revoked")
	return nil
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.store.Users().GetByID(ctx, userID)
}

// UpdateProfile changes the display name. Later audit entries use the new
// name right away.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Name == name {
		return user, nil
	}

	user.Name = name
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	s.people.Forget(userID)
	return user, nil
}

func (s *UserService) openSession(ctx context.Context, store repository.Store, user *model.User) (*Session, error) {
	now := s.now().UTC()
	record := &model.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokens.RefreshTTL),
		CreatedAt: now,
	}
	if err := store.RefreshTokens().Create(ctx, record); err != nil {
		return nil, err
	}

	access, err := auth.GenerateToken(s.tokens.Secret, user.ID, s.tokens.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(s.tokens.Secret, user.ID, record.ID, s.tokens.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.tokens.AccessTTL,
		User:         user,
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name cannot exceed %d characters", ErrValidation, maxNameLength)
	}
	return nil
}

// newConfirmationCode returns a random six-digit code.
func newConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	return fmt.Sprintf("%0*d", confirmationCodeSize, n.Int64()), nil
}
