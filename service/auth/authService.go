package authsvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"litera/model"
	mailerrepo "litera/repository/mailer"
	userrepo "litera/repository/user"
	"litera/util/apperr"
	"litera/util/database"
	"litera/util/hash"
	jwtutil "litera/util/jwt"
)

const resetTokenTTL = time.Hour

var (
	ErrEmailTaken   = apperr.New(apperr.ErrConflict, "email already registered")
	ErrBadInput     = apperr.New(apperr.ErrValidation, "bad input")
	ErrInvalidCreds = apperr.New(apperr.ErrUnauthorized, "invalid email or password")
	ErrInvalidToken = apperr.New(apperr.ErrValidation, "invalid or expired token")
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	// ForgotPassword never reports whether the address is registered.
	ForgotPassword(ctx context.Context, email string)
	ResetPassword(ctx context.Context, token, password string) error
	Me(ctx context.Context, userID int64) (*model.User, error)
}

type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	ResetURL  string
	Log       *slog.Logger
	Now       func() time.Time
}

type service struct {
	ur   userrepo.Repo
	mail mailerrepo.Repo
	cfg  Config
}

func New(ur userrepo.Repo, mail mailerrepo.Repo, cfg Config) Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{ur: ur, mail: mail, cfg: cfg}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || len(req.Password) < 6 {
		return nil, "", ErrBadInput
	}

	existing, err := s.ur.ByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, "", ErrEmailTaken
	case err != nil && !errors.Is(err, database.ErrNotFound):
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err, "email") {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := jwtutil.Issue(s.cfg.JWTSecret, u.ID, u.Email, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", ErrBadInput
	}
	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.cfg.JWTSecret, u.ID, u.Email, s.cfg.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) {
	email = normalizeEmail(email)
	u, err := s.ur.ByEmail(ctx, email)
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			s.cfg.Log.ErrorContext(ctx, "forgot password lookup failed", "err", err)
		}
		return
	}

	token := uuid.NewString()
	expiry := s.cfg.Now().Add(resetTokenTTL)
	if err := s.ur.SetResetToken(ctx, u.ID, digest(token), expiry); err != nil {
		s.cfg.Log.ErrorContext(ctx, "store reset token failed", "user_id", u.ID, "err", err)
		return
	}

	link := s.cfg.ResetURL + "?token=" + url.QueryEscape(token)
	msg := mailerrepo.Message{
		To:      u.Email,
		ToName:  u.Name,
		Subject: "Litera: redefinição de senha",
		Text: fmt.Sprintf("Olá %s,\n\nPara redefinir sua senha acesse:\n%s\n\nO link expira em 1 hora.\n",
			u.Name, link),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.cfg.Log.ErrorContext(ctx, "send reset email failed", "user_id", u.ID, "err", err)
	}
}

func (s *service) ResetPassword(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}
	if len(password) < 6 {
		return ErrBadInput
	}
	u, err := s.ur.ByResetToken(ctx, digest(token), s.cfg.Now())
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}
	hashed, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.ur.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.New(apperr.ErrUnauthorized, "user no longer exists")
		}
		return nil, err
	}
	return u, nil
}

// digest is what gets stored for reset tokens; the raw token only travels by email.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
