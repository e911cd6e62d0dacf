package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wafulabr/mentor_connect/models"
)

const resetGrantPurpose = "password_reset"

// CredentialConfig is the secret material and lifetimes injected at
// construction; the service never reads the environment itself.
type CredentialConfig struct {
	JWTSecret     []byte
	SessionTTL    time.Duration
	ResetTokenTTL time.Duration
	ResetGrantTTL time.Duration
	BcryptCost    int
	ResetLinkBase string
}

type CredentialService struct {
	users  UserRepository
	resets PasswordResetRepository
	mailer Mailer
	cfg    CredentialConfig

	// Compared against on unknown-email logins so the miss costs the same
	// bcrypt work as a wrong password.
	dummyHash []byte

	now func() time.Time
}

func NewCredentialService(users UserRepository, resets PasswordResetRepository, mailer Mailer, cfg CredentialConfig) (*CredentialService, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("credential service requires a JWT secret")
	}
	if cfg.BcryptCost < bcrypt.DefaultCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("mentor-connect-decoy"), cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &CredentialService{
		users:     users,
		resets:    resets,
		mailer:    mailer,
		cfg:       cfg,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     string
	Phone    *string

	Specialization  *string
	ExperienceYears *int
	Bio             *string
	HourlyRate      *float64
	Issues          *string
}

// Register creates the account and signs it straight in, returning the
// session token alongside the stored user.
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Role != models.RoleClient && in.Role != models.RoleMentor {
		return nil, "", fmt.Errorf("unsupported role %q", in.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hash),
		Role:     in.Role,
		Phone:    in.Phone,
	}
	switch in.Role {
	case models.RoleMentor:
		user.Specialization = in.Specialization
		user.ExperienceYears = in.ExperienceYears
		user.Bio = in.Bio
		user.HourlyRate = in.HourlyRate
	case models.RoleClient:
		user.Issues = in.Issues
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := s.issueSessionToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate returns ErrInvalidCredentials for unknown email and wrong
// password alike, with matching bcrypt cost on both paths.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueSessionToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *CredentialService) ChangePassword(ctx context.Context, accountID uuid.UUID, current, newPassword, confirmation string) error {
	user, err := s.users.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if newPassword != confirmation {
		return ErrPasswordMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

// RequestPasswordReset never reveals whether the email matched. On a match it
// stores the digest of a fresh secret and mails the raw secret; the returned
// flag reports whether the mail went out, and a failed send does not undo the
// stored token.
func (s *CredentialService) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return false, err
	}
	secret := hex.EncodeToString(secretBytes)

	reset := &models.PasswordReset{
		UserID:    user.ID,
		TokenHash: hashResetSecret(secret),
		ExpiresAt: s.now().Add(s.cfg.ResetTokenTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return false, err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.ResetLinkBase, secret)
	body := fmt.Sprintf("<h1>Password Reset</h1><p>Click the link below to reset your password. This link is valid for %d minutes.</p><p><a href='%s'>Reset Password</a></p>",
		int(s.cfg.ResetTokenTTL.Minutes()), link)
	if err := s.mailer.Send(user.FullName, user.Email, "Your Password Reset Link", body); err != nil {
		log.Printf("warning: reset email to %s failed: %v", user.Email, err)
		return false, nil
	}
	return true, nil
}

// VerifyResetToken trades a valid raw secret for a short-lived reset grant,
// a purpose-scoped JWT the session surface refuses.
func (s *CredentialService) VerifyResetToken(ctx context.Context, rawSecret string) (string, error) {
	reset, err := s.resets.FindActiveByHash(ctx, hashResetSecret(rawSecret), s.now())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidOrExpiredToken
		}
		return "", err
	}

	claims := jwt.MapClaims{
		"user_id":  reset.UserID.String(),
		"reset_id": reset.ID.String(),
		"purpose":  resetGrantPurpose,
		"exp":      s.now().Add(s.cfg.ResetGrantTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
}

// ConsumeResetToken validates the grant, burns the underlying record exactly
// once, and re-hashes the password.
func (s *CredentialService) ConsumeResetToken(ctx context.Context, grantToken, newPassword string) error {
	claims, err := s.parseToken(grantToken)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != resetGrantPurpose {
		return ErrInvalidOrExpiredToken
	}
	resetIDStr, _ := claims["reset_id"].(string)
	resetID, err := uuid.Parse(resetIDStr)
	if err != nil {
		return ErrInvalidOrExpiredToken
	}

	reset, err := s.resets.Consume(ctx, resetID, s.now())
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, reset.UserID, string(hash))
}

func (s *CredentialService) GetProfile(ctx context.Context, accountID uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, accountID)
}

// UpdateProfileInput carries only the editable profile fields; nil means
// leave as is. Role and email are not here, they never change.
type UpdateProfileInput struct {
	FullName *string
	Phone    *string

	Specialization  *string
	ExperienceYears *int
	Bio             *string
	HourlyRate      *float64
	Issues          *string
}

// UpdateProfile applies the provided fields to the account. The attribute
// group matching the account's role is the only one that sticks; a client
// cannot grow mentor fields or vice versa.
func (s *CredentialService) UpdateProfile(ctx context.Context, accountID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		if name := strings.TrimSpace(*in.FullName); name != "" {
			user.FullName = name
		}
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	switch user.Role {
	case models.RoleMentor:
		if in.Specialization != nil {
			user.Specialization = in.Specialization
		}
		if in.ExperienceYears != nil {
			user.ExperienceYears = in.ExperienceYears
		}
		if in.Bio != nil {
			user.Bio = in.Bio
		}
		if in.HourlyRate != nil {
			user.HourlyRate = in.HourlyRate
		}
	case models.RoleClient:
		if in.Issues != nil {
			user.Issues = in.Issues
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *CredentialService) ListMentors(ctx context.Context) ([]models.User, error) {
	return s.users.ListMentors(ctx)
}

func (s *CredentialService) issueSessionToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     s.now().Add(s.cfg.SessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
}

func (s *CredentialService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.cfg.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func hashResetSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
