package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/security"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

const (
	otpLength = 4
	otpTTL    = 5 * time.Minute
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// UserRepository persists user accounts.
type UserRepository interface {
	GetByPhoneHash(ctx context.Context, phoneHash string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	TouchLogin(ctx context.Context, userID string, at time.Time) error
}

// OTPSender delivers a one-time code to a phone number. The default sender
// only logs the code; a real SMS gateway slots in behind this interface.
type OTPSender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogOTPSender writes the code to the application log instead of sending SMS.
type LogOTPSender struct {
	Logger *zap.Logger
}

func (s *LogOTPSender) Send(_ context.Context, phone, code string) error {
	s.Logger.Info("OTP issued",
		zap.String("phone_suffix", phoneSuffix(phone)),
		zap.String("code", code),
	)
	return nil
}

type pendingOTP struct {
	code      string
	expiresAt time.Time
}

// AuthService implements phone + OTP login with JWT sessions. Pending codes
// live in memory; restarting the server invalidates them.
type AuthService struct {
	users     UserRepository
	sender    OTPSender
	encryptor *security.Encryptor
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger

	mu      sync.Mutex
	pending map[string]pendingOTP
	now     func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserRepository, sender OTPSender, encryptor *security.Encryptor, jwtSecret []byte, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		sender:    sender,
		encryptor: encryptor,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		pending:   make(map[string]pendingOTP),
		now:       time.Now,
	}
}

// RequestOTP generates a one-time code for the phone number and hands it to
// the sender. Requesting again replaces the previous code.
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("phone must be 10 digits")
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	s.mu.Lock()
	s.pending[phone] = pendingOTP{code: code, expiresAt: s.now().Add(otpTTL)}
	s.mu.Unlock()

	if err := s.sender.Send(ctx, phone, code); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// VerifyOTP checks the code, creates the account on first login and returns
// a signed session token.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (string, *model.User, error) {
	s.mu.Lock()
	entry, ok := s.pending[phone]
	if ok {
		delete(s.pending, phone)
	}
	s.mu.Unlock()

	if !ok || entry.code != code || s.now().After(entry.expiresAt) {
		return "", nil, ErrInvalidOTP
	}

	user, err := s.findOrCreateUser(ctx, phone)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.users.TouchLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("failed to record login time",
			zap.Error(err),
			zap.String("user_id", user.ID),
		)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("phone_suffix", phoneSuffix(phone)),
	)
	return token, user, nil
}

// ParseToken validates a session token and returns the user ID it carries.
func (s *AuthService) ParseToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

func (s *AuthService) findOrCreateUser(ctx context.Context, phone string) (*model.User, error) {
	hash := hashPhone(phone)

	user, err := s.users.GetByPhoneHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	encrypted, err := s.encryptor.Encrypt(phone)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone: %w", err)
	}

	user = &model.User{
		ID:             uuid.New().String(),
		PhoneEncrypted: encrypted,
		PhoneHash:      hash,
		Language:       "en",
		CreatedAt:      s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user account created", zap.String("user_id", user.ID))
	return user, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func generateOTP() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < otpLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpLength, n), nil
}

func hashPhone(phone string) string {
	sum := sha256.Sum256([]byte(phone))
	return hex.EncodeToString(sum[:])
}

func phoneSuffix(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return phone[len(phone)-4:]
}
