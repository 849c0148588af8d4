package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/room-booking-service/internal/config"
)

const otpKeyPrefix = "otp:"

// OTPService issues and validates one-time signup codes. Codes live in Redis
// with an explicit TTL, so expiry is handled by the store rather than an
// in-process map.
type OTPService struct {
	client *redis.Client
	logger *zap.Logger
	cfg    config.NotificationConfig
	ttl    time.Duration
}

// NewOTPService constructs the service.
func NewOTPService(client *redis.Client, logger *zap.Logger, cfg config.Config) *OTPService {
	return &OTPService{
		client: client,
		logger: logger,
		cfg:    cfg.Notification,
		ttl:    cfg.Auth.OTPTTL(),
	}
}

// Generate creates a 6-digit code for the email, stores it with TTL, and
// hands it to the email stub for delivery.
func (s *OTPService) Generate(ctx context.Context, email string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, otpKeyPrefix+email, code, s.ttl).Err(); err != nil {
		return "", err
	}

	s.sendOTPEmailStub(email, code)
	return code, nil
}

// Validate checks the submitted code against the stored one. A successful
// validation consumes the code; an expired or missing code fails.
func (s *OTPService) Validate(ctx context.Context, email, code string) (bool, error) {
	key := otpKeyPrefix + email
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("failed to delete used otp", zap.String("email", email), zap.Error(err))
	}
	return true, nil
}

func (s *OTPService) sendOTPEmailStub(email, code string) {
	// Real delivery is out of scope; log what would be sent.
	s.logger.Info("otp email",
		zap.String("from", s.cfg.EmailFrom),
		zap.String("to", email),
		zap.Duration("valid_for", s.ttl))
	_ = code
}

func randomCode() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(buf[:])%1000000), nil
}
