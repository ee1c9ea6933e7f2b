// Package otp issues, verifies and expires phone verification challenges.
package otp

import (
	"errors"
	"regexp"

	"github.com/example/grama/internal/models"
)

// Challenge lifecycle failures. Handlers map these onto HTTP responses.
var (
	ErrInvalidPhoneFormat = errors.New("invalid phone number format")
	ErrNoActiveChallenge  = errors.New("no active challenge for phone number")
	ErrCodeMismatch       = errors.New("verification code mismatch")
	ErrRetryLimitExceeded = errors.New("retry limit exceeded")
	ErrDeliveryFailed     = errors.New("failed to deliver verification code")
)

// Indian mobile numbers: exactly 10 digits, first digit 6-9.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// ValidPhone reports whether phone is an acceptable mobile number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ChallengeRepository stores challenge rows. Latest returns the newest
// non-superseded challenge for a phone, or nil when none exists.
type ChallengeRepository interface {
	Latest(phone string) (*models.OTPChallenge, error)
	Create(challenge *models.OTPChallenge) error
	Save(challenge *models.OTPChallenge) error
}

// UserDirectory resolves phone numbers to accounts. A verified phone with no
// existing account gets a fresh customer account.
type UserDirectory interface {
	FindOrCreateByPhone(phone string) (*models.User, error)
}

// Sender dispatches the verification message over an external delivery
// channel. Sends may fail transiently.
type Sender interface {
	Send(phone, message string) error
}
