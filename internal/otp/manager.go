package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/example/grama/internal/models"
	"github.com/example/grama/internal/utils"
)

const maxVerifyAttempts = 3

// Receipt acknowledges an issued challenge. Code is the plaintext
// verification code; callers must only expose it in development mode.
type Receipt struct {
	Phone       string
	Code        string
	ExpiresAt   time.Time
	ResendCount int
}

// Manager drives the challenge state machine for each phone number:
// no challenge -> pending -> consumed | expired | superseded. A superseding
// resend starts a fresh pending challenge in the same lineage.
type Manager struct {
	repo       ChallengeRepository
	users      UserDirectory
	sender     Sender
	ttl        time.Duration
	maxResends int

	now func() time.Time
}

// NewManager constructs a Manager. ttl is the challenge validity window,
// maxResends caps resends within one challenge lineage.
func NewManager(repo ChallengeRepository, users UserDirectory, sender Sender, ttl time.Duration, maxResends int) *Manager {
	return &Manager{
		repo:       repo,
		users:      users,
		sender:     sender,
		ttl:        ttl,
		maxResends: maxResends,
		now:        time.Now,
	}
}

// RequestChallenge starts a fresh challenge lineage for the phone number.
// Any prior unconsumed challenge is superseded.
func (m *Manager) RequestChallenge(phone string) (*Receipt, error) {
	if !ValidPhone(phone) {
		return nil, ErrInvalidPhoneFormat
	}
	return m.issue(phone, 0)
}

// ResendChallenge supersedes the current challenge with a new one and
// increments the lineage's persisted resend counter.
func (m *Manager) ResendChallenge(phone string) (*Receipt, error) {
	if !ValidPhone(phone) {
		return nil, ErrInvalidPhoneFormat
	}

	prev, err := m.repo.Latest(phone)
	if err != nil {
		return nil, err
	}

	resendCount := 1
	if prev != nil {
		if prev.ResendCount >= m.maxResends {
			return nil, ErrRetryLimitExceeded
		}
		resendCount = prev.ResendCount + 1
	}

	return m.issue(phone, resendCount)
}

// VerifyChallenge checks a submitted code against the active challenge.
// Expiry is evaluated before the code match. On success the challenge is
// consumed (single use) and the associated account is returned, created on
// first verify with the customer role.
func (m *Manager) VerifyChallenge(phone, code string) (*models.User, error) {
	if !ValidPhone(phone) {
		return nil, ErrInvalidPhoneFormat
	}

	challenge, err := m.repo.Latest(phone)
	if err != nil {
		return nil, err
	}
	if challenge == nil || !challenge.Active(m.now()) {
		return nil, ErrNoActiveChallenge
	}

	if challenge.Attempts >= maxVerifyAttempts {
		return nil, ErrRetryLimitExceeded
	}

	if !utils.CheckOTP(challenge.CodeHash, code) {
		challenge.Attempts++
		if err := m.repo.Save(challenge); err != nil {
			return nil, err
		}
		return nil, ErrCodeMismatch
	}

	consumedAt := m.now()
	challenge.ConsumedAt = &consumedAt
	if err := m.repo.Save(challenge); err != nil {
		return nil, err
	}

	return m.users.FindOrCreateByPhone(phone)
}

func (m *Manager) issue(phone string, resendCount int) (*Receipt, error) {
	prev, err := m.repo.Latest(phone)
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.ConsumedAt == nil {
		prev.Superseded = true
		if err := m.repo.Save(prev); err != nil {
			return nil, err
		}
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	codeHash, err := utils.HashOTP(code)
	if err != nil {
		return nil, err
	}

	challenge := &models.OTPChallenge{
		Phone:       phone,
		CodeHash:    codeHash,
		ExpiresAt:   m.now().Add(m.ttl),
		ResendCount: resendCount,
	}
	if err := m.repo.Create(challenge); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your Grama Groceries OTP is %s. Valid for %d minutes.", code, int(m.ttl.Minutes()))
	if err := m.sender.Send(phone, message); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return &Receipt{
		Phone:       phone,
		Code:        code,
		ExpiresAt:   challenge.ExpiresAt,
		ResendCount: resendCount,
	}, nil
}

func generateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
