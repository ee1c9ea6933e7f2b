package otp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/grama/internal/models"
)

type memChallengeRepo struct {
	challenges []*models.OTPChallenge
}

func (r *memChallengeRepo) Latest(phone string) (*models.OTPChallenge, error) {
	for i := len(r.challenges) - 1; i >= 0; i-- {
		if r.challenges[i].Phone == phone && !r.challenges[i].Superseded {
			return r.challenges[i], nil
		}
	}
	return nil, nil
}

func (r *memChallengeRepo) Create(challenge *models.OTPChallenge) error {
	r.challenges = append(r.challenges, challenge)
	return nil
}

func (r *memChallengeRepo) Save(challenge *models.OTPChallenge) error {
	return nil
}

type memUserDirectory struct {
	users map[string]*models.User
}

func (d *memUserDirectory) FindOrCreateByPhone(phone string) (*models.User, error) {
	if d.users == nil {
		d.users = make(map[string]*models.User)
	}
	if user, ok := d.users[phone]; ok {
		return user, nil
	}
	user := &models.User{
		Phone:           phone,
		FirstName:       "User",
		LastName:        phone[len(phone)-4:],
		IsPhoneVerified: true,
		Role:            models.RoleCustomer,
	}
	d.users[phone] = user
	return user, nil
}

type recordingSender struct {
	messages []string
	fail     error
}

func (s *recordingSender) Send(phone, message string) error {
	if s.fail != nil {
		return s.fail
	}
	s.messages = append(s.messages, message)
	return nil
}

func newTestManager() (*Manager, *memChallengeRepo, *recordingSender) {
	repo := &memChallengeRepo{}
	sender := &recordingSender{}
	m := NewManager(repo, &memUserDirectory{}, sender, 5*time.Minute, 3)
	return m, repo, sender
}

const testPhone = "9876543210"

func TestRequestChallengeInvalidPhone(t *testing.T) {
	m, repo, sender := newTestManager()

	for _, phone := range []string{"", "12345", "5876543210", "98765432101", "98765abc10"} {
		receipt, err := m.RequestChallenge(phone)
		assert.ErrorIs(t, err, ErrInvalidPhoneFormat, "phone %q", phone)
		assert.Nil(t, receipt)
	}

	assert.Empty(t, repo.challenges)
	assert.Empty(t, sender.messages)
}

func TestRequestAndVerify(t *testing.T) {
	m, _, sender := newTestManager()

	receipt, err := m.RequestChallenge(testPhone)
	assert.NoError(t, err)
	assert.Len(t, receipt.Code, 6)
	assert.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], receipt.Code)

	user, err := m.VerifyChallenge(testPhone, receipt.Code)
	assert.NoError(t, err)
	assert.Equal(t, testPhone, user.Phone)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, "3210", user.LastName)
	assert.True(t, user.IsPhoneVerified)

	// Challenges are single use.
	_, err = m.VerifyChallenge(testPhone, receipt.Code)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestVerifyCodeMismatch(t *testing.T) {
	m, _, _ := newTestManager()

	receipt, err := m.RequestChallenge(testPhone)
	assert.NoError(t, err)

	wrong := "000000"
	if receipt.Code == wrong {
		wrong = "000001"
	}

	_, err = m.VerifyChallenge(testPhone, wrong)
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// A mismatch does not consume the challenge.
	user, err := m.VerifyChallenge(testPhone, receipt.Code)
	assert.NoError(t, err)
	assert.Equal(t, testPhone, user.Phone)
}

func TestVerifyWithoutChallenge(t *testing.T) {
	m, _, _ := newTestManager()

	_, err := m.VerifyChallenge(testPhone, "123456")
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestVerifyExpiredChallenge(t *testing.T) {
	m, _, _ := newTestManager()

	base := time.Now()
	m.now = func() time.Time { return base }

	receipt, err := m.RequestChallenge(testPhone)
	assert.NoError(t, err)

	m.now = func() time.Time { return base.Add(5*time.Minute + time.Second) }

	_, err = m.VerifyChallenge(testPhone, receipt.Code)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestVerifyAttemptLimit(t *testing.T) {
	m, _, _ := newTestManager()

	receipt, err := m.RequestChallenge(testPhone)
	assert.NoError(t, err)

	wrong := "000000"
	if receipt.Code == wrong {
		wrong = "000001"
	}

	for i := 0; i < 3; i++ {
		_, err = m.VerifyChallenge(testPhone, wrong)
		assert.ErrorIs(t, err, ErrCodeMismatch)
	}

	// Even the correct code is rejected once the attempt budget is spent.
	_, err = m.VerifyChallenge(testPhone, receipt.Code)
	assert.ErrorIs(t, err, ErrRetryLimitExceeded)
}

func TestResendSupersedes(t *testing.T) {
	m, repo, _ := newTestManager()

	first, err := m.RequestChallenge(testPhone)
	assert.NoError(t, err)
	assert.Equal(t, 0, first.ResendCount)

	second, err := m.ResendChallenge(testPhone)
	assert.NoError(t, err)
	assert.Equal(t, 1, second.ResendCount)

	assert.Len(t, repo.challenges, 2)
	assert.True(t, repo.challenges[0].Superseded)
	assert.False(t, repo.challenges[1].Superseded)

	user, err := m.VerifyChallenge(testPhone, second.Code)
	assert.NoError(t, err)
	assert.Equal(t, testPhone, user.Phone)
}

func TestResendRetryLimit(t *testing.T) {
	m, _, _ := newTestManager()

	_, err := m.RequestChallenge(testPhone)
	assert.NoError(t, err)

	for i := 1; i <= 3; i++ {
		receipt, err := m.ResendChallenge(testPhone)
		assert.NoError(t, err)
		assert.Equal(t, i, receipt.ResendCount)
	}

	_, err = m.ResendChallenge(testPhone)
	assert.ErrorIs(t, err, ErrRetryLimitExceeded)
}

func TestRequestDeliveryFailure(t *testing.T) {
	m, _, sender := newTestManager()
	sender.fail = errors.New("gateway timeout")

	_, err := m.RequestChallenge(testPhone)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}
