package otp

import (
	"errors"

	"gorm.io/gorm"

	"github.com/example/grama/internal/models"
)

type gormChallengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository returns a ChallengeRepository backed by Postgres.
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &gormChallengeRepository{db: db}
}

func (r *gormChallengeRepository) Latest(phone string) (*models.OTPChallenge, error) {
	var challenge models.OTPChallenge
	err := r.db.Where("phone = ? AND superseded = ?", phone, false).
		Order("created_at desc").
		First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *gormChallengeRepository) Create(challenge *models.OTPChallenge) error {
	return r.db.Create(challenge).Error
}

func (r *gormChallengeRepository) Save(challenge *models.OTPChallenge) error {
	return r.db.Save(challenge).Error
}

type gormUserDirectory struct {
	db *gorm.DB
}

// NewUserDirectory returns a UserDirectory backed by Postgres.
func NewUserDirectory(db *gorm.DB) UserDirectory {
	return &gormUserDirectory{db: db}
}

// FindOrCreateByPhone loads the account for a verified phone number, creating
// a customer account on first verify. New accounts get a placeholder profile
// the shopper can edit later.
func (d *gormUserDirectory) FindOrCreateByPhone(phone string) (*models.User, error) {
	var user models.User
	err := d.db.Where("phone = ?", phone).First(&user).Error
	if err == nil {
		if !user.IsPhoneVerified {
			user.IsPhoneVerified = true
			if err := d.db.Save(&user).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		Phone:           phone,
		FirstName:       "User",
		LastName:        phone[len(phone)-4:],
		IsPhoneVerified: true,
		Role:            models.RoleCustomer,
	}
	if err := d.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
