package utils

import "golang.org/x/crypto/bcrypt"

// HashOTP returns a bcrypt hash of the verification code so codes are never
// stored in plaintext.
func HashOTP(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckOTP compares a hashed verification code with a submitted code.
func CheckOTP(hashedCode, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(code)) == nil
}
