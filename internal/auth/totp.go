package auth

import (
	"fmt"

	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/db/models"
)

// totpIssuer is the issuer shown in authenticator apps.
const totpIssuer = "VolunteerHub"

// EnrollTOTP generates a new TOTP secret for a user and persists it.
// It returns the otpauth:// provisioning URL for the authenticator app.
func EnrollTOTP(db *gorm.DB, user *models.User) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Username,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate totp secret: %w", err)
	}

	if err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("totp_secret", key.Secret()).Error; err != nil {
		return "", fmt.Errorf("failed to store totp secret: %w", err)
	}

	user.TOTPSecret = key.Secret()

	return key.URL(), nil
}

// DisableTOTP removes a user's second factor.
func DisableTOTP(db *gorm.DB, userID uint64) error {
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("totp_secret", "").Error
}

// VerifyTOTP validates a one-time code against the user's enrolled secret.
func VerifyTOTP(user *models.User, code string) error {
	if user.TOTPSecret == "" {
		return ErrTOTPNotEnrolled
	}

	if code == "" || !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	return nil
}
