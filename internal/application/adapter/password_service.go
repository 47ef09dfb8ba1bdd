package adapter

// PasswordService hashes and checks account passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns an error when password does not match hashedPassword.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength wraps ErrWeakPassword when password is shorter than
	// eight characters or longer than the 72 bytes the hash can cover.
	ValidatePasswordStrength(password string) error
}
