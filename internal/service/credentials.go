package service

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier compares a stored credential against a supplied
// password. The store currently holds plaintext passwords; keeping the
// comparison behind this interface lets a hashing scheme replace it without
// touching the auth flow.
type CredentialVerifier interface {
	Verify(stored, supplied string) bool
}

// PlaintextVerifier matches the legacy store format: exact string comparison.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, supplied string) bool {
	return stored != "" && stored == supplied
}

// BcryptVerifier treats the stored credential as a bcrypt hash.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// VerifierForScheme maps a config scheme name to a verifier, defaulting to
// plaintext for unknown values.
func VerifierForScheme(scheme string) CredentialVerifier {
	if scheme == "bcrypt" {
		return BcryptVerifier{}
	}
	return PlaintextVerifier{}
}
