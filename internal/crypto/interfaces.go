package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_verifier_mock.go -package=mock

// PasswordVerifier checks plaintext passwords against stored salted hashes.
//
// It knows nothing about principals, stores or tokens; it only compares and
// produces hashes. The comparison time does not depend on how many leading
// bytes of the derived key match.
type PasswordVerifier interface {
	// Verify reports whether plaintext matches hash.
	// A mismatch is (false, nil). A hash that cannot be parsed is
	// (false, ErrCorruptCredential) and must be surfaced as a server error,
	// not as a failed login.
	Verify(plaintext, hash string) (bool, error)

	// Hash derives a new salted hash for plaintext. Two calls with the same
	// input return different hashes.
	Hash(plaintext string) (string, error)

	// VerifyDummy spends roughly the same time as a real Verify. It is used
	// when the principal does not exist so the response time does not reveal
	// whether a username is registered.
	VerifyDummy(plaintext string)
}
