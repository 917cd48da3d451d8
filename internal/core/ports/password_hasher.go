package ports

// PasswordHasher produces and verifies one-way password digests. No error
// path: any string input is accepted, including empty.
type PasswordHasher interface {
	// Digest computes the stored form of a plaintext password.
	Digest(plaintext string) string
	// Verify reports whether plaintext matches an account's stored digest.
	Verify(digest, plaintext string) bool
}
