package service

import "testing"

func TestSHA256Hasher_KnownVectors(t *testing.T) {
	h := SHA256Hasher{}

	// Digests the legacy registry was built with.
	cases := map[string]string{
		"admin123": "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9",
		"123456":   "ef797c8118f02dfb649607dd5d3f8c7623048c9c063d532cc95c5ed7a898a64f",
	}
	for plaintext, want := range cases {
		if got := h.Digest(plaintext); got != want {
			t.Fatalf("Digest(%q) = %s, want %s", plaintext, got, want)
		}
	}
}

func TestSHA256Hasher_Deterministic(t *testing.T) {
	h := SHA256Hasher{}

	if h.Digest("secret") != h.Digest("secret") {
		t.Fatalf("digest not stable across calls")
	}
	if h.Digest("secret") == h.Digest("Secret") {
		t.Fatalf("distinct inputs produced the same digest")
	}
	if h.Digest("") == "" {
		t.Fatalf("empty input must still digest")
	}
}

func TestSHA256Hasher_Verify(t *testing.T) {
	h := SHA256Hasher{}
	digest := h.Digest("admin123")

	if !h.Verify(digest, "admin123") {
		t.Fatalf("correct password rejected")
	}
	if h.Verify(digest, "admin124") {
		t.Fatalf("wrong password accepted")
	}
	if h.Verify(digest, "") {
		t.Fatalf("empty password accepted")
	}
}

func TestBcryptHasher_Verify(t *testing.T) {
	h := BcryptHasher{}
	digest := h.Digest("s3cret")

	if digest == "" {
		t.Fatalf("bcrypt digest empty")
	}
	if digest == "s3cret" {
		t.Fatalf("digest equals plaintext")
	}
	if !h.Verify(digest, "s3cret") {
		t.Fatalf("correct password rejected")
	}
	if h.Verify(digest, "wrong") {
		t.Fatalf("wrong password accepted")
	}
}

func TestNewHasher(t *testing.T) {
	if _, err := NewHasher(HashSchemeSHA256); err != nil {
		t.Fatalf("sha256 scheme rejected: %v", err)
	}
	if _, err := NewHasher(""); err != nil {
		t.Fatalf("default scheme rejected: %v", err)
	}
	if _, err := NewHasher(HashSchemeBcrypt); err != nil {
		t.Fatalf("bcrypt scheme rejected: %v", err)
	}
	if _, err := NewHasher("md5"); err == nil {
		t.Fatalf("expected error for unknown scheme")
	}
}
