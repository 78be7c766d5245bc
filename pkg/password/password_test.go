package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(4)

	digest, err := h.Hash("s3cretpw")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if digest == "s3cretpw" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !h.Verify("s3cretpw", digest) {
		t.Error("expected correct password to verify")
	}
	if h.Verify("wrongpw", digest) {
		t.Error("expected wrong password to fail")
	}
}

func TestHashesDiffer(t *testing.T) {
	h := NewHasher(4)

	a, err := h.Hash("s3cretpw")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	b, err := h.Hash("s3cretpw")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if a == b {
		t.Error("expected salted hashes to differ")
	}
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	h := NewHasher(99)

	digest, err := h.Hash("s3cretpw")
	if err != nil {
		t.Fatalf("failed to hash with clamped cost: %v", err)
	}
	if !h.Verify("s3cretpw", digest) {
		t.Error("expected verification to succeed")
	}
}
