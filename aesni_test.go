package aesni

import "testing"

// TestHasSupport tests the capability predicate.
func TestHasSupport(t *testing.T) {
	aes := HasSupport(AES)
	clmul := HasSupport(CLMUL)
	t.Logf("aes=%t clmul=%t", aes, clmul)

	if HasSupport(AES) != aes || HasSupport(CLMUL) != clmul {
		t.Fatal("capability probe not stable")
	}
	if features != detect() {
		t.Fatal("capability probe not deterministic")
	}
	// A mask is supported when any of its bits is.
	if got, want := HasSupport(AES|CLMUL), aes || clmul; got != want {
		t.Fatalf("expected %t, got %t", want, got)
	}
	if HasSupport(0) {
		t.Fatal("empty capability mask reported supported")
	}
}
