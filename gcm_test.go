package aesni

import (
	"crypto/rand"
	"testing"

	"github.com/project-naive/aesni/internal/ref"
)

// TestGCMMul tests the field multiplication against GHASH values from
// the GCM submission's test case 2: H is the cipher of the zero block
// under the zero key and X the first ciphertext block.
func TestGCMMul(t *testing.T) {
	var s Schedule
	if err := s.Expand(make([]byte, 16)); err != nil {
		t.Fatal(err)
	}
	var h, zero [BlockSize]byte
	CryptBlock(Encrypt, &s, &h, &zero)
	if want := [BlockSize]byte(unhex("66e94bd4ef8a2c3b884cfa59ca342b2e")); h != want {
		t.Fatalf("expected %#x, got %#x", want, h)
	}

	x := [BlockSize]byte(unhex("0388dace60b6a392f328c2b971b2fe78"))
	want := [BlockSize]byte(unhex("5e2ec746917062882c85b0685353deb7"))
	var got [BlockSize]byte
	GCMMul(&got, &x, &h)
	if got != want {
		t.Fatalf("expected %#x, got %#x", want, got)
	}
	GCMMul(&got, &h, &x)
	if got != want {
		t.Fatalf("expected %#x, got %#x", want, got)
	}
	// In place, overwriting the left operand.
	GCMMul(&x, &x, &h)
	if x != want {
		t.Fatalf("expected %#x, got %#x", want, x)
	}
}

// TestGCMMulIdentities tests the zero element and the multiplicative
// identity, the element with only its first bit set.
func TestGCMMulIdentities(t *testing.T) {
	var x, zero, got [BlockSize]byte
	if _, err := rand.Read(x[:]); err != nil {
		t.Fatal(err)
	}
	one := [BlockSize]byte{0x80}
	GCMMul(&got, &one, &x)
	if got != x {
		t.Fatalf("expected %#x, got %#x", x, got)
	}
	GCMMul(&got, &zero, &x)
	if got != zero {
		t.Fatalf("expected %#x, got %#x", zero, got)
	}
}

// TestGCMMulRef checks the carry-less pipeline against a bit-serial
// multiply.
func TestGCMMulRef(t *testing.T) {
	var a, b [BlockSize]byte
	for i := 0; i < 200; i++ {
		if _, err := rand.Read(a[:]); err != nil {
			t.Fatal(err)
		}
		if _, err := rand.Read(b[:]); err != nil {
			t.Fatal(err)
		}
		want := ref.GHashMul(a, b)
		var got [BlockSize]byte
		GCMMul(&got, &a, &b)
		if got != want {
			t.Fatalf("%#x * %#x: expected %#x, got %#x", a, b, want, got)
		}
		GCMMul(&got, &b, &a)
		if got != want {
			t.Fatalf("%#x * %#x: expected %#x, got %#x", b, a, want, got)
		}
	}
}

func BenchmarkGCMMul(b *testing.B) {
	var x [BlockSize]byte
	if _, err := rand.Read(x[:]); err != nil {
		b.Fatal(err)
	}
	h := x
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GCMMul(&x, &x, &h)
	}
}
