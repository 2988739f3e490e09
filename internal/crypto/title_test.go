package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func testCodec(t *testing.T) *TitleCodec {
	t.Helper()
	key := bytes.Repeat([]byte{0x42}, 32)
	codec, err := NewTitleCodec(key)
	if err != nil {
		t.Fatalf("NewTitleCodec: %v", err)
	}
	return codec
}

func TestNewTitleCodec_RejectsBadKeyLength(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		if _, err := NewTitleCodec(bytes.Repeat([]byte{1}, n)); err == nil {
			t.Errorf("key of %d bytes must be rejected", n)
		}
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	codec := testCodec(t)

	for _, plain := range []string{
		"write report",
		"позвонить маме",
		"a",
		strings.Repeat("long title ", 50),
		"title:with:colons",
	} {
		stored, err := codec.Encrypt(plain)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plain, err)
		}
		if stored == plain {
			t.Errorf("Encrypt(%q) must differ from plaintext", plain)
		}
		if parts := strings.Split(stored, ":"); len(parts) != 3 {
			t.Fatalf("stored form must be nonce:tag:ciphertext, got %q", stored)
		}

		back, err := codec.Decrypt(stored)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if back != plain {
			t.Errorf("round trip: got %q, want %q", back, plain)
		}
	}
}

func TestEncrypt_EmptyPassesThrough(t *testing.T) {
	codec := testCodec(t)

	stored, err := codec.Encrypt("")
	if err != nil || stored != "" {
		t.Errorf("empty plaintext passes through: got %q, %v", stored, err)
	}
	back, err := codec.Decrypt("")
	if err != nil || back != "" {
		t.Errorf("empty stored value passes through: got %q, %v", back, err)
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	codec := testCodec(t)

	a, _ := codec.Encrypt("same plaintext")
	b, _ := codec.Encrypt("same plaintext")

	nonceA := strings.SplitN(a, ":", 2)[0]
	nonceB := strings.SplitN(b, ":", 2)[0]
	if nonceA == nonceB {
		t.Error("two encryptions must never share a nonce")
	}
}

func TestDecrypt_LegacyPlaintextPassthrough(t *testing.T) {
	codec := testCodec(t)

	for _, legacy := range []string{
		"plainlegacytitle",
		"two:parts",
		"a:b:c:d",
	} {
		got, err := codec.Decrypt(legacy)
		if err != nil {
			t.Errorf("Decrypt(%q): unexpected error %v", legacy, err)
		}
		if got != legacy {
			t.Errorf("legacy value must pass through unchanged: got %q", got)
		}
	}
}

func TestDecrypt_TamperedTagFailsAuth(t *testing.T) {
	codec := testCodec(t)

	stored, err := codec.Encrypt("secret title")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	parts := strings.Split(stored, ":")
	tag := []byte(parts[1])
	if tag[0] == 'f' {
		tag[0] = '0'
	} else {
		tag[0] = 'f'
	}
	tampered := parts[0] + ":" + string(tag) + ":" + parts[2]

	got, err := codec.Decrypt(tampered)
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("tampered tag: want ErrAuthFailed, got %v", err)
	}
	if got != tampered {
		t.Errorf("on auth failure the stored value is returned unchanged, got %q", got)
	}
}

func TestDecrypt_MalformedHexIsDistinctError(t *testing.T) {
	codec := testCodec(t)

	nonce := hex.EncodeToString(bytes.Repeat([]byte{1}, 12))
	tag := hex.EncodeToString(bytes.Repeat([]byte{2}, 16))

	cases := []string{
		"zz:" + tag + ":deadbeef",
		nonce + ":zz:deadbeef",
		nonce + ":" + tag + ":not-hex!",
		"dead:" + tag + ":beef", // nonce неверной длины
	}
	for _, c := range cases {
		if _, err := codec.Decrypt(c); !errors.Is(err, ErrCiphertextMalformed) {
			t.Errorf("Decrypt(%q): want ErrCiphertextMalformed, got %v", c, err)
		}
	}
}

func TestDecrypt_WrongKeyReturnsStored(t *testing.T) {
	codec := testCodec(t)
	other, err := NewTitleCodec(bytes.Repeat([]byte{0x7}, 32))
	if err != nil {
		t.Fatalf("NewTitleCodec: %v", err)
	}

	stored, _ := codec.Encrypt("secret")
	got, err := other.Decrypt(stored)
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("wrong key: want ErrAuthFailed, got %v", err)
	}
	if got != stored {
		t.Errorf("wrong key returns stored form unchanged, got %q", got)
	}
}
