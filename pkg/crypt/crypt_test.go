package crypt_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/bodega/pkg/crypt"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	sealed, err := crypt.Encrypt("bearer-token-value")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if sealed == "bearer-token-value" {
		t.Fatal("ciphertext equals plaintext")
	}

	plain, err := crypt.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "bearer-token-value" {
		t.Errorf("expected round trip, got %q", plain)
	}
}

func TestEncryptIsNondeterministic(t *testing.T) {
	a, _ := crypt.Encrypt("same")
	b, _ := crypt.Encrypt("same")
	if a == b {
		t.Error("expected distinct nonces to produce distinct ciphertexts")
	}
}

func TestDecryptRejectsTamperedInput(t *testing.T) {
	sealed, err := crypt.Encrypt("value")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	tampered := sealed[:len(sealed)-2] + "AA"
	if tampered == sealed {
		tampered = sealed[:len(sealed)-2] + "BB"
	}
	if _, err := crypt.Decrypt(tampered); !errors.Is(err, crypt.ErrDecrypt) {
		t.Errorf("expected ErrDecrypt, got %v", err)
	}

	if _, err := crypt.Decrypt("not base64 at all!!"); !errors.Is(err, crypt.ErrDecrypt) {
		t.Errorf("expected ErrDecrypt on garbage, got %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}

	sealed, err := crypt.EncryptJSON(payload{ID: "u1", Role: "customer"})
	if err != nil {
		t.Fatalf("encryptJSON: %v", err)
	}

	var out payload
	if err := crypt.DecryptJSON(sealed, &out); err != nil {
		t.Fatalf("decryptJSON: %v", err)
	}
	if out.ID != "u1" || out.Role != "customer" {
		t.Errorf("unexpected value: %+v", out)
	}
}
