package session

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/dukerupert/habitly/internal/model"
)

func TestSaveLoadClearKeyring(t *testing.T) {
	gokeyring.MockInit()
	store := NewStore(t.TempDir())

	tokens := model.TokenPair{Access: "acc", Refresh: "ref"}
	if err := store.Save(tokens); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Access != "acc" || got.Refresh != "ref" {
		t.Errorf("tokens = %+v, want acc/ref", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("err after clear = %v, want ErrNoSession", err)
	}
}

func TestSaveLoadFileFallback(t *testing.T) {
	gokeyring.MockInitWithError(gokeyring.ErrUnsupportedPlatform)
	store := NewStore(t.TempDir())

	tokens := model.TokenPair{Access: "acc", Refresh: "ref"}
	if err := store.Save(tokens); err != nil {
		t.Fatalf("save with keyring unavailable: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Access != "acc" || got.Refresh != "ref" {
		t.Errorf("tokens = %+v, want acc/ref", got)
	}
}

func TestLoadMissing(t *testing.T) {
	gokeyring.MockInit()
	store := NewStore(t.TempDir())
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	plaintext := []byte(`{"access":"a","refresh":"r"}`)

	sealed, err := sealBytes(plaintext, "passphrase")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealed, []byte("access")) {
		t.Error("sealed payload leaks plaintext")
	}

	opened, err := openBytes(sealed, "passphrase")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("opened = %q, want %q", opened, plaintext)
	}
}

func TestOpenWrongPassphrase(t *testing.T) {
	sealed, err := sealBytes([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := openBytes(sealed, "wrong"); err == nil {
		t.Error("expected decrypt failure with wrong passphrase")
	}
}

func TestOpenTruncated(t *testing.T) {
	if _, err := openBytes([]byte("too short"), "p"); err == nil {
		t.Error("expected error for truncated payload")
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestExpired(t *testing.T) {
	if Expired(signedToken(t, time.Now().Add(time.Hour))) {
		t.Error("future token reported expired")
	}
	if !Expired(signedToken(t, time.Now().Add(-time.Hour))) {
		t.Error("past token not reported expired")
	}
	// Unreadable tokens defer to the server.
	if Expired("not-a-jwt") {
		t.Error("malformed token reported expired")
	}
}
