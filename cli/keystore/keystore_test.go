package keystore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestKeystore(t *testing.T) *FileKeystore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.enc")
	return NewFileKeystoreWithKey(path, []byte("test-master-key"))
}

func TestSetGetRoundTrip(t *testing.T) {
	ks := newTestKeystore(t)

	if err := ks.Set("gemini", "secret-123"); err != nil {
		t.Fatal(err)
	}

	got, err := ks.Get("gemini")
	if err != nil {
		t.Fatal(err)
	}
	if got != "secret-123" {
		t.Errorf("Get = %q, want secret-123", got)
	}
}

func TestGetMissing(t *testing.T) {
	ks := newTestKeystore(t)

	_, err := ks.Get("nope")
	var notFound *ErrKeyNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("err = %v, want ErrKeyNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	ks := newTestKeystore(t)

	if err := ks.Set("openrouter", "v"); err != nil {
		t.Fatal(err)
	}
	if err := ks.Delete("openrouter"); err != nil {
		t.Fatal(err)
	}
	if _, err := ks.Get("openrouter"); err == nil {
		t.Error("key still present after delete")
	}

	var notFound *ErrKeyNotFound
	if err := ks.Delete("openrouter"); !errors.As(err, &notFound) {
		t.Errorf("second delete err = %v, want ErrKeyNotFound", err)
	}
}

func TestListSorted(t *testing.T) {
	ks := newTestKeystore(t)

	for _, name := range []string{"openrouter", "gemini"} {
		if err := ks.Set(name, "v"); err != nil {
			t.Fatal(err)
		}
	}

	names, err := ks.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "gemini" || names[1] != "openrouter" {
		t.Errorf("List = %v", names)
	}
}

func TestFileIsEncrypted(t *testing.T) {
	ks := newTestKeystore(t)

	if err := ks.Set("gemini", "super-secret-value"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(ks.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw[:4]) != magicHeader {
		t.Errorf("magic = %q, want %q", raw[:4], magicHeader)
	}
	if bytes.Contains(raw, []byte("super-secret-value")) {
		t.Error("plaintext secret found in keystore file")
	}
}

func TestWrongMasterKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")

	ks1 := NewFileKeystoreWithKey(path, []byte("key-one"))
	if err := ks1.Set("gemini", "v"); err != nil {
		t.Fatal(err)
	}

	ks2 := NewFileKeystoreWithKey(path, []byte("key-two"))
	if _, err := ks2.Get("gemini"); err == nil {
		t.Error("decrypt succeeded with wrong master key")
	}
}

func TestMissingFileIsEmpty(t *testing.T) {
	ks := NewFileKeystoreWithKey(filepath.Join(t.TempDir(), "absent.enc"), []byte("k"))

	names, err := ks.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("List = %v, want empty", names)
	}
}
