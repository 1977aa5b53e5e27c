package storage

import (
	"bytes"
	"errors"
	"testing"
)

func newTestLocalStorage(t *testing.T, domain string) *LocalStorage {
	t.Helper()
	stor, err := NewLocalStorage(t.TempDir(), domain)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	return stor
}

func TestLocalStorage_SaveGet(t *testing.T) {
	stor := newTestLocalStorage(t, "")

	url, err := stor.Save("tags/qr/TAG-X.png", []byte("image-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "/files/tags/qr/TAG-X.png" {
		t.Errorf("Unexpected public URL: %s", url)
	}

	data, err := stor.Get("tags/qr/TAG-X.png")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(data, []byte("image-bytes")) {
		t.Errorf("Unexpected content: %s", data)
	}

	if !stor.Exists("tags/qr/TAG-X.png") {
		t.Error("Expected Exists true")
	}
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	stor := newTestLocalStorage(t, "")

	if _, err := stor.Save("tags/meta/TAG-X.json", []byte(`{"v":1}`), "application/json"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := stor.Save("tags/meta/TAG-X.json", []byte(`{"v":2}`), "application/json"); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	data, err := stor.Get("tags/meta/TAG-X.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `{"v":2}` {
		t.Errorf("Expected overwritten content, got %s", data)
	}
}

func TestLocalStorage_GetMissing(t *testing.T) {
	stor := newTestLocalStorage(t, "")

	if _, err := stor.Get("missing.bin"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLocalStorage_Delete(t *testing.T) {
	stor := newTestLocalStorage(t, "")

	stor.Save("a.txt", []byte("x"), "text/plain")
	if err := stor.Delete("a.txt"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if stor.Exists("a.txt") {
		t.Error("Expected file gone after delete")
	}

	// Deleting a missing key is not an error
	if err := stor.Delete("a.txt"); err != nil {
		t.Errorf("Delete of missing key should be a no-op, got %v", err)
	}
}

func TestLocalStorage_DomainURL(t *testing.T) {
	stor := newTestLocalStorage(t, "https://cdn.example.com/")

	if url := stor.PublicURL("tags/qr/TAG-X.png"); url != "https://cdn.example.com/tags/qr/TAG-X.png" {
		t.Errorf("Unexpected URL: %s", url)
	}
}
