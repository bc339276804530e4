package services

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassifyTextFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", []byte("hello world\n"))

	classifier := NewFileClassifier(0)
	content, readable, err := classifier.Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !readable {
		t.Fatal("expected text file to be readable")
	}
	if content != "hello world\n" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestClassifyBinaryFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "blob.bin", []byte{0x00, 0x01, 0xff, 0xfe})

	classifier := NewFileClassifier(0)
	_, readable, err := classifier.Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if readable {
		t.Fatal("expected binary content to be rejected")
	}
}

func TestClassifyInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "latin1.txt", []byte{'c', 'a', 'f', 0xe9})

	classifier := NewFileClassifier(0)
	_, readable, err := classifier.Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if readable {
		t.Fatal("expected undecodable content to be rejected")
	}
}

func TestClassifyOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.txt", []byte("0123456789"))

	classifier := NewFileClassifier(4)
	_, readable, err := classifier.Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if readable {
		t.Fatal("expected oversized file to be rejected")
	}
}

func TestClassifyMissingFile(t *testing.T) {
	classifier := NewFileClassifier(0)
	_, readable, err := classifier.Classify(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if readable {
		t.Fatal("missing file must not be readable")
	}
}
