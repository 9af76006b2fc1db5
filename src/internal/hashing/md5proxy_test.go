package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestChecksumReaderProxy_ReadAll(t *testing.T) {
	data := "class netroutes::routes {\n}\n"
	proxy := NewMD5ReaderProxy(strings.NewReader(data))

	content, err := io.ReadAll(proxy)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(content) != data {
		t.Errorf("Expected content to pass through, got %q", content)
	}
	if got := proxy.GetChecksum(); got != md5Hex(data) {
		t.Errorf("Expected checksum %s, got %s", md5Hex(data), got)
	}
	if proxy.Size() != int64(len(data)) {
		t.Errorf("Expected size %d, got %d", len(data), proxy.Size())
	}
}

func TestChecksumReaderProxy_PartialReads(t *testing.T) {
	proxy := NewMD5ReaderProxy(strings.NewReader("hello world"))
	buf := make([]byte, 5)
	if _, err := proxy.Read(buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := proxy.GetChecksum(); got != md5Hex("hello") {
		t.Errorf("Expected checksum of the first chunk, got %s", got)
	}
}

func TestChecksumReaderProxy_ReadError(t *testing.T) {
	want := errors.New("boom")
	proxy := NewMD5ReaderProxy(&errorReader{err: want})
	if _, err := proxy.Read(make([]byte, 4)); !errors.Is(err, want) {
		t.Errorf("Expected read error to pass through, got %v", err)
	}
	if proxy.GetChecksum() != EmptyRevision {
		t.Error("Expected empty checksum after a failed read")
	}
}

func TestFileRevision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.pp")

	rev, err := FileRevision(path)
	if err != nil {
		t.Fatalf("Unexpected error for a missing file: %v", err)
	}
	if rev != EmptyRevision {
		t.Errorf("Expected EmptyRevision for a missing file, got %s", rev)
	}

	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	rev, err = FileRevision(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rev != md5Hex("abc") {
		t.Errorf("Expected %s, got %s", md5Hex("abc"), rev)
	}

	if _, err := FileRevision(dir); err == nil {
		t.Error("Expected error when reading a directory")
	}
}
