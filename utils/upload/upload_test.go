package upload

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAllowed(t *testing.T) {
	allowed := []string{"photo.jpg", "PHOTO.JPG", "clip.webm", "song.mp3", "report.pdf", "notes.docx"}
	for _, name := range allowed {
		if !Allowed(name) {
			t.Errorf("Allowed(%q) = false, want true", name)
		}
	}

	denied := []string{"malware.exe", "script.sh", "archive.zip", "photo", "photo.jpg.exe"}
	for _, name := range denied {
		if Allowed(name) {
			t.Errorf("Allowed(%q) = true, want false", name)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", "image"},
		{"image/png", "image"},
		{"video/mp4", "video"},
		{"audio/mpeg", "audio"},
		{"application/pdf", "doc"},
		{"application/octet-stream", "doc"},
		{"", "doc"},
	}
	for _, tt := range tests {
		if got := Kind(tt.contentType); got != tt.want {
			t.Errorf("Kind(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

// fileHeader builds a real multipart.FileHeader backed by an in-memory
// form, so SaveFile sees what gin would hand it.
func fileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="media"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	part.Write(content)
	mw.Close()

	reader := multipart.NewReader(&buf, mw.Boundary())
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("failed to read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["media"][0]
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()
	fh := fileHeader(t, "Wave Front.JPG", "image/jpeg", []byte("jpegdata"))

	media, err := SaveFile(dir, fh)
	if err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	if media.FileType != "image" {
		t.Errorf("FileType = %q, want image", media.FileType)
	}
	if media.OriginalName != "Wave Front.JPG" {
		t.Errorf("OriginalName = %q", media.OriginalName)
	}
	if !strings.HasPrefix(media.FileURL, "/uploads/") {
		t.Errorf("FileURL = %q, want /uploads/ prefix", media.FileURL)
	}
	if !strings.HasSuffix(media.FileURL, ".jpg") {
		t.Errorf("FileURL = %q, want lowercased .jpg suffix", media.FileURL)
	}

	stored := filepath.Join(dir, strings.TrimPrefix(media.FileURL, "/uploads/"))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "jpegdata" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveFileUniqueNames(t *testing.T) {
	dir := t.TempDir()

	a, err := SaveFile(dir, fileHeader(t, "wave.png", "image/png", []byte("one")))
	if err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}
	b, err := SaveFile(dir, fileHeader(t, "wave.png", "image/png", []byte("two")))
	if err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}
	if a.FileURL == b.FileURL {
		t.Errorf("two uploads of %q stored under the same name %q", "wave.png", a.FileURL)
	}
}

func TestSaveFileRejectsDisallowed(t *testing.T) {
	if _, err := SaveFile(t.TempDir(), fileHeader(t, "malware.exe", "application/octet-stream", []byte("x"))); err == nil {
		t.Fatal("SaveFile() accepted a disallowed extension")
	}
}
