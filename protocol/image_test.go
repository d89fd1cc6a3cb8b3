package protocol

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestImageDataURI tests the data URI law for every supported format
func TestImageDataURI(t *testing.T) {
	t.Parallel()

	raw := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0xFF}

	tests := []struct {
		format ImageFormat
		prefix string
	}{
		{ImagePNG, "data:image/png;base64,"},
		{ImageJPG, "data:image/jpg;base64,"},
		{ImageBMP, "data:image/bmp;base64,"},
		{ImageSVG, "data:image/svg+xml;base64,"},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		path := filepath.Join(dir, "icon."+string(tt.format))
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			want := tt.prefix + base64.StdEncoding.EncodeToString(raw)

			got, err := NewImage(tt.format, path).DataURI()
			if err != nil {
				t.Fatalf("DataURI() error = %v", err)
			}
			if got != want {
				t.Errorf("DataURI() = %q, want %q", got, want)
			}

			got, err = NewImageFromBytes(tt.format, raw).DataURI()
			if err != nil {
				t.Fatalf("DataURI() from bytes error = %v", err)
			}
			if got != want {
				t.Errorf("DataURI() from bytes = %q, want %q", got, want)
			}
		})
	}
}

// TestSetImageEncodesDataURI tests that setImage carries the data URI in its payload
func TestSetImageEncodesDataURI(t *testing.T) {
	t.Parallel()

	raw := []byte("<svg xmlns=\"http://www.w3.org/2000/svg\"/>")
	path := filepath.Join(t.TempDir(), "key.svg")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := Encode(SetImage{Context: "ctx", Image: NewImage(ImageSVG, path)})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var env struct {
		Payload struct {
			Image string `json:"image"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(raw)
	if env.Payload.Image != want {
		t.Errorf("image = %q, want %q", env.Payload.Image, want)
	}
}

// TestSetImageUnreadableResource tests that a missing file is a local encode error
func TestSetImageUnreadableResource(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.png")
	_, err := Encode(SetImage{Context: "ctx", Image: NewImage(ImagePNG, missing)})

	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("Encode() error = %v, want *EncodeError", err)
	}
	if encErr.Verb != VerbSetImage {
		t.Errorf("Verb = %q, want %q", encErr.Verb, VerbSetImage)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(err, os.ErrNotExist) = false for %v", err)
	}
}

// TestImageUnsupportedFormat tests formats without a prefix
func TestImageUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := NewImageFromBytes("gif", []byte("GIF89a")).DataURI()
	if !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Errorf("DataURI() error = %v, want ErrUnsupportedImageFormat", err)
	}
}

// TestParseDataURI tests decoding data URIs back into images
func TestParseDataURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		uri        string
		wantFormat ImageFormat
		wantData   []byte
		wantError  bool
	}{
		{"png", "data:image/png;base64,AAEC", ImagePNG, []byte{0, 1, 2}, false},
		{"jpg", "data:image/jpg;base64,AAEC", ImageJPG, []byte{0, 1, 2}, false},
		{"empty bmp", "data:image/bmp;base64,", ImageBMP, []byte{}, false},
		{"unknown prefix", "data:image/gif;base64,AAEC", "", nil, true},
		{"bad base64", "data:image/png;base64,!!!", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			img, err := ParseDataURI(tt.uri)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseDataURI() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				return
			}

			if img.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", img.Format, tt.wantFormat)
			}
			if string(img.Data) != string(tt.wantData) {
				t.Errorf("Data = %v, want %v", img.Data, tt.wantData)
			}
		})
	}
}
