package protocol

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// ImageFormat is an image encoding the host can display.
type ImageFormat string

const (
	ImagePNG ImageFormat = "png"
	ImageJPG ImageFormat = "jpg"
	ImageBMP ImageFormat = "bmp"
	ImageSVG ImageFormat = "svg"
)

var dataURIPrefixes = map[ImageFormat]string{
	ImagePNG: "data:image/png;base64,",
	ImageJPG: "data:image/jpg;base64,",
	ImageBMP: "data:image/bmp;base64,",
	ImageSVG: "data:image/svg+xml;base64,",
}

// Prefix returns the data URI prefix for the format.
func (f ImageFormat) Prefix() (string, error) {
	prefix, ok := dataURIPrefixes[f]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, string(f))
	}
	return prefix, nil
}

// Image is an image resource sent with setImage.
//
// The bytes come from Data when it is set, otherwise they are read from Path at encode time.
type Image struct {
	Format ImageFormat
	Path   string
	Data   []byte
}

// NewImage returns an image read from the file at path when encoded.
func NewImage(format ImageFormat, path string) *Image {
	return &Image{Format: format, Path: path}
}

// NewImageFromBytes returns an image backed by data already in memory.
func NewImageFromBytes(format ImageFormat, data []byte) *Image {
	return &Image{Format: format, Data: data}
}

// DataURI returns the prefixed base64 form the host expects.
func (img *Image) DataURI() (string, error) {
	prefix, err := img.Format.Prefix()
	if err != nil {
		return "", err
	}

	data := img.Data
	if data == nil {
		if img.Path == "" {
			return "", fmt.Errorf("image has neither data nor path")
		}
		data, err = os.ReadFile(img.Path)
		if err != nil {
			return "", fmt.Errorf("read image: %w", err)
		}
	}

	return prefix + base64.StdEncoding.EncodeToString(data), nil
}

// ParseDataURI decodes a data URI produced by DataURI back into an in-memory image.
func ParseDataURI(uri string) (*Image, error) {
	for format, prefix := range dataURIPrefixes {
		if !strings.HasPrefix(uri, prefix) {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
		if err != nil {
			return nil, fmt.Errorf("decode %s image: %w", format, err)
		}
		return NewImageFromBytes(format, data), nil
	}
	return nil, fmt.Errorf("%w: %.32q", ErrUnsupportedImageFormat, uri)
}
