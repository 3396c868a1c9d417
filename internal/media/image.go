package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
)

// Image is an uploaded image ready to be embedded in a vision request.
type Image struct {
	Data     []byte
	MIMEType string
	Base64   string
}

// DataURI returns the image as a data: URI.
func (i *Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64
}

// Format returns the short format name ("png" or "jpeg").
func (i *Image) Format() string {
	return strings.TrimPrefix(i.MIMEType, "image/")
}

// InvalidInputError reports an upload that cannot enter the pipeline.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid image: " + e.Reason
	}
	return fmt.Sprintf("invalid image %q: %s", e.Field, e.Reason)
}

// Encode validates that data is a non-empty PNG or JPEG and base64 encodes it.
// The MIME type is sniffed from the content, never taken from the caller.
func Encode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, &InvalidInputError{Reason: "file is empty"}
	}

	mt := mimetype.Detect(data)
	var mime string
	switch {
	case mt.Is(MIMEPNG):
		mime = MIMEPNG
	case mt.Is(MIMEJPEG):
		mime = MIMEJPEG
	default:
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unsupported format %s (want PNG or JPEG)", mt.String())}
	}

	return &Image{
		Data:     data,
		MIMEType: mime,
		Base64:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

// FromMultipart reads an uploaded form file and encodes it. field names the
// form field and is reported back in any InvalidInputError.
func FromMultipart(field string, fh *multipart.FileHeader, maxBytes int64) (*Image, error) {
	if fh == nil {
		return nil, &InvalidInputError{Field: field, Reason: "no file uploaded"}
	}
	if fh.Size == 0 {
		return nil, &InvalidInputError{Field: field, Reason: "file is empty"}
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, &InvalidInputError{Field: field, Reason: fmt.Sprintf("file too large: %d bytes (max %d bytes)", fh.Size, maxBytes)}
	}
	if !AllowedExtension(fh.Filename) {
		return nil, &InvalidInputError{Field: field, Reason: fmt.Sprintf("file extension not allowed: %q", filepath.Ext(fh.Filename))}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %q: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", field, err)
	}

	return EncodeField(field, data)
}

// EncodeField is Encode with the failing field recorded in the error.
func EncodeField(field string, data []byte) (*Image, error) {
	img, err := Encode(data)
	if err != nil {
		if inv, ok := err.(*InvalidInputError); ok {
			inv.Field = field
		}
		return nil, err
	}
	return img, nil
}

// AllowedExtension reports whether name has a .png, .jpg or .jpeg extension.
func AllowedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
