package documents

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrBadSignatureImage = errors.New("bad_signature_image")

// ParseSignatureDataURL decodes a canvas-captured signature image sent as
// a data URL. Only PNG and JPEG payloads are accepted.
func ParseSignatureDataURL(dataURL string) (img []byte, imageType string, err error) {
	const prefix = "data:"
	if !strings.HasPrefix(dataURL, prefix) {
		return nil, "", ErrBadSignatureImage
	}
	rest := dataURL[len(prefix):]

	semi := strings.IndexByte(rest, ';')
	comma := strings.IndexByte(rest, ',')
	if semi < 0 || comma < 0 || comma < semi {
		return nil, "", ErrBadSignatureImage
	}

	mediaType := rest[:semi]
	switch mediaType {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	default:
		return nil, "", ErrBadSignatureImage
	}

	if rest[semi+1:comma] != "base64" {
		return nil, "", ErrBadSignatureImage
	}

	img, decErr := base64.StdEncoding.DecodeString(rest[comma+1:])
	if decErr != nil || len(img) == 0 {
		return nil, "", ErrBadSignatureImage
	}
	return img, imageType, nil
}
