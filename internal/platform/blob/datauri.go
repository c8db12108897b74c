// Copyright (c) 2026 Porchlight. All rights reserved.

package blob

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/averyclark/porchlight/internal/platform/constants"
)

// extensionByType maps the accepted image content types to file extensions.
var extensionByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// IsDataURI reports whether value looks like an inline base64 data URI.
//
// Image fields accept either an already-hosted URL or a data URI; only the
// latter triggers an upload.
func IsDataURI(value string) bool {
	return strings.HasPrefix(value, "data:")
}

// ParseDataURI decodes a base64 image data URI of the form
// "data:image/png;base64,...." into its content type and raw bytes.
func ParseDataURI(uri string) (contentType string, data []byte, err error) {
	if !IsDataURI(uri) {
		return "", nil, fmt.Errorf("blob: not a data URI")
	}

	header, payload, found := strings.Cut(uri[len("data:"):], ",")
	if !found {
		return "", nil, fmt.Errorf("blob: malformed data URI: missing payload separator")
	}

	contentType, encoding, found := strings.Cut(header, ";")
	if !found || encoding != "base64" {
		return "", nil, fmt.Errorf("blob: unsupported data URI encoding (base64 required)")
	}

	if _, ok := extensionByType[contentType]; !ok {
		return "", nil, fmt.Errorf("blob: unsupported image type %q", contentType)
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("blob: invalid base64 payload: %w", err)
	}

	if len(data) == 0 {
		return "", nil, fmt.Errorf("blob: empty image payload")
	}
	if len(data) > constants.MaxUploadBytes {
		return "", nil, fmt.Errorf("blob: image exceeds %d byte limit", constants.MaxUploadBytes)
	}

	return contentType, data, nil
}

// ExtensionFor returns the file extension for an accepted image content type.
func ExtensionFor(contentType string) string {
	return extensionByType[contentType]
}
