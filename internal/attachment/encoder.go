// Package attachment builds the transient base64 payloads that ride along on
// a single engine request. A payload is constructed per send and never stored.
package attachment

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	app_errors "scholar-ai/backend/internal/errors"
	"scholar-ai/backend/internal/model"
)

const dataURLScheme = "data:"

// NewPayload builds a payload from an already base64-encoded string, as
// produced by browser file readers and audio recorders. A data-URL prefix
// ("data:<mime>;base64,") is stripped so only the base64 body remains; a MIME
// type embedded in the prefix takes precedence over the caller's.
func NewPayload(raw, mimeType string) (*model.AttachmentPayload, error) {
	data := raw
	if strings.HasPrefix(raw, dataURLScheme) {
		header, body, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, fmt.Errorf("%w: malformed data URL", app_errors.ErrValidation)
		}
		data = body
		meta := strings.TrimPrefix(header, dataURLScheme)
		meta = strings.TrimSuffix(meta, ";base64")
		if meta != "" {
			mimeType = meta
		}
	}

	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return nil, fmt.Errorf("%w: attachment is not valid base64: %v", app_errors.ErrValidation, err)
	}
	if mimeType == "" {
		return nil, fmt.Errorf("%w: attachment MIME type is required", app_errors.ErrValidation)
	}

	return &model.AttachmentPayload{Data: data, MIMEType: mimeType}, nil
}

// FromReader reads raw bytes (an uploaded file or a finished recording) and
// encodes them. When the caller supplies no MIME type it is sniffed from the
// content.
func FromReader(r io.Reader, mimeType string) (*model.AttachmentPayload, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read attachment: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: attachment is empty", app_errors.ErrValidation)
	}

	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(raw).String()
	}

	return &model.AttachmentPayload{
		Data:     base64.StdEncoding.EncodeToString(raw),
		MIMEType: mimeType,
	}, nil
}

// IsAudio reports whether the payload came from a recording. Used only to
// pick the placeholder prompt wording; no client-side type validation is
// performed beyond this.
func IsAudio(p *model.AttachmentPayload) bool {
	return p != nil && strings.HasPrefix(p.MIMEType, "audio/")
}
