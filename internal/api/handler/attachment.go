package handler

import (
	"encoding/base64"
	"strings"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
)

// attachmentPayload is an inline file as sent by browsers: raw base64 or a data URL.
type attachmentPayload struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

func (p *attachmentPayload) toDomain() (*domain.Attachment, error) {
	if p == nil || strings.TrimSpace(p.Data) == "" {
		return nil, nil
	}

	data := strings.TrimSpace(p.Data)
	mimeType := p.MimeType

	if rest, ok := strings.CutPrefix(data, "data:"); ok {
		header, encoded, found := strings.Cut(rest, ",")
		if found {
			data = encoded
			if mimeType == "" {
				mimeType = strings.TrimSuffix(header, ";base64")
			}
		}
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(data)
		if err != nil {
			return nil, err
		}
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &domain.Attachment{Data: decoded, MimeType: mimeType}, nil
}
