package ocrspace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Multipart field names understood by the OCR.space API.
const (
	fieldURL                        = "url"
	fieldFile                       = "file"
	fieldBase64Image                = "base64Image"
	fieldLanguage                   = "language"
	fieldOverlayRequired            = "isOverlayRequired"
	fieldFiletype                   = "filetype"
	fieldDetectOrientation          = "detectOrientation"
	fieldCreateSearchablePdf        = "isCreateSearchablePdf"
	fieldSearchablePdfHideTextLayer = "isSearchablePdfHideTextLayer"
	fieldScale                      = "scale"
	fieldTable                      = "isTable"
	fieldOCREngine                  = "OCREngine"
)

// Payload is the input source of a targeted request: URLPayload, FilePayload
// or InlinePayload.
type Payload interface {
	payload()
}

// URLPayload references a remote image or PDF.
type URLPayload struct {
	Location *url.URL
}

// FilePayload references a local file.
type FilePayload struct {
	Path string
}

// InlinePayload carries base64 content.
type InlinePayload struct {
	Base64Content string
}

func (URLPayload) payload()    {}
func (FilePayload) payload()   {}
func (InlinePayload) payload() {}

// TargetedRequest is a parameter set bound to exactly one payload.
type TargetedRequest struct {
	params  *Builder
	payload Payload
}

// Payload returns the payload the request was targeted at.
func (r *TargetedRequest) Payload() Payload {
	return r.payload
}

// Request sends the request and returns the raw response. The caller owns
// the response and must close its body.
func (r *TargetedRequest) Request(ctx context.Context) (*http.Response, error) {
	body, contentType, err := r.encode()
	if err != nil {
		return nil, err
	}

	p := r.params
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", ErrConfiguration, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("apikey", p.apiKey)

	p.logger.Debug("Sending OCR request", "endpoint", p.endpoint.String(), "payload", payloadKind(r.payload), "size", body.Len())
	resp, err := p.transport.Do(req)
	if err != nil {
		p.logger.Debug("OCR request failed", "endpoint", p.endpoint.String(), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return resp, nil
}

// encode assembles the multipart/form-data body from the payload and the
// parameters set on the builder at this moment.
func (r *TargetedRequest) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := writePayload(w, r.payload); err != nil {
		return nil, "", err
	}

	p := r.params
	fields := []struct {
		name  string
		value *string
	}{
		{fieldLanguage, p.language},
		{fieldOverlayRequired, formatBool(p.overlayRequired)},
		{fieldFiletype, p.filetype},
		{fieldDetectOrientation, formatBool(p.detectOrientation)},
		{fieldCreateSearchablePdf, formatBool(p.createSearchablePdf)},
		{fieldSearchablePdfHideTextLayer, formatBool(p.searchablePdfHideTextLayer)},
		{fieldScale, formatBool(p.scale)},
		{fieldTable, formatBool(p.table)},
		{fieldOCREngine, p.ocrEngine},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := w.WriteField(f.name, *f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func writePayload(w *multipart.Writer, p Payload) error {
	switch p := p.(type) {
	case URLPayload:
		return w.WriteField(fieldURL, p.Location.String())
	case InlinePayload:
		return w.WriteField(fieldBase64Image, p.Base64Content)
	case FilePayload:
		f, err := os.Open(p.Path)
		if err != nil {
			return fmt.Errorf("%w: file %q: %w", ErrValidation, p.Path, err)
		}
		defer f.Close()

		name := filepath.Base(p.Path)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldFile, quoteEscaper.Replace(name)))
		h.Set("Content-Type", guessContentType(name))
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("copy file %q: %w", p.Path, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported payload %T", ErrValidation, p)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func guessContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func formatBool(v *bool) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatBool(*v)
	return &s
}

func payloadKind(p Payload) string {
	switch p.(type) {
	case URLPayload:
		return "url"
	case FilePayload:
		return "file"
	case InlinePayload:
		return "base64"
	default:
		return "unknown"
	}
}
