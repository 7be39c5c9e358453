package ocrspace

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/url"
	"os"
	"strconv"
)

// Builder is the set of optional recognition parameters. Unset parameters
// are never sent. See https://ocr.space/OCRAPI for their meaning.
//
// Targeted requests keep a reference to the builder and read the parameters
// when the body is serialized, not when Target* is called. A Builder is not
// safe for concurrent mutation; use Clone to give each request its own set.
type Builder struct {
	apiKey    string
	endpoint  *url.URL
	transport Doer
	logger    *slog.Logger

	language                   *string
	filetype                   *string
	ocrEngine                  *string
	overlayRequired            *bool
	detectOrientation          *bool
	createSearchablePdf        *bool
	searchablePdfHideTextLayer *bool
	scale                      *bool
	table                      *bool
}

// SetLanguage sets the language code used by the OCR engine.
func (b *Builder) SetLanguage(lang string) *Builder {
	b.language = &lang
	return b
}

// SetFiletype overrides the file type detection (PDF, GIF, PNG, JPG, TIF, BMP).
func (b *Builder) SetFiletype(filetype string) *Builder {
	b.filetype = &filetype
	return b
}

// SetOCREngine selects the OCR engine.
func (b *Builder) SetOCREngine(engine string) *Builder {
	b.ocrEngine = &engine
	return b
}

// SetOCREngineID selects the OCR engine by its numeric id.
func (b *Builder) SetOCREngineID(engine int) *Builder {
	return b.SetOCREngine(strconv.Itoa(engine))
}

// SetOverlayRequired asks for word bounding boxes in the reply.
func (b *Builder) SetOverlayRequired(v bool) *Builder {
	b.overlayRequired = &v
	return b
}

// SetDetectOrientation lets the service auto-rotate the image.
func (b *Builder) SetDetectOrientation(v bool) *Builder {
	b.detectOrientation = &v
	return b
}

// SetCreateSearchablePdf asks for a searchable PDF. The service implies
// overlay on its side; the builder does not set it.
func (b *Builder) SetCreateSearchablePdf(v bool) *Builder {
	b.createSearchablePdf = &v
	return b
}

// SetSearchablePdfHideTextLayer hides the text layer of the searchable PDF.
func (b *Builder) SetSearchablePdfHideTextLayer(v bool) *Builder {
	b.searchablePdfHideTextLayer = &v
	return b
}

// SetScale enables internal upscaling.
func (b *Builder) SetScale(v bool) *Builder {
	b.scale = &v
	return b
}

// SetTable makes the service return text line by line.
func (b *Builder) SetTable(v bool) *Builder {
	b.table = &v
	return b
}

// Clone returns an independent copy of the parameter set bound to the same
// key, endpoint and transport.
func (b *Builder) Clone() *Builder {
	cp := &Builder{
		apiKey:    b.apiKey,
		endpoint:  b.endpoint,
		transport: b.transport,
		logger:    b.logger,
	}
	cp.language = cloneValue(b.language)
	cp.filetype = cloneValue(b.filetype)
	cp.ocrEngine = cloneValue(b.ocrEngine)
	cp.overlayRequired = cloneValue(b.overlayRequired)
	cp.detectOrientation = cloneValue(b.detectOrientation)
	cp.createSearchablePdf = cloneValue(b.createSearchablePdf)
	cp.searchablePdfHideTextLayer = cloneValue(b.searchablePdfHideTextLayer)
	cp.scale = cloneValue(b.scale)
	cp.table = cloneValue(b.table)
	return cp
}

func cloneValue[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// TargetURL targets a remote image or PDF.
func (b *Builder) TargetURL(u *url.URL) (*TargetedRequest, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: nil url", ErrValidation)
	}
	cp := *u
	return b.target(URLPayload{Location: &cp}), nil
}

// TargetRawURL parses raw and targets it as a remote image or PDF.
func (b *Builder) TargetRawURL(raw string) (*TargetedRequest, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty url", ErrValidation)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: url %q: %w", ErrValidation, raw, err)
	}
	return b.TargetURL(u)
}

// TargetFile targets a local file uploaded as a multipart file part. The
// file must exist now; it is read when the request is sent.
func (b *Builder) TargetFile(path string) (*TargetedRequest, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrValidation)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: file %q: %w", ErrValidation, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrValidation, path)
	}
	return b.target(FilePayload{Path: path}), nil
}

// TargetBase64 targets inline base64 content, sent as is. OCR.space expects
// a data URI such as "data:image/png;base64,....".
func (b *Builder) TargetBase64(content string) (*TargetedRequest, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty base64 content", ErrValidation)
	}
	return b.target(InlinePayload{Base64Content: content}), nil
}

// TargetImage encodes img as PNG and targets it as a base64 data URI.
func (b *Builder) TargetImage(img image.Image) (*TargetedRequest, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrValidation)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return b.TargetBase64("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func (b *Builder) target(p Payload) *TargetedRequest {
	return &TargetedRequest{params: b, payload: p}
}
