package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/larriantoniy/ocrspace/internal/adapters/ocrspace"
	"github.com/larriantoniy/ocrspace/internal/config"
)

// applyParams copies the configured recognition parameters onto b. Empty
// strings and "unset" leave a parameter unset.
func applyParams(b *ocrspace.Builder, p config.Params) error {
	if isSet(p.Language) {
		b.SetLanguage(p.Language)
	}
	if isSet(p.Filetype) {
		b.SetFiletype(p.Filetype)
	}
	if isSet(p.OCREngine) {
		b.SetOCREngine(p.OCREngine)
	}

	bools := []struct {
		name  string
		raw   string
		apply func(bool) *ocrspace.Builder
	}{
		{"overlay_required", p.OverlayRequired, b.SetOverlayRequired},
		{"detect_orientation", p.DetectOrientation, b.SetDetectOrientation},
		{"create_searchable_pdf", p.CreateSearchablePdf, b.SetCreateSearchablePdf},
		{"searchable_pdf_hide_text_layer", p.SearchablePdfHideTextLayer, b.SetSearchablePdfHideTextLayer},
		{"scale", p.Scale, b.SetScale},
		{"table", p.Table, b.SetTable},
	}
	for _, f := range bools {
		if !isSet(f.raw) {
			continue
		}
		v, err := strconv.ParseBool(f.raw)
		if err != nil {
			return fmt.Errorf("param %s: %w", f.name, err)
		}
		f.apply(v)
	}
	return nil
}

func isSet(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw != "" && !strings.EqualFold(raw, "unset")
}
