package domain

import (
	"encoding/json"
	"strings"
)

// Response is the JSON reply of the OCR.space parse endpoint, see https://ocr.space/OCRAPI
type Response struct {
	ParsedResults                []ParsedResult `json:"ParsedResults"`
	OCRExitCode                  int            `json:"OCRExitCode"`
	IsErroredOnProcessing        bool           `json:"IsErroredOnProcessing"`
	ErrorMessage                 Messages       `json:"ErrorMessage"`
	ErrorDetails                 string         `json:"ErrorDetails"`
	SearchablePDFURL             string         `json:"SearchablePDFURL"`
	ProcessingTimeInMilliseconds string         `json:"ProcessingTimeInMilliseconds"`
}

// Text joins the parsed text of every page.
func (r *Response) Text() string {
	parts := make([]string, 0, len(r.ParsedResults))
	for _, pr := range r.ParsedResults {
		if pr.ParsedText != "" {
			parts = append(parts, pr.ParsedText)
		}
	}
	return strings.Join(parts, "\n")
}

type ParsedResult struct {
	TextOverlay       *TextOverlay `json:"TextOverlay"`
	TextOrientation   string       `json:"TextOrientation"`
	FileParseExitCode int          `json:"FileParseExitCode"`
	ParsedText        string       `json:"ParsedText"`
	ErrorMessage      string       `json:"ErrorMessage"`
	ErrorDetails      string       `json:"ErrorDetails"`
}

type TextOverlay struct {
	Lines      []Line `json:"Lines"`
	HasOverlay bool   `json:"HasOverlay"`
	Message    string `json:"Message"`
}

type Line struct {
	LineText  string  `json:"LineText"`
	Words     []Word  `json:"Words"`
	MaxHeight float64 `json:"MaxHeight"`
	MinTop    float64 `json:"MinTop"`
}

type Word struct {
	WordText string  `json:"WordText"`
	Left     float64 `json:"Left"`
	Top      float64 `json:"Top"`
	Height   float64 `json:"Height"`
	Width    float64 `json:"Width"`
}

// Messages holds ErrorMessage, which the service sends either as a string or
// as an array of strings.
type Messages []string

func (m *Messages) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*m = nil
		} else {
			*m = Messages{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*m = many
	return nil
}

func (m Messages) String() string {
	return strings.Join(m, "; ")
}
