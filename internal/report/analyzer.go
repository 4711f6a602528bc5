package report

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Analysis is the outcome of processing one report document. Status is
// success or error; Data is set only on success, Error only on error.
type Analysis struct {
	Status string `json:"status"`
	Data   *Data  `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Data holds the raw extraction payload. Structured field extraction is
// deliberately left out; RawText is the page texts joined by newlines.
type Data struct {
	FilePath string `json:"file_path"`
	RawText  string `json:"raw_text"`
}

// Analyzer extracts text from PDF medical reports. Every failure mode is
// captured in the returned Analysis; ProcessReport never returns an error
// and never panics past its own boundary.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) ProcessReport(_ context.Context, path string) Analysis {
	log.Printf("processing report: %s", path)

	text, err := extractText(path)
	if err != nil {
		log.Printf("report processing failed: %v", err)
		return Analysis{Status: StatusError, Error: err.Error()}
	}

	return Analysis{
		Status: StatusSuccess,
		Data:   &Data{FilePath: path, RawText: text},
	}
}

func extractText(path string) (text string, err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return "", fmt.Errorf("file not found: %s", path)
	}

	// The pdf package panics on some malformed inputs; contain that here
	// so a bad upload degrades to an error-status analysis.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to parse PDF page %d: %w", i, err)
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}
