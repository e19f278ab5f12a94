package util

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// minResumeTextLen rejects PDFs whose text layer is too thin to be a resume,
// typically scans without embedded text.
const minResumeTextLen = 100

// ExtractPDFText reads the embedded text layer of every page. Image-only
// PDFs come back empty and are rejected rather than OCRed.
func ExtractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var full strings.Builder
	var lastErr error
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			full.WriteString(text)
			full.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(full.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("extract pdf text: %w", lastErr)
		}
		return "", fmt.Errorf("no text found in PDF (the file may be a scanned image)")
	}
	if len(result) < minResumeTextLen {
		return "", fmt.Errorf("extracted text too short to be a resume")
	}
	return result, nil
}
