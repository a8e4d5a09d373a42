package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// OCROptions control rasterization and recognition for scanned PDFs.
type OCROptions struct {
	// Lang is the Tesseract language pack, "fra" by default. When the
	// French pack is missing the run is retried with "eng"; the field
	// labels survive English OCR well enough to anchor on.
	Lang string
	// DPI for pdftoppm rasterization.
	DPI int
}

func (o OCROptions) withDefaults() OCROptions {
	if o.Lang == "" {
		o.Lang = "fra"
	}
	if o.DPI <= 0 {
		o.DPI = 300
	}
	return o
}

// IsOCRAvailable reports whether the external OCR tools are installed.
func IsOCRAvailable() bool {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return false
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return false
	}
	return true
}

// ExtractTextOCR converts PDF pages to images and runs Tesseract OCR.
// This handles scanned/image-based PDFs that have no text layer.
// Requires: pdftoppm (poppler-utils) and tesseract (tesseract-ocr).
func ExtractTextOCR(filePath string, opts OCROptions) ([]string, error) {
	opts = opts.withDefaults()

	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %v", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr): %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", strconv.Itoa(opts.DPI), "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %v", err)
	}

	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, imgFile := range imageFiles {
		text, err := ocrImage(imgFile, opts.Lang)
		if err != nil && opts.Lang != "eng" {
			text, err = ocrImage(imgFile, "eng")
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "tesseract warning for %s: %v\n", imgFile, err)
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("tesseract OCR produced no text from %d page images", len(imageFiles))
	}

	return pages, nil
}

// ocrImage runs tesseract on one page image. PSM 4 assumes a single
// column of text of variable sizes, which fits the label/value blocks on
// bank documents.
func ocrImage(imgFile, lang string) (string, error) {
	outBase := strings.TrimSuffix(imgFile, ".png") + "-ocr"
	cmd := exec.Command("tesseract", imgFile, outBase, "-l", lang, "--psm", "4")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%v (output: %s)", err, string(out))
	}
	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// getPageCountForOCR returns the number of pages in a PDF using pdfinfo,
// 0 when the file or the tool is missing.
func getPageCountForOCR(filePath string) int {
	return pdfinfoPageCount(filePath)
}
