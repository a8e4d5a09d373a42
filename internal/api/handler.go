// Package api exposes the extraction pipeline over HTTP.
package api

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/insightdelivered/rib-extractor/internal/extractor"
	"github.com/insightdelivered/rib-extractor/internal/models"
	"github.com/insightdelivered/rib-extractor/internal/pipeline"
	"github.com/insightdelivered/rib-extractor/internal/writer"
)

// Version reported by the health and extract endpoints.
const Version = "1.0.0"

// ExtractResponse is the JSON response from the /api/extract endpoint.
type ExtractResponse struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	Record    *models.RibRecord `json:"record,omitempty"`
	CSV       string            `json:"csv,omitempty"`
	RawText   string            `json:"rawText,omitempty"`
	Version   string            `json:"version,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "rib-extractor",
		BodyLimit: 32 << 20,
	})

	app.Get("/api/health", HandleHealth)
	app.Post("/api/extract", HandleExtract)

	return app
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleExtract accepts either a "text" form value with raw document
// text, or a multipart "file" upload (PDF or plain text), runs the
// pipeline and returns the structured record plus a CSV rendition.
func HandleExtract(c *fiber.Ctx) error {
	requestID := uuid.NewString()

	if text := c.FormValue("text"); strings.TrimSpace(text) != "" {
		return respond(c, requestID, text, "")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, requestID,
			"no input: provide a 'text' form value or a 'file' upload")
	}

	name := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(name, ".pdf") && !strings.HasSuffix(name, ".txt") {
		return writeError(c, fiber.StatusBadRequest, requestID,
			"only .pdf and .txt files are supported")
	}

	tmpFile, err := os.CreateTemp("", "rib-upload-*"+filepath.Ext(name))
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, requestID, "failed to create temp file")
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, requestID, "failed to save uploaded file")
	}

	text, err := readDocument(tmpPath)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, requestID,
			fmt.Sprintf("text extraction failed: %v", err))
	}

	return respond(c, requestID, text, fileHeader.Filename)
}

// readDocument returns the text content of a .pdf or .txt file, falling
// back to OCR for scanned PDFs when the tools are installed.
func readDocument(path string) (string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		text, err := extractor.ExtractTextCombined(path)
		if err == nil {
			return text, nil
		}
		if extractor.IsOCRAvailable() {
			pages, ocrErr := extractor.ExtractTextOCR(path, extractor.OCROptions{})
			if ocrErr == nil {
				return strings.Join(pages, "\n\n"), nil
			}
			return "", fmt.Errorf("%v; OCR also failed: %v", err, ocrErr)
		}
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func respond(c *fiber.Ctx, requestID, text, sourceFile string) error {
	rec := pipeline.Process(text)
	rec.SourceFile = sourceFile

	var csvBuf bytes.Buffer
	w := &writer.CSVWriter{}
	if err := w.Write(&csvBuf, []models.RibRecord{rec}); err != nil {
		return writeError(c, fiber.StatusInternalServerError, requestID,
			fmt.Sprintf("CSV generation failed: %v", err))
	}

	return c.JSON(ExtractResponse{
		Success:   true,
		RequestID: requestID,
		Record:    &rec,
		CSV:       csvBuf.String(),
		RawText:   text,
		Version:   Version,
	})
}

func writeError(c *fiber.Ctx, status int, requestID, msg string) error {
	return c.Status(status).JSON(ExtractResponse{
		Success:   false,
		Error:     msg,
		RequestID: requestID,
		Version:   Version,
	})
}
