// Package config reads runtime settings from the environment. Every
// setting has a workable default; a .env file loaded by the entrypoint
// (godotenv) can override them.
package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Port the HTTP API listens on.
	Port int
	// Workers bounds concurrent document processing in the CLI.
	Workers int
	// OCRLang is the Tesseract language pack for scanned documents.
	OCRLang string
	// OCRDPI is the pdftoppm rasterization resolution.
	OCRDPI int
	// CSVTextGuard prefixes numeric CSV cells with an apostrophe so
	// spreadsheet imports keep leading zeros.
	CSVTextGuard bool
}

func New() (*Config, error) {
	cfg := &Config{
		Port:         8080,
		Workers:      4,
		OCRLang:      "fra",
		OCRDPI:       300,
		CSVTextGuard: false,
	}

	var err error
	cfg.Port, err = getEnvAsInt("PORT", cfg.Port)
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = getEnvAsInt("WORKERS", cfg.Workers)
	if err != nil {
		return nil, err
	}

	cfg.OCRDPI, err = getEnvAsInt("OCR_DPI", cfg.OCRDPI)
	if err != nil {
		return nil, err
	}

	if lang := os.Getenv("OCR_LANG"); lang != "" {
		cfg.OCRLang = lang
	}

	cfg.CSVTextGuard, err = getEnvAsBool("CSV_TEXT_GUARD", cfg.CSVTextGuard)
	if err != nil {
		return nil, err
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("WORKERS must be at least 1, got %d", cfg.Workers)
	}

	return cfg, nil
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected an integer, got '%s'", key, valueStr)
	}

	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: expected a boolean, got '%s'", key, valueStr)
	}

	return value, nil
}
