package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"github.com/insightdelivered/rib-extractor/internal/config"
	"github.com/insightdelivered/rib-extractor/internal/extractor"
	"github.com/insightdelivered/rib-extractor/internal/models"
	"github.com/insightdelivered/rib-extractor/internal/pipeline"
	"github.com/insightdelivered/rib-extractor/internal/writer"
)

const version = "1.0.0"

func main() {
	// Optional .env next to the binary; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}

	formatFlag := flag.String("format", "csv", "Output format: csv or xlsx")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with the format extension)")
	workersFlag := flag.Int("workers", cfg.Workers, "Number of documents processed in parallel")
	ocrFlag := flag.Bool("ocr", false, "Force OCR even when the PDF has a text layer")
	textFlag := flag.Bool("text", false, "Treat every input as plain text regardless of extension")
	guardFlag := flag.Bool("guard", cfg.CSVTextGuard, "Prefix numeric CSV cells with an apostrophe for spreadsheet imports")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `RIB Extractor

Extracts bank identity fields (code banque, code guichet, numero de
compte, cle RIB, IBAN, BIC, titulaire, domiciliation) from French RIB
documents, validates the checksums and reconstructs what is derivable.

Usage:
  ribx [flags] <input.pdf|input.txt> [input2 ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Extract one RIB to CSV
  ribx rib_dupont.pdf

  # Batch of scanned documents to a single workbook
  ribx --format=xlsx --output=ribs.xlsx --ocr scans/*.pdf

  # Pre-extracted OCR text
  ribx --text page1.txt page2.txt
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("ribx v%s\n", version)
		os.Exit(0)
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	format := strings.ToLower(*formatFlag)
	if format != "csv" && format != "xlsx" {
		fatalf("Unknown format %q. Supported: csv, xlsx\n", *formatFlag)
	}

	workers := *workersFlag
	if workers < 1 {
		workers = 1
	}

	inputs := flag.Args()
	records := processAll(inputs, workers, processOptions{
		forceOCR:  *ocrFlag,
		plainText: *textFlag,
		ocrLang:   cfg.OCRLang,
		ocrDPI:    cfg.OCRDPI,
	})

	if len(records) == 0 {
		fatalf("No documents could be processed.\n")
	}

	outPath := *outputFlag
	if outPath == "" {
		if len(inputs) == 1 {
			base := strings.TrimSuffix(inputs[0], filepath.Ext(inputs[0]))
			outPath = base + "." + format
		} else {
			outPath = "rib_export." + format
		}
	}

	switch format {
	case "xlsx":
		w := &writer.XLSXWriter{}
		if err := w.WriteToFile(outPath, records); err != nil {
			fatalf("XLSX write failed: %v\n", err)
		}
	default:
		w := &writer.CSVWriter{TextGuard: *guardFlag}
		if err := w.WriteToFile(outPath, records); err != nil {
			fatalf("CSV write failed: %v\n", err)
		}
	}

	fmt.Printf("Output: %s (%d record(s))\n", outPath, len(records))
}

type processOptions struct {
	forceOCR  bool
	plainText bool
	ocrLang   string
	ocrDPI    int
}

// processAll runs the pipeline over every input with a bounded worker
// pool, keeping results in input order. Failed documents are reported
// and skipped, not fatal: one unreadable scan must not sink a batch.
func processAll(inputs []string, workers int, opts processOptions) []models.RibRecord {
	type result struct {
		rec models.RibRecord
		err error
	}
	results := make([]result, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec, err := processFile(inputs[i], opts)
				results[i] = result{rec: rec, err: err}
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var records []models.RibRecord
	for i, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputs[i], r.err)
			continue
		}
		printSummary(&r.rec)
		records = append(records, r.rec)
	}
	return records
}

func processFile(inputPath string, opts processOptions) (models.RibRecord, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return models.RibRecord{}, fmt.Errorf("input file not found: %s", inputPath)
	}

	text, err := readInput(inputPath, opts)
	if err != nil {
		return models.RibRecord{}, err
	}

	rec := pipeline.Process(text)
	rec.SourceFile = filepath.Base(inputPath)
	return rec, nil
}

func readInput(inputPath string, opts processOptions) (string, error) {
	ext := strings.ToLower(filepath.Ext(inputPath))

	if opts.plainText || ext == ".txt" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if ext != ".pdf" {
		return "", fmt.Errorf("expected .pdf or .txt file, got %q", ext)
	}

	ocrOpts := extractor.OCROptions{Lang: opts.ocrLang, DPI: opts.ocrDPI}

	if opts.forceOCR {
		pages, err := extractor.ExtractTextOCR(inputPath, ocrOpts)
		if err != nil {
			return "", fmt.Errorf("OCR failed: %w", err)
		}
		return strings.Join(pages, "\n\n"), nil
	}

	text, err := extractor.ExtractTextCombined(inputPath)
	if err == nil {
		return text, nil
	}
	if extractor.IsOCRAvailable() {
		pages, ocrErr := extractor.ExtractTextOCR(inputPath, ocrOpts)
		if ocrErr == nil {
			return strings.Join(pages, "\n\n"), nil
		}
		return "", fmt.Errorf("%v; OCR also failed: %v", err, ocrErr)
	}
	return "", fmt.Errorf("PDF extraction failed: %w", err)
}

func printSummary(rec *models.RibRecord) {
	fmt.Printf("Processed: %s\n", rec.SourceFile)
	if rec.AccountHolder.Present() {
		fmt.Printf("  Titulaire: %s\n", rec.AccountHolder.Value)
	}
	if rec.IBAN.Present() {
		fmt.Printf("  IBAN: %s (%s)\n", rec.IBAN.Value, rec.IBAN.Status)
	} else {
		fmt.Println("  IBAN: introuvable")
	}
	if rec.RIBKey.Status == models.StatusInvalid {
		fmt.Println("  Attention: la clé RIB ne correspond pas aux composants extraits")
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
