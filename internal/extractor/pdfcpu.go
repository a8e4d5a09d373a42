package extractor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractWithPdfcpu pulls text straight out of the page content streams.
// It handles some PDFs the structured library chokes on, at the cost of
// layout: strings come back in stream order, one per line. Good enough
// for label/value documents.
func extractWithPdfcpu(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu crashed: %v", r)
		}
	}()

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read and validate PDF: %w", err)
	}

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		contentReader, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || contentReader == nil {
			continue
		}
		contentBytes, err := io.ReadAll(contentReader)
		if err != nil {
			continue
		}
		if text := textFromContentStream(string(contentBytes)); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no text in content streams")
	}
	return pages, nil
}

// textFromContentStream collects the literal strings shown by Tj/TJ
// operators. Escapes and nested parentheses are honored; hex strings are
// skipped (they are font-subset encoded and come out as garbage anyway,
// the readability gate would reject them).
func textFromContentStream(content string) string {
	var out strings.Builder
	i := 0
	for i < len(content) {
		if content[i] != '(' {
			i++
			continue
		}
		s, next := literalString(content, i)
		if next <= i {
			i++
			continue
		}
		i = next
		if s = strings.TrimSpace(s); s != "" {
			out.WriteString(s)
			out.WriteString("\n")
		}
	}
	return strings.TrimSpace(out.String())
}

// literalString reads one parenthesized PDF string starting at start,
// returning the decoded content and the index after the closing paren.
func literalString(content string, start int) (string, int) {
	var out strings.Builder
	depth := 0
	i := start
	for i < len(content) {
		c := content[i]
		switch {
		case c == '\\' && i+1 < len(content):
			next := content[i+1]
			switch next {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r', 'f', 'b':
				// control escapes carry no field text
			case '(', ')', '\\':
				out.WriteByte(next)
			default:
				out.WriteByte(next)
			}
			i += 2
		case c == '(':
			depth++
			if depth > 1 {
				out.WriteByte(c)
			}
			i++
		case c == ')':
			depth--
			if depth == 0 {
				return out.String(), i + 1
			}
			out.WriteByte(c)
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), start
}
