// Package markdown converts uploaded documents into markdown text for
// classification and graph extraction.
package markdown

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

var ErrUnsupportedFileType = errors.New("unsupported file type for conversion")

// Convert produces the markdown text of a document. Text and markdown files
// pass through with invalid UTF-8 dropped; PDF and DOCX get their text
// extracted.
func Convert(content []byte, fileType domain.FileType) (string, error) {
	switch fileType {
	case domain.FileTypeTXT, domain.FileTypeMD:
		return decodeText(content), nil
	case domain.FileTypePDF:
		return extractPDF(content)
	case domain.FileTypeDOCX:
		return extractDOCX(content)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, fileType)
	}
}

func decodeText(content []byte) string {
	text := strings.ToValidUTF8(string(content), "")
	return strings.TrimPrefix(text, "\ufeff")
}

func extractPDF(content []byte) (text string, err error) {
	// GetPlainText panics on some malformed files; surface that as an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract pdf text: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

// extractDOCX walks word/document.xml. Runs (<w:t>) accumulate into
// paragraphs (<w:p>), tabs and breaks map to their plain-text equivalents.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", errors.New("docx has no word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document xml: %w", err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return "", fmt.Errorf("decode text run: %w", err)
				}
				b.WriteString(text)
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				b.WriteString("\n\n")
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}
