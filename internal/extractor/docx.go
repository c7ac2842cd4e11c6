package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"code.sajari.com/docconv/v2"
)

// mainDocumentType is the content type of the body part of a
// word-processor package.
const mainDocumentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

var errNoMainDocument = errors.New("package has no main document part")

// DOCXExtractor finds links in word-processor packages. Only the main
// document body is scanned: headers, footers, footnotes and comments are
// separate parts and are left out.
type DOCXExtractor struct{}

// NewDOCXExtractor creates a DOCX extractor.
func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

// Extract returns every link occurrence in the converted text.
func (e *DOCXExtractor) Extract(doc RawDocument) ([]string, error) {
	text, err := e.Text(doc)
	if err != nil {
		return nil, err
	}

	return FindLinks(text), nil
}

// Text converts the main document part to raw text. A corrupt container or
// a missing main part yield a ParseError; no partial recovery is attempted.
func (e *DOCXExtractor) Text(doc RawDocument) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ParseError{Format: FormatPackaged, Err: recoveredError(r)}
		}
	}()

	archive, err := zip.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", &ParseError{Format: FormatPackaged, Err: err}
	}

	part, err := mainDocumentPart(archive)
	if err != nil {
		return "", &ParseError{Format: FormatPackaged, Err: err}
	}

	rc, err := part.Open()
	if err != nil {
		return "", &ParseError{Format: FormatPackaged, Err: fmt.Errorf("open %s: %w", part.Name, err)}
	}
	defer rc.Close()

	body, err := docconv.DocxXMLToText(rc)
	if err != nil {
		return "", &ParseError{Format: FormatPackaged, Err: fmt.Errorf("convert %s: %w", part.Name, err)}
	}

	return body, nil
}

// contentTypes is the part of [Content_Types].xml that names the package
// parts.
type contentTypes struct {
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// mainDocumentPart finds the body part declared in [Content_Types].xml.
func mainDocumentPart(archive *zip.Reader) (*zip.File, error) {
	files := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		files[f.Name] = f
	}

	manifest, ok := files["[Content_Types].xml"]
	if !ok {
		return nil, errors.New("package has no [Content_Types].xml")
	}

	rc, err := manifest.Open()
	if err != nil {
		return nil, fmt.Errorf("open [Content_Types].xml: %w", err)
	}
	defer rc.Close()

	var types contentTypes
	if err := xml.NewDecoder(rc).Decode(&types); err != nil {
		return nil, fmt.Errorf("read [Content_Types].xml: %w", err)
	}

	for _, override := range types.Overrides {
		if override.ContentType != mainDocumentType {
			continue
		}

		name := strings.TrimPrefix(override.PartName, "/")
		if part, ok := files[name]; ok {
			return part, nil
		}
		return nil, fmt.Errorf("%w: %s is declared but missing", errNoMainDocument, name)
	}

	return nil, errNoMainDocument
}
