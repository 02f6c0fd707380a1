package office

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/kirillkom/docsense/internal/core/domain"
)

const (
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart  = "word/document.xml"
)

type docxParagraph struct {
	text    strings.Builder
	heading bool
}

type docxTable struct {
	rows [][]string
	row  []string
	cell *strings.Builder
}

// docxWalker collects paragraphs in document order, cell paragraphs included,
// and renders each table once it closes.
type docxWalker struct {
	paragraphs []*docxParagraph
	tables     []*docxTable
	inText     int

	elements  []string
	structure domain.Structure
}

func extractDOCX(data []byte) (string, domain.Structure, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.Structure{}, domain.WrapError(domain.ErrCorruptFile, "open docx", err)
	}

	var part *zip.File
	for _, f := range archive.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", domain.Structure{}, domain.Fail(domain.ErrMissingDocumentBody, "open docx", "missing "+documentPart)
	}
	rc, err := part.Open()
	if err != nil {
		return "", domain.Structure{}, domain.WrapError(domain.ErrCorruptFile, "open docx body", err)
	}
	defer rc.Close()

	var (
		w          docxWalker
		tableTexts []string
	)
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", domain.Structure{}, domain.WrapError(domain.ErrMalformedDocument, "parse docx body", err)
		}
		if rendered, ok := w.handle(tok); ok {
			tableTexts = append(tableTexts, rendered)
		}
	}
	if len(w.paragraphs) > 0 || len(w.tables) > 0 {
		return "", domain.Structure{}, domain.Fail(domain.ErrMalformedDocument, "parse docx body", "unterminated element")
	}

	text := strings.TrimSpace(strings.Join(append(w.elements, tableTexts...), "\n\n"))
	if text == "" {
		return "", domain.Structure{}, domain.Fail(domain.ErrNoExtractableText, "extract docx", "no text content found")
	}
	return text, w.structure, nil
}

// handle consumes one token and returns a rendered table when one closes.
func (w *docxWalker) handle(tok xml.Token) (string, bool) {
	switch t := tok.(type) {
	case xml.StartElement:
		if t.Name.Space != wordNamespace {
			return "", false
		}
		switch t.Name.Local {
		case "p":
			w.paragraphs = append(w.paragraphs, &docxParagraph{})
		case "pStyle":
			if p := w.paragraph(); p != nil {
				style := strings.ToLower(attr(t, "val"))
				p.heading = p.heading || strings.Contains(style, "heading") || strings.Contains(style, "title")
			}
		case "t":
			w.inText++
		case "tbl":
			w.tables = append(w.tables, &docxTable{})
		case "tr":
			if tbl := w.table(); tbl != nil {
				tbl.row = []string{}
			}
		case "tc":
			if tbl := w.table(); tbl != nil {
				tbl.cell = &strings.Builder{}
			}
		}
	case xml.CharData:
		if w.inText == 0 {
			return "", false
		}
		if p := w.paragraph(); p != nil {
			p.text.Write(t)
		}
		if tbl := w.table(); tbl != nil && tbl.cell != nil {
			tbl.cell.Write(t)
		}
	case xml.EndElement:
		if t.Name.Space != wordNamespace {
			return "", false
		}
		switch t.Name.Local {
		case "p":
			w.closeParagraph()
		case "t":
			if w.inText > 0 {
				w.inText--
			}
		case "tc":
			if tbl := w.table(); tbl != nil && tbl.cell != nil {
				tbl.row = append(tbl.row, strings.TrimSpace(tbl.cell.String()))
				tbl.cell = nil
			}
		case "tr":
			if tbl := w.table(); tbl != nil && tbl.row != nil {
				tbl.rows = append(tbl.rows, tbl.row)
				tbl.row = nil
			}
		case "tbl":
			return w.closeTable()
		}
	}
	return "", false
}

func (w *docxWalker) paragraph() *docxParagraph {
	if len(w.paragraphs) == 0 {
		return nil
	}
	return w.paragraphs[len(w.paragraphs)-1]
}

func (w *docxWalker) table() *docxTable {
	if len(w.tables) == 0 {
		return nil
	}
	return w.tables[len(w.tables)-1]
}

func (w *docxWalker) closeParagraph() {
	p := w.paragraph()
	if p == nil {
		return
	}
	w.paragraphs = w.paragraphs[:len(w.paragraphs)-1]

	text := strings.TrimSpace(p.text.String())
	if text == "" {
		return
	}
	w.structure.Paragraphs++
	if p.heading {
		w.structure.Headings++
		w.elements = append(w.elements, "\n"+domain.HeadingMarker+" "+text+"\n")
		return
	}
	w.elements = append(w.elements, text)
}

func (w *docxWalker) closeTable() (string, bool) {
	tbl := w.table()
	if tbl == nil {
		return "", false
	}
	w.tables = w.tables[:len(w.tables)-1]
	w.structure.Tables++

	var b strings.Builder
	b.WriteString("\n" + domain.TableMarker + "\n")
	for _, row := range tbl.rows {
		b.WriteString(strings.Join(row, domain.TableCellSep))
		b.WriteString("\n")
	}
	return b.String(), true
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
