package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/vedantilag/docextract/internal/imaging"
)

const (
	docxBodyPart = "word/document.xml"
	docxRelsPart = "word/_rels/document.xml.rels"
)

type docxExtractor struct{}

func (docxExtractor) Format() Format { return FormatDOCX }

func (docxExtractor) Extract(data []byte) (Result, error) {
	text, err := DOCXText(data)
	if err != nil {
		return Result{}, &DecodeError{Format: FormatDOCX, Err: err}
	}
	raws, err := DOCXImages(data)
	if err != nil {
		return Result{}, &DecodeError{Format: FormatDOCX, Err: err}
	}
	images := make([][]byte, 0, len(raws))
	for _, raw := range raws {
		payload, err := imaging.Reencode(raw.Data)
		if err != nil {
			return Result{}, &DecodeError{Format: FormatDOCX, Err: fmt.Errorf("image %d: %w", raw.IndexInPage, err)}
		}
		images = append(images, payload)
	}
	return Result{Text: Normalize(text), Images: images}, nil
}

// DOCXText walks the top-level body blocks of word/document.xml in document
// order. Paragraphs contribute their run text; tables contribute one line per
// row with cells joined by " | ", followed by a blank separator line.
func DOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}
	body, err := readZipFile(zr, docxBodyPart)
	if err != nil {
		return "", err
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	var parts []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document body: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "p":
			if text := strings.TrimSpace(docxParagraph(dec)); text != "" {
				parts = append(parts, text)
			}
		case "tbl":
			for _, row := range docxTable(dec) {
				parts = append(parts, strings.Join(row, " | "))
			}
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, "\n"), nil
}

// DOCXImages returns the media payloads referenced by the document's image
// relationships, in relationship file order. A missing relationships part
// means the document embeds no media.
func DOCXImages(data []byte) ([]RawImage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX archive: %w", err)
	}
	rels, err := readZipFile(zr, docxRelsPart)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc struct {
		Relationships []struct {
			Type       string `xml:"Type,attr"`
			Target     string `xml:"Target,attr"`
			TargetMode string `xml:"TargetMode,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(rels, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document relationships: %w", err)
	}

	var raws []RawImage
	for _, rel := range doc.Relationships {
		if !strings.Contains(rel.Type, "image") || rel.TargetMode == "External" {
			continue
		}
		target := strings.TrimPrefix(rel.Target, "/")
		if !strings.HasPrefix(target, "word/") {
			target = "word/" + target
		}
		payload, err := readZipFile(zr, target)
		if err != nil {
			return nil, fmt.Errorf("failed to read media part %s: %w", target, err)
		}
		raws = append(raws, RawImage{Data: payload, IndexInPage: len(raws) + 1})
	}
	return raws, nil
}

// Each walker below enters with its element's start tag already consumed and
// returns after consuming the matching end tag, so the caller's token stream
// stays aligned on top-level blocks.

func docxParagraph(dec *xml.Decoder) string {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				sb.WriteString(elementText(dec))
			case "pPr":
				// Paragraph properties hold tab-stop definitions, which
				// must not be mistaken for run-level tabs.
				skipElement(dec)
			case "tab":
				sb.WriteString("\t")
				depth++
			case "br", "cr":
				sb.WriteString("\n")
				depth++
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return sb.String()
}

func docxTable(dec *xml.Decoder) [][]string {
	var rows [][]string
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tr" {
				rows = append(rows, docxTableRow(dec))
			} else {
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return rows
}

func docxTableRow(dec *xml.Decoder) []string {
	var cells []string
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tc" {
				cells = append(cells, docxTableCell(dec))
			} else {
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return cells
}

func docxTableCell(dec *xml.Decoder) string {
	var paras []string
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" {
				paras = append(paras, docxParagraph(dec))
			} else {
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(strings.Join(paras, "\n"))
}

func elementText(dec *xml.Decoder) string {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return sb.String()
}

func skipElement(dec *xml.Decoder) {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
