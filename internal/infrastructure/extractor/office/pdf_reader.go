package office

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/docsense/internal/core/classify"
	"github.com/kirillkom/docsense/internal/core/domain"
)

func extractPDF(data []byte, advanced bool) (text string, structure domain.Structure, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, structure = "", domain.Structure{}
			err = domain.Fail(domain.ErrCorruptFile, "read pdf", fmt.Sprint(r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.Structure{}, domain.WrapError(domain.ErrCorruptFile, "open pdf", err)
	}
	numPages := reader.NumPage()
	if numPages == 0 {
		return "", domain.Structure{}, domain.Fail(domain.ErrCorruptFile, "open pdf", "document has no pages")
	}

	var (
		pages      = make([][]string, 0, numPages)
		fonts      = map[string]struct{}{}
		tablePages int
		nonLatin   bool
	)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		layout, err := readPage(page)
		if err != nil {
			return "", domain.Structure{}, domain.WrapError(domain.ErrCorruptFile, fmt.Sprintf("read pdf page %d", i), err)
		}
		lines := rawLines(layout)
		pages = append(pages, lines)

		if !advanced {
			continue
		}
		for _, f := range layout.fonts {
			fonts[f] = struct{}{}
		}
		pageText := strings.Join(lines, "\n")
		if strings.Contains(pageText, "table") || strings.Contains(pageText, "Table") {
			tablePages++
		}
		nonLatin = nonLatin || hasNonLatin(pageText)
	}

	text = assemble(pages)
	if text == "" {
		return "", domain.Structure{}, domain.Fail(domain.ErrNoExtractableText, "extract pdf", "no text found")
	}

	structure = classify.ScanStructure(text)
	structure.Pages = numPages
	if advanced {
		structure.Fonts = sortedKeys(fonts)
		structure.TablePages = tablePages
		structure.NonLatin = nonLatin
		images, err := countImages(data)
		if err != nil {
			slog.Debug("pdf_image_scan_failed", "error", err.Error())
		}
		structure.Images = images
	}
	return text, structure, nil
}

func readPage(page pdf.Page) (pdfPage, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return pdfPage{}, err
	}
	// PDF y grows upwards, so the top row has the largest position.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position > rows[j].Position })

	out := pdfPage{lines: make([]pdfLine, 0, len(rows))}
	for _, row := range rows {
		var b strings.Builder
		for _, t := range row.Content {
			b.WriteString(t.S)
		}
		out.lines = append(out.lines, pdfLine{text: b.String(), y: float64(row.Position)})
	}

	sizes := map[float64]int{}
	fonts := map[string]struct{}{}
	for _, t := range page.Content().Text {
		if t.FontSize > 0 {
			sizes[math.Round(t.FontSize)]++
		}
		if t.Font != "" {
			fonts[t.Font] = struct{}{}
		}
	}
	out.fontSize = dominantSize(sizes)
	out.fonts = sortedKeys(fonts)
	return out, nil
}

// dominantSize picks the most frequent size, the smaller one on ties.
func dominantSize(sizes map[float64]int) float64 {
	best, bestCount := 0.0, 0
	for size, count := range sizes {
		if count > bestCount || (count == bestCount && size < best) {
			best, bestCount = size, count
		}
	}
	return best
}

func hasNonLatin(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
