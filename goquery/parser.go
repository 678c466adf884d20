// Package goquery provides the HTML parser for statute documents
// published on retsinformation.dk.
package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sheikhomar/paraglide"
)

// Ensure RetsinformationParser implements paraglide.StatuteParser at compile time.
var _ paraglide.StatuteParser = (*RetsinformationParser)(nil)

// headerRe matches the "LBK nr 1180 af 21/09/2023" document header.
var headerRe = regexp.MustCompile(`LBK\s+nr\s+(\d{1,10})\s+af\s+(\d{2})/(\d{2})/(\d{4})`)

// RetsinformationParser parses the rendered HTML of a retsinformation.dk
// statute page (a "lovbekendtgørelse") into a structured statute.
//
// The parser walks the <p> elements of div.document-content in document
// order. The element classes drive a small state machine: "Kapitel"
// opens a chapter, "Paragraf" opens a paragraph, "Stk2" opens a
// subsection, "Liste1" attaches a list item to the innermost open
// block, and "IkraftTekst" marks the end of the statute body.
type RetsinformationParser struct{}

// NewRetsinformationParser creates a new RetsinformationParser.
func NewRetsinformationParser() *RetsinformationParser {
	return &RetsinformationParser{}
}

// Parse processes rendered statute HTML and returns the statute tree.
func (p *RetsinformationParser) Parse(html string) (*paraglide.Statute, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, paraglide.Errorf(paraglide.EINVALID, "failed to parse HTML: %v", err)
	}

	number, date, err := parseHeader(doc)
	if err != nil {
		return nil, err
	}

	title, err := parseTitle(doc)
	if err != nil {
		return nil, err
	}

	chapters, err := parseChapters(doc)
	if err != nil {
		return nil, err
	}

	return &paraglide.Statute{
		Number:   number,
		Date:     date,
		Title:    title,
		Chapters: chapters,
	}, nil
}

// parseHeader extracts the statute number and publication date from the
// <h5> document header.
func parseHeader(doc *goquery.Document) (int, time.Time, error) {
	sel := doc.Find("h5.d-sm-inline.m-0.mr-sm-2").First()
	if sel.Length() == 0 {
		return 0, time.Time{}, paraglide.Errorf(paraglide.EINVALID,
			`could not find <h5> element with class "d-sm-inline m-0 mr-sm-2"`)
	}

	text := sel.Text()
	m := headerRe.FindStringSubmatch(text)
	if m == nil {
		return 0, time.Time{}, paraglide.Errorf(paraglide.EINVALID,
			"could not extract statute number and date from %q", strings.TrimSpace(text))
	}

	number, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[3])
	year, _ := strconv.Atoi(m[4])

	return number, time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// parseTitle extracts the statute title.
func parseTitle(doc *goquery.Document) (string, error) {
	sel := doc.Find("div.document-content p.Titel2").First()
	if sel.Length() == 0 {
		return "", paraglide.Errorf(paraglide.EINVALID,
			`could not extract title: no <p> element with class "Titel2" found`)
	}
	return cleanedText(sel), nil
}

// parseChapters walks the document content and builds the chapter tree.
func parseChapters(doc *goquery.Document) ([]*paraglide.Chapter, error) {
	var (
		chapters         []*paraglide.Chapter
		currentChapter   *paraglide.Chapter
		currentParagraph *paraglide.Paragraph
		currentSub       *paraglide.Subsection
		parseErr         error
	)

	doc.Find("div.document-content p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		switch {
		case sel.HasClass("Kapitel"):
			currentChapter, parseErr = parseChapter(sel)
			if parseErr != nil {
				return false
			}
			chapters = append(chapters, currentChapter)
			currentParagraph = nil
			currentSub = nil

		case sel.HasClass("KapitelOverskrift2"):
			// Chapter headings immediately follow their Kapitel marker.
			if currentChapter != nil && currentChapter.Title == "" {
				span := sel.Find("span").First()
				if span.Length() == 0 {
					parseErr = paraglide.Errorf(paraglide.EINVALID,
						"could not find title for chapter %d", currentChapter.Number)
					return false
				}
				currentChapter.Title = cleanedText(span)
			}

		case sel.HasClass("Paragraf"):
			if currentChapter == nil {
				parseErr = paraglide.Errorf(paraglide.EINVALID, "found paragraph outside chapter")
				return false
			}
			currentParagraph, parseErr = parseParagraph(sel)
			if parseErr != nil {
				return false
			}
			currentChapter.Paragraphs = append(currentChapter.Paragraphs, currentParagraph)
			currentSub = nil

		case sel.HasClass("Stk2"):
			if currentParagraph == nil {
				parseErr = paraglide.Errorf(paraglide.EINVALID, "found subsection outside paragraph")
				return false
			}
			currentSub, parseErr = parseSubsection(sel)
			if parseErr != nil {
				return false
			}
			currentParagraph.Subsections = append(currentParagraph.Subsections, currentSub)

		case sel.HasClass("Liste1"):
			if currentParagraph == nil {
				parseErr = paraglide.Errorf(paraglide.EINVALID, "found list outside paragraph")
				return false
			}
			var text paraglide.StructuredText
			text, parseErr = parseListBlock(sel)
			if parseErr != nil {
				return false
			}
			// List blocks always belong to the innermost open block.
			if currentSub != nil {
				currentSub.Texts = append(currentSub.Texts, text)
			} else {
				currentParagraph.Texts = append(currentParagraph.Texts, text)
			}

		case sel.HasClass("IkraftTekst"):
			// The "IkraftTekst" element describes other parts of the
			// statutory order; the statute body ends here.
			return false
		}

		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	// A Kapitel marker without a following heading is malformed input.
	for _, c := range chapters {
		if c.Title == "" {
			return nil, paraglide.Errorf(paraglide.EINVALID,
				"could not find title for chapter %d", c.Number)
		}
	}

	return chapters, nil
}

// parseChapter parses a "Kapitel" marker element. The chapter number
// comes from the id of the contained span (e.g. "Kap4" -> 4); the title
// is filled in by the following KapitelOverskrift2 element.
func parseChapter(sel *goquery.Selection) (*paraglide.Chapter, error) {
	span := sel.Find(`span[id^="Kap"]`).First()
	if span.Length() == 0 {
		return nil, paraglide.Errorf(paraglide.EINVALID,
			`could not find <span> element with id starting with "Kap"`)
	}

	id, ok := span.Attr("id")
	if !ok {
		return nil, paraglide.Errorf(paraglide.EINVALID, "chapter span has no id attribute")
	}

	number, err := strconv.Atoi(strings.TrimPrefix(id, "Kap"))
	if err != nil {
		return nil, paraglide.Errorf(paraglide.EINVALID, "invalid chapter span id %q", id)
	}

	return &paraglide.Chapter{
		Number: number,
		GUID:   sel.AttrOr("id", ""),
	}, nil
}

// parseParagraph parses a "Paragraf" element. The "§ N." marker span
// provides the ID and reference; the paragraph text is the element's
// own text with the marker removed.
func parseParagraph(sel *goquery.Selection) (*paraglide.Paragraph, error) {
	span := sel.Find("span.ParagrafNr").First()
	if span.Length() == 0 {
		return nil, paraglide.Errorf(paraglide.EINVALID,
			`could not find <span> element with class "ParagrafNr"`)
	}

	id, ok := span.Attr("id")
	if !ok {
		return nil, paraglide.Errorf(paraglide.EINVALID, "paragraph number span has no id attribute")
	}

	return &paraglide.Paragraph{
		GUID:      sel.AttrOr("id", ""),
		ID:        id,
		Reference: strings.ReplaceAll(span.Text(), ".", ""),
		Texts: []paraglide.StructuredText{
			{Kind: paraglide.TextPlain, Text: cleanedText(sel)},
		},
	}, nil
}

// parseSubsection parses a "Stk2" element. The reference is the marker
// text without the trailing period (e.g. "Stk. 2." -> "Stk. 2").
func parseSubsection(sel *goquery.Selection) (*paraglide.Subsection, error) {
	span := sel.Find("span.StkNr").First()
	if span.Length() == 0 {
		return nil, paraglide.Errorf(paraglide.EINVALID,
			`could not find <span> element with class "StkNr"`)
	}

	guid, ok := span.Attr("id")
	if !ok {
		return nil, paraglide.Errorf(paraglide.EINVALID, "subsection number span has no id attribute")
	}

	return &paraglide.Subsection{
		GUID:      guid,
		Reference: strings.TrimSuffix(strings.TrimSpace(span.Text()), "."),
		Texts: []paraglide.StructuredText{
			{Kind: paraglide.TextPlain, Text: cleanedText(sel)},
		},
	}, nil
}

// parseListBlock parses a "Liste1" element into a list text block.
func parseListBlock(sel *goquery.Selection) (paraglide.StructuredText, error) {
	span := sel.Find("span.Liste1Nr").First()
	if span.Length() == 0 {
		return paraglide.StructuredText{}, paraglide.Errorf(paraglide.EINVALID,
			`could not find <span> element with class "Liste1Nr"`)
	}

	guid, ok := span.Attr("id")
	if !ok {
		return paraglide.StructuredText{}, paraglide.Errorf(paraglide.EINVALID,
			"list number span has no id attribute")
	}

	return paraglide.StructuredText{
		Kind:      paraglide.TextList,
		Text:      cleanedText(sel),
		GUID:      guid,
		Reference: span.Text(),
	}, nil
}

// cleanedText returns the element's own text with all child elements
// removed and whitespace collapsed to single spaces. Marker spans
// (paragraph numbers, subsection numbers) are child elements, so they
// never leak into the extracted text.
func cleanedText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find("*").Remove()
	return strings.Join(strings.Fields(clone.Text()), " ")
}
