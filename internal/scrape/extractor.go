// internal/scrape/extractor.go
package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dappdex/harvest/pkg/models"
	"github.com/rs/zerolog/log"
)

// ExtractRecords parses a page's raw listing container markup into records.
// It is a pure function of its input: the same markup always yields the same
// record list. A row without a name is skipped on its own; the surrounding
// rows still produce records.
func ExtractRecords(containerHTML string) ([]models.Record, error) {
	// The HTML5 parser drops table rows that appear outside a <table>, and the
	// captured container is a bare <tbody> fragment.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table>" + containerHTML + "</table>"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse container markup: %w", err)
	}

	var records []models.Record
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		rec, ok := extractRow(row)
		if !ok {
			log.Debug().Int("row", i+1).Msg("Skipping listing row without a name")
			return
		}
		records = append(records, rec)
	})

	return records, nil
}

// extractRow maps one <tr> to a record. Cell positions follow the listing
// table layout: details in cell 3, chains and devices as titled links in
// cells 4-5, flags in cells 6-8, earn mechanics in cell 9, score in cell 10.
func extractRow(row *goquery.Selection) (models.Record, bool) {
	cells := row.Find("td")
	if cells.Length() < 10 {
		return nil, false
	}

	details := cells.Eq(2).Find("div.__TextView")
	name := cleanText(details.Find("b").First().Text())
	if name == "" {
		return nil, false
	}

	link, _ := cells.Eq(2).Find("a.dapp_detaillink").First().Attr("href")

	return models.Record{
		"Name":       name,
		"Desc":       cleanText(details.Find("span").First().Text()),
		"Category":   joinTexts(details.Find("div.__TagItem")),
		"Blockchain": joinTitles(cells.Eq(3).Find("a[title]")),
		"Device":     joinTitles(cells.Eq(4).Find("a[title]")),
		"Status":     cleanText(cells.Eq(5).Find("a").First().Text()),
		"NFT":        cleanText(cells.Eq(6).Find("a").First().Text()),
		"F2P":        cleanText(cells.Eq(7).Find("a").First().Text()),
		"P2E":        joinTexts(cells.Eq(8).Find("a")),
		"Score":      cleanText(cells.Eq(9).Find("span.dailychangepercentage").First().Text()),
		"Link":       link,
	}, true
}

// cleanText trims and collapses whitespace in element text
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinTexts joins the text of every element in the selection with "; "
func joinTexts(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := cleanText(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "; ")
}

// joinTitles joins the title attribute of every element in the selection with "; "
func joinTitles(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if t, ok := s.Attr("title"); ok && t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "; ")
}
