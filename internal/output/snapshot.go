package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SnapshotWriter dumps each page's listing container as a markdown file so
// layout changes on the remote site can be diffed without re-running Chrome.
// The remote markup structure is a hard dependency and breaks silently;
// snapshots are the debugging aid for that.
type SnapshotWriter struct {
	dir       string
	mu        sync.Mutex
	converter *md.Converter
}

// NewSnapshotWriter creates the snapshot directory and a markdown converter
func NewSnapshotWriter(dir string) (*SnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &SnapshotWriter{dir: dir, converter: converter}, nil
}

// Write converts one page's container markup to markdown and stores it as
// page-<n>.md. The container is a bare <tbody> fragment, so it is re-wrapped
// in a <table> before parsing.
func (sw *SnapshotWriter) Write(page int, containerHTML string) error {
	cleaned, err := CleanHTML("<table>" + containerHTML + "</table>")
	if err != nil {
		return err
	}

	// Converter rules are mutable; serialize conversions.
	sw.mu.Lock()
	mdStr, err := sw.converter.ConvertString(cleaned)
	sw.mu.Unlock()
	if err != nil {
		return err
	}

	name := filepath.Join(sw.dir, fmt.Sprintf("page-%03d.md", page))
	return os.WriteFile(name, []byte(mdStr), 0644)
}

// CleanHTML removes unwanted elements and attributes to produce a readable
// excerpt of the captured markup
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, link, meta, noscript, iframe, svg, form, input, button, canvas").Remove()

	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		node := s.Nodes[0]
		var newAttrs []html.Attribute
		for _, attr := range node.Attr {
			keep := attr.Key == "class"
			switch node.Data {
			case "a":
				if attr.Key == "href" || attr.Key == "title" {
					keep = true
				}
			case "img":
				if attr.Key == "src" || attr.Key == "alt" {
					keep = true
				}
			}
			if keep {
				newAttrs = append(newAttrs, attr)
			}
		}
		node.Attr = newAttrs
	})

	htmlStr, err := doc.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(htmlStr), nil
}
