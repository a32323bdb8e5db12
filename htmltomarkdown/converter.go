// Package htmltomarkdown converts HTML documents to Markdown so they can
// be run through the markdown-aware check pipeline.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/akarpinski/prosecheck"
)

// Ensure Converter implements prosecheck.Converter at compile time.
var _ prosecheck.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. The resulting markdown goes straight
// into ScanExclusions, so converted code blocks, links, and images end up
// excluded from checking the same way native markdown input would.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", prosecheck.Errorf(prosecheck.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
