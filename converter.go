package prosecheck

// Converter converts HTML to Markdown so HTML documents can be checked
// by the markdown-aware pipeline.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
