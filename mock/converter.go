package mock

import "github.com/akarpinski/prosecheck"

var _ prosecheck.Converter = (*Converter)(nil)

// Converter is a mock implementation of prosecheck.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
