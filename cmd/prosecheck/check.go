package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/akarpinski/prosecheck"
	"github.com/akarpinski/prosecheck/lru"
)

// CheckCmd checks a set of files and prints positioned problems.
type CheckCmd struct {
	Checker     prosecheck.Checker
	Converter   prosecheck.Converter
	Store       prosecheck.ResultStore
	Seen        prosecheck.SeenFilter
	Language    prosecheck.Language
	Services    []prosecheck.Service
	Concurrency int
	Stdout      io.Writer
}

// Run checks the files concurrently and prints results in completion
// order, one file at a time.
func (c *CheckCmd) Run(ctx context.Context, files []string) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	var mu sync.Mutex // serializes output
	total := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, file := range files {
		g.Go(func() error {
			document, err := c.loadDocument(file)
			if err != nil {
				return err
			}

			// The LRU cache is not safe for concurrent use, so every file
			// gets its own; the persistent store is shared.
			pipeline := &prosecheck.Pipeline{
				Checker:  c.Checker,
				Cache:    lru.New(prosecheck.DefaultCacheCapacity),
				Store:    c.Store,
				Seen:     c.Seen,
				Language: c.Language,
				Services: c.Services,
			}

			result, err := pipeline.CheckDocument(gctx, document)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			mu.Lock()
			defer mu.Unlock()
			total += len(result.Problems)
			c.printResult(file, document, result)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout, "\n%d problem(s) in %d file(s)\n", total, len(files))
	return nil
}

// loadDocument reads a file, converting HTML input to markdown first.
func (c *CheckCmd) loadDocument(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	document := string(data)

	switch strings.ToLower(filepath.Ext(file)) {
	case ".html", ".htm":
		converted, err := c.Converter.Convert(document)
		if err != nil {
			return "", fmt.Errorf("%s: %w", file, err)
		}
		return converted, nil
	}

	return document, nil
}

// printResult prints one file's problems with the file path prefixed to
// every line.
func (c *CheckCmd) printResult(file, document string, result *prosecheck.CheckResult) {
	if len(result.Problems) == 0 {
		fmt.Fprintf(c.Stdout, "%s: ok\n", file)
		return
	}
	for _, line := range strings.Split(prosecheck.FormatProblems(document, result.Problems), "\n") {
		fmt.Fprintf(c.Stdout, "%s:%s\n", file, line)
	}
}
