// Package prosecheck checks free-form documents for grammar and spelling
// problems by delegating linguistic analysis to an external correction
// service, then mapping the results back onto the exact original text.
//
// The hard part is not calling the service: it is round-tripping character
// offsets through a chain of lossy transformations (markdown-aware
// exclusion, whitespace normalization, sentence splitting) and keeping
// those offsets valid while the document is being edited.
//
// This package contains domain types, interfaces, and the pure pipeline
// logic following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// http/, sqlite/, gemini/).
package prosecheck
