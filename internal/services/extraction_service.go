package services

import (
	"encoding/json"
	"strings"

	"fitmanager/internal/models"
)

// markerKey identifies a program document inside arbitrary brace-delimited
// text: every generated program JSON carries a "cliente" field.
const markerKey = `"cliente"`

// ExtractionService locates and parses the program document embedded in a
// model reply. Best-effort by design: it never returns an error, only a
// tagged outcome.
type ExtractionService struct{}

// NewExtractionService creates the extractor.
func NewExtractionService() *ExtractionService {
	return &ExtractionService{}
}

// ExtractProgram scans assistant text for a structured program document.
//
// Ladder:
//  1. first ```json fenced block → candidate
//  2. widest {...} span containing the marker key → candidate
//  3. nothing found → raw result carrying the whole reply
//
// A candidate that parses yields a parsed result; one that doesn't yields
// a raw result carrying the candidate fragment, not the whole reply.
func (s *ExtractionService) ExtractProgram(text string) models.ExtractedProgram {
	candidate, found := findCandidate(text)
	if !found {
		GetMetrics().RecordExtraction(models.ExtractionRaw)
		return models.ExtractedProgram{Status: models.ExtractionRaw, Text: text}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		GetMetrics().RecordExtraction(models.ExtractionRaw)
		return models.ExtractedProgram{Status: models.ExtractionRaw, Text: candidate}
	}
	GetMetrics().RecordExtraction(models.ExtractionParsed)
	return models.ExtractedProgram{Status: models.ExtractionParsed, Document: doc}
}

func findCandidate(text string) (string, bool) {
	if inner, ok := fencedJSONBlock(text); ok {
		return inner, true
	}
	if span, ok := widestObjectSpan(text); ok {
		return span, true
	}
	return "", false
}

// fencedJSONBlock returns the inner text of the first ```json code block.
func fencedJSONBlock(text string) (string, bool) {
	idx := strings.Index(text, "```json")
	if idx < 0 {
		return "", false
	}
	start := idx + len("```json")
	end := strings.Index(text[start:], "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(text[start : start+end]), true
}

// widestObjectSpan takes the span from the first "{" to the last "}" and
// accepts it only when it contains the marker key. Greedy on purpose: a
// program reply often holds several JSON objects (one per training day)
// and the widest span covers them all.
func widestObjectSpan(text string) (string, bool) {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first < 0 || last <= first {
		return "", false
	}
	span := text[first : last+1]
	if !strings.Contains(span, markerKey) {
		return "", false
	}
	return span, true
}
