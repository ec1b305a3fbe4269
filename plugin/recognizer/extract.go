// Package recognizer contains the culture independent parts of text
// recognition: extraction results, token merging, model results and the
// model registry.
package recognizer

import (
	"sort"
	"time"
)

// ExtractResult is a recognized span of the source text.
//
// Offsets are byte offsets: Text == source[Start:Start+Length].
type ExtractResult struct {
	Start  int
	Length int
	Text   string
	Type   string
	// Data is an opaque, extractor specific payload for the parser.
	Data any
}

// End returns the exclusive end offset.
func (er ExtractResult) End() int {
	return er.Start + er.Length
}

// IsOverlap reports whether the two spans share at least one byte.
func IsOverlap(a, b ExtractResult) bool {
	return !(a.Start >= b.End() || b.Start >= a.End())
}

// IsCover reports whether outer contains inner and is strictly larger on
// at least one side, or equal with a different type.
func IsCover(outer, inner ExtractResult) bool {
	if outer.Start > inner.Start || outer.End() < inner.End() {
		return false
	}
	if outer.Start == inner.Start && outer.End() == inner.End() {
		return outer.Type != inner.Type
	}
	return true
}

// Extractor finds spans of one category in text.
type Extractor interface {
	Extract(text string, ref time.Time) []ExtractResult
}

// Token is a half-open [Start, End) span produced while matching patterns.
type Token struct {
	Start int
	End   int
}

// Length returns the span length.
func (t Token) Length() int {
	return t.End - t.Start
}

// MergeAllTokens coalesces overlapping or touching tokens into maximal
// spans and returns one ExtractResult of type typ per span, ordered by
// start offset.
func MergeAllTokens(tokens []Token, text, typ string) []ExtractResult {
	if len(tokens) == 0 {
		return nil
	}
	sorted := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Start < 0 || t.End > len(text) || t.End <= t.Start {
			continue
		}
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Length() > sorted[j].Length()
	})

	var merged []Token
	for _, t := range sorted {
		if n := len(merged); n > 0 && t.Start <= merged[n-1].End {
			if t.End > merged[n-1].End {
				merged[n-1].End = t.End
			}
			continue
		}
		merged = append(merged, t)
	}

	results := make([]ExtractResult, 0, len(merged))
	for _, t := range merged {
		results = append(results, ExtractResult{
			Start:  t.Start,
			Length: t.Length(),
			Text:   text[t.Start:t.End],
			Type:   typ,
		})
	}
	return results
}
