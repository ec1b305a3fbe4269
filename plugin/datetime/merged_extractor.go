package datetime

import (
	"sort"
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// MergedExtractor unions the category extractors of one culture and
// resolves conflicts between their spans.
//
// A span covered by a span of another type is dropped; equal spans keep
// the type extracted first (datetime, date, time, holiday, daterange,
// datetimerange, timerange, set, duration). Of two partially overlapping
// spans the longer one survives. Single ambiguous words ("may", "sun")
// are dropped unless the text before them reads like a date context, or
// CalendarMode is set. Modifier words next to a span are recorded in its
// Data.Mod without widening it.
type MergedExtractor struct {
	cfg        *culture.Config
	extractors []recognizer.Extractor
	options    Options
}

// NewMergedExtractor builds the merged extractor of cfg.
func NewMergedExtractor(cfg *culture.Config, options Options) *MergedExtractor {
	return &MergedExtractor{
		cfg:        cfg,
		extractors: extractor.New(cfg, options.flags()).All(),
		options:    options,
	}
}

type candidate struct {
	er       recognizer.ExtractResult
	priority int
}

func (e *MergedExtractor) Extract(text string, ref time.Time) []recognizer.ExtractResult {
	var candidates []candidate
	for priority, x := range e.extractors {
		for _, er := range x.Extract(text, ref) {
			if e.ambiguous(text, er) {
				continue
			}
			candidates = append(candidates, candidate{er: er, priority: priority})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.er.Length != b.er.Length {
			return a.er.Length > b.er.Length
		}
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return a.er.Start < b.er.Start
	})

	// taken marks the bytes claimed by kept spans. Kept spans are
	// disjoint, so each byte is marked at most once.
	taken := make([]bool, len(text))
	kept := make([]recognizer.ExtractResult, 0, len(candidates))
	for _, c := range candidates {
		if overlapsTaken(taken, c.er) {
			continue
		}
		for i := c.er.Start; i < c.er.End(); i++ {
			taken[i] = true
		}
		kept = append(kept, c.er)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })

	for i := range kept {
		e.attachModifier(text, &kept[i])
	}
	return kept
}

func overlapsTaken(taken []bool, er recognizer.ExtractResult) bool {
	for i := er.Start; i < er.End(); i++ {
		if taken[i] {
			return true
		}
	}
	return false
}

func (e *MergedExtractor) ambiguous(text string, er recognizer.ExtractResult) bool {
	if e.options.Has(CalendarMode) || !e.cfg.IsAmbiguous(er.Text) {
		return false
	}
	if rescue := e.cfg.AmbiguityRescue; rescue != nil {
		if before, _ := extractor.LeadingContext(text, er.Start); rescue.MatchString(before) {
			return false
		}
	}
	return true
}

// attachModifier records the first modifier whose context matches around
// er. Duration modifiers apply to durations only, the others to points and
// ranges.
func (e *MergedExtractor) attachModifier(text string, er *recognizer.ExtractResult) {
	if er.Type == extractor.TypeSet {
		return
	}
	isDuration := er.Type == extractor.TypeDuration
	before, _ := extractor.LeadingContext(text, er.Start)
	after := extractor.TrailingContext(text, er.End())
	for _, m := range e.cfg.Modifiers {
		if m.Durations != isDuration {
			continue
		}
		if (m.Leading != nil && m.Leading.MatchString(before)) || (m.Trailing != nil && m.Trailing.MatchString(after)) {
			d := *extractor.DataOf(*er)
			d.Mod = m.Mod
			er.Data = &d
			return
		}
	}
}
