package parser

import (
	"time"

	"github.com/hrygo/chronoparse/plugin/datetime/culture"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/datetime/extractor"
	"github.com/hrygo/chronoparse/plugin/recognizer"
)

// DurationParser resolves lengths of time. The value is the nominal
// length in seconds.
type DurationParser struct{ *base }

func (p *DurationParser) Parse(er recognizer.ExtractResult, _ time.Time) (*DateTimeParseResult, bool) {
	parts, ok := p.Parts(er)
	if !ok {
		return nil, false
	}
	v := Value{Kind: KindDuration, Seconds: dateutil.TotalSeconds(parts)}
	return newResult(er, dateutil.FormatDuration(parts), v, v), true
}

// Parts returns the "<value> <unit>" components of a duration span.
func (p *DurationParser) Parts(er recognizer.ExtractResult) ([]dateutil.DurationPart, bool) {
	d := extractor.DataOf(er)
	if d.Pattern == extractor.PatternComposite {
		var parts []dateutil.DurationPart
		for _, sub := range d.Subs {
			sp, ok := p.Parts(sub)
			if !ok {
				return nil, false
			}
			parts = append(parts, sp...)
		}
		return parts, len(parts) > 0
	}

	g := d.Groups
	unit, ok := p.cfg.Unit(g["unit"])
	if !ok {
		return nil, false
	}
	var v float64
	switch d.Pattern {
	case "andHalf":
		v, ok = p.cfg.Number(g["num"])
		v += 0.5
	case "half":
		v = 0.5
	case "inexact":
		v, ok = p.cfg.Inexact[culture.Normalize(g["inexact"])]
	case "whole":
		v = 1
	default:
		v, ok = p.cfg.Number(g["num"])
	}
	if !ok || v <= 0 {
		return nil, false
	}
	return []dateutil.DurationPart{{Value: v, Unit: unit}}, true
}
