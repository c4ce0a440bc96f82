package commandkit

import (
	"context"
	"strconv"
	"time"
)

// durationUnits maps the single- and double-letter unit suffixes this
// parser accepts to their time.Duration multiplier. time.ParseDuration has
// no "d" (day) unit, so DurationParser is hand-rolled rather than a thin
// wrapper around it.
var durationUnits = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
}

// DurationParser reads a token shaped as a sum of <int><unit> terms (e.g.
// "1d12h30m") and returns their total as a time.Duration (spec.md §4.3).
type DurationParser struct{}

var Duration ArgumentType[time.Duration] = &DurationParser{}

func (p *DurationParser) Parse(_ context.Context, in *CommandInput) (time.Duration, error) {
	start := in.Cursor
	token, err := in.Read()
	if err != nil {
		return 0, err
	}
	total, ok := parseDurationSum(token)
	if !ok {
		in.Cursor = start
		return 0, newNumberMalformedError(in, token, "duration")
	}
	return total, nil
}

func parseDurationSum(token string) (time.Duration, bool) {
	if token == "" {
		return 0, false
	}
	var total time.Duration
	i := 0
	for i < len(token) {
		numStart := i
		for i < len(token) && (token[i] >= '0' && token[i] <= '9' || token[i] == '.') {
			i++
		}
		if i == numStart {
			return 0, false
		}
		unitStart := i
		for i < len(token) && (token[i] >= 'a' && token[i] <= 'z') {
			i++
		}
		if i == unitStart {
			return 0, false
		}
		n, err := strconv.ParseFloat(token[numStart:unitStart], 64)
		if err != nil {
			return 0, false
		}
		unit, ok := durationUnits[token[unitStart:i]]
		if !ok {
			return 0, false
		}
		total += time.Duration(n * float64(unit))
	}
	return total, true
}
