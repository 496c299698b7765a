package filter

import (
	"math"
	"strconv"
	"strings"
)

// Range is a numeric interval; a nil bound is unbounded. Open bounds are exclusive.
type Range struct {
	Min     *float64
	Max     *float64
	MinOpen bool
	MaxOpen bool
}

func (r Range) Empty() bool {
	return r.Min == nil && r.Max == nil
}

func (r Range) Contains(v float64) bool {
	if r.Min != nil {
		if r.MinOpen && v <= *r.Min || !r.MinOpen && v < *r.Min {
			return false
		}
	}
	if r.Max != nil {
		if r.MaxOpen && v >= *r.Max || !r.MaxOpen && v > *r.Max {
			return false
		}
	}
	return true
}

// ParseRange reads the range labels used by the listing filters:
//
//	"4-7"          4 to 7 inclusive
//	"15+", "15-"   15 and above
//	"7"            7 and above
//	"Under 500cc"  below 500
//	"Over $200"    above 200
//	"$100-$150"    100 to 150 inclusive
//
// Currency signs, "cc", commas and spaces are ignored. Anything unreadable, or a range whose
// minimum exceeds its maximum, yields an empty Range.
func ParseRange(label string) Range {
	if isAll(label) {
		return Range{}
	}

	s := strings.ToLower(label)
	s = strings.NewReplacer("$", "", "cc", "", ",", "", " ", "", "days", "", "day", "").Replace(s)

	switch {
	case strings.HasPrefix(s, "under"):
		if n, ok := parseNumber(strings.TrimPrefix(s, "under")); ok {
			return Range{Max: &n, MaxOpen: true}
		}
		return Range{}
	case strings.HasPrefix(s, "over"):
		if n, ok := parseNumber(strings.TrimPrefix(s, "over")); ok {
			return Range{Min: &n, MinOpen: true}
		}
		return Range{}
	case strings.HasSuffix(s, "+"):
		if n, ok := parseNumber(strings.TrimSuffix(s, "+")); ok {
			return Range{Min: &n}
		}
		return Range{}
	}

	lo, hi, found := strings.Cut(s, "-")
	min, ok := parseNumber(lo)
	if !ok {
		return Range{}
	}
	if !found || hi == "" {
		return Range{Min: &min}
	}

	max, ok := parseNumber(hi)
	if !ok || min > max {
		return Range{}
	}
	return Range{Min: &min, Max: &max}
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// rangeClauses renders r against column. Integer columns get whole-number arguments,
// rounded so the integer comparison selects the same values as the real-valued one.
func rangeClauses[T any](column string, r Range, integer bool, value func(T) float64) []Clause[T] {
	var out []Clause[T]

	if r.Min != nil {
		min, open := *r.Min, r.MinOpen
		op := ">="
		if open {
			op = ">"
		}
		var arg any = min
		if integer {
			arg = int64(math.Ceil(min))
			if open && math.Ceil(min) != min {
				op = ">="
			}
		}
		out = append(out, Clause[T]{
			SQL:  column + " " + op + " ?",
			Args: []any{arg},
			Match: func(v T) bool {
				return Range{Min: &min, MinOpen: open}.Contains(value(v))
			},
		})
	}

	if r.Max != nil {
		max, open := *r.Max, r.MaxOpen
		op := "<="
		if open {
			op = "<"
		}
		var arg any = max
		if integer {
			arg = int64(math.Floor(max))
			if open && math.Floor(max) != max {
				op = "<="
			}
		}
		out = append(out, Clause[T]{
			SQL:  column + " " + op + " ?",
			Args: []any{arg},
			Match: func(v T) bool {
				return Range{Max: &max, MaxOpen: open}.Contains(value(v))
			},
		})
	}

	return out
}
