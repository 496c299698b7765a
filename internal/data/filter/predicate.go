// Package filter turns listing query parameters into predicates that can be rendered as SQL
// for the pgx repositories or evaluated in memory against fixture data.
package filter

import (
	"fmt"
	"strings"
)

// Clause is one condition. SQL uses "?" placeholders, one per Args entry.
type Clause[T any] struct {
	SQL   string
	Args  []any
	Match func(T) bool
}

// Predicate is a conjunction of clauses. The zero value matches everything.
type Predicate[T any] struct {
	clauses []Clause[T]
}

func (p *Predicate[T]) And(c Clause[T]) {
	p.clauses = append(p.clauses, c)
}

func (p Predicate[T]) Len() int {
	return len(p.clauses)
}

func (p Predicate[T]) Clauses() []Clause[T] {
	return p.clauses
}

// SQL renders the conjunction with placeholders numbered from startArg ($startArg, $startArg+1, ...).
// An empty predicate renders "TRUE".
func (p Predicate[T]) SQL(startArg int) (string, []any) {
	if len(p.clauses) == 0 {
		return "TRUE", nil
	}

	var sb strings.Builder
	var args []any
	n := startArg

	for i, c := range p.clauses {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteByte('(')
		for _, r := range c.SQL {
			if r == '?' {
				sb.WriteString(fmt.Sprintf("$%d", n))
				n++
				continue
			}
			sb.WriteRune(r)
		}
		sb.WriteByte(')')
		args = append(args, c.Args...)
	}

	return sb.String(), args
}

func (p Predicate[T]) Match(v T) bool {
	for _, c := range p.clauses {
		if c.Match != nil && !c.Match(v) {
			return false
		}
	}
	return true
}

// Filter keeps the elements of vs that match, preserving order.
func (p Predicate[T]) Filter(vs []T) []T {
	out := make([]T, 0, len(vs))
	for _, v := range vs {
		if p.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// isAll reports whether a raw filter value means "no constraint".
func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "all")
}

// escapeLike quotes LIKE wildcards so user text is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
