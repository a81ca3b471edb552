package tseitin

import "fmt"

// NameGenerator supplies an infinite sequence of distinct fresh variable
// names. Any supplier of distinct strings is acceptable; Transformer calls
// Next() once per fresh variable it introduces.
type NameGenerator interface {
	Next() string
}

// lexGenerator produces "a", "b", ..., "z", "aa", "ab", ... — the same
// ordering spreadsheet columns use: bijective base-26 over the digits
// 'a'..'z', with no zero digit.
type lexGenerator struct {
	n int
}

// NewLexNameGenerator returns the default name generator: an infinite
// lexicographic sequence a, b, ..., z, aa, ab, ...
func NewLexNameGenerator() NameGenerator {
	return &lexGenerator{}
}

func (g *lexGenerator) Next() string {
	n := g.n
	g.n++
	// Base-26 with digits 'a'..'z', but with no "zero" digit (so the
	// sequence is a, b, ..., z, aa, ab, ... rather than a, b, ..., z, ba),
	// matching spreadsheet column naming.
	var buf []byte
	for {
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return string(buf)
}

// prefixGenerator produces "{prefix}{n}", "{prefix}{n+1}", ...
type prefixGenerator struct {
	prefix string
	next   int
}

// NewPrefixNameGenerator returns a generator producing "{prefix}{start}",
// "{prefix}{start+1}", ...
func NewPrefixNameGenerator(prefix string, start int) NameGenerator {
	return &prefixGenerator{prefix: prefix, next: start}
}

func (g *prefixGenerator) Next() string {
	s := fmt.Sprintf("%s%d", g.prefix, g.next)
	g.next++
	return s
}
