package validate

import (
	"unicode"
	"unicode/utf8"
)

// Position locates one claim value in the source text
type Position struct {
	Index  int // Zero-based whitespace-token index
	Offset int // Byte offset of the token
	Length int // Byte length of the matched portion (trailing punctuation excluded)
}

type token struct {
	text   string
	index  int
	offset int
}

// tokenize splits text on whitespace, tracking byte offsets
func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, token{text: text[start:i], index: len(tokens), offset: start})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], index: len(tokens), offset: start})
	}
	return tokens
}

// stripTrailingPunct removes trailing punctuation from a token
func stripTrailingPunct(s string) string {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if !unicode.IsPunct(r) {
			break
		}
		s = s[:len(s)-size]
	}
	return s
}

// Locate finds each claim value's literal position in the source text.
//
// The text is split on whitespace; each token is compared, trailing
// punctuation stripped, against the pending claim values. Values form a
// multiset: a matched token consumes one pending occurrence, so claims
// sharing an identical value receive distinct, successive token indices
// rather than all pointing at the earliest occurrence. Positions are
// returned in token order.
func Locate(sourceText string, values []string) []Position {
	pending := make(map[string]int, len(values))
	for _, v := range values {
		if v != "" {
			pending[v]++
		}
	}

	var positions []Position
	for _, tok := range tokenize(sourceText) {
		stripped := stripTrailingPunct(tok.text)
		if pending[stripped] > 0 {
			pending[stripped]--
			positions = append(positions, Position{
				Index:  tok.index,
				Offset: tok.offset,
				Length: len(stripped),
			})
		}
	}
	return positions
}
