// SPDX-License-Identifier: MIT

package polynomial

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/katalvlaran/polyopt/fault"
)

const (
	opParse = "polynomial.Parse"

	lhsPrefix = "f("
	lhsSuffix = ")"
	varPrefix = "x_"
)

// Parse validates s and builds a Polynomial.
//
// Implementation:
//   - Stage 1: drop whitespace, split on the first '='.
//   - Stage 2: validate the left-hand side and learn n.
//   - Stage 3: split the right-hand side into terms and fill the table.
//
// Errors:
//   - ErrMissingEqualSign, ErrInvalidLHS, ErrInvalidRHS (first failure wins,
//     left to right).
func Parse(s string) (*Polynomial, error) {
	text := stripSpace(s)
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return nil, fault.Newf(fault.MissingEqualSign, opParse, text)
	}
	lhs, rhs := text[:eq], text[eq+1:]

	n, err := parseLHS(lhs)
	if err != nil {
		return nil, err
	}
	terms, err := parseRHS(rhs, n)
	if err != nil {
		return nil, err
	}

	return &Polynomial{text: text, nvars: n, terms: terms}, nil
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(s string) *Polynomial {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}

// parseLHS accepts exactly f(x_1,x_2,...,x_n) with n >= 1.
func parseLHS(lhs string) (int, error) {
	bad := func() (int, error) { return 0, fault.Newf(fault.InvalidLHS, opParse, lhs) }

	if !strings.HasPrefix(lhs, lhsPrefix) || !strings.HasSuffix(lhs, lhsSuffix) ||
		len(lhs) < len(lhsPrefix)+len(lhsSuffix) {
		return bad()
	}
	inner := lhs[len(lhsPrefix) : len(lhs)-len(lhsSuffix)]
	if inner == "" {
		return bad()
	}
	names := strings.Split(inner, ",")
	for i, name := range names {
		if name != varPrefix+strconv.Itoa(i+1) {
			return bad()
		}
	}

	return len(names), nil
}

// splitTerms cuts rhs before every '+'/'-' except at position 0.
func splitTerms(rhs string) []string {
	var (
		out   []string
		start int
	)
	for i := 1; i < len(rhs); i++ {
		if rhs[i] == '+' || rhs[i] == '-' {
			out = append(out, rhs[start:i])
			start = i
		}
	}

	return append(out, rhs[start:])
}

func parseRHS(rhs string, n int) ([]term, error) {
	if rhs == "" {
		return nil, fault.Newf(fault.InvalidRHS, opParse, "empty right-hand side")
	}
	raw := splitTerms(rhs)
	terms := make([]term, 0, len(raw))
	for _, s := range raw {
		t, err := parseTerm(s, n)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}

	return terms, nil
}

func parseTerm(s string, n int) (term, error) {
	bad := func(detail string) (term, error) {
		return term{}, fault.Newf(fault.InvalidRHS, opParse, fmt.Sprintf("term %q: %s", s, detail))
	}

	t := term{coeff: 1, exps: make([]int, n)}
	body := s
	switch {
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	case strings.HasPrefix(body, "-"):
		t.coeff = -1
		body = body[1:]
	}
	if body == "" {
		return bad("empty term")
	}

	for _, elem := range strings.Split(body, "*") {
		if strings.HasPrefix(elem, varPrefix) {
			idx, exp, ok := parseVariable(elem[len(varPrefix):])
			if !ok {
				return bad(fmt.Sprintf("malformed variable %q", elem))
			}
			if idx < 1 || idx > n {
				return bad(fmt.Sprintf("variable %q outside x_1..x_%d", elem, n))
			}
			t.exps[idx-1] += exp

			continue
		}
		c, ok := parseCoefficient(elem)
		if !ok {
			return bad(fmt.Sprintf("malformed coefficient %q", elem))
		}
		t.coeff *= c
	}

	return t, nil
}

// parseVariable reads "i" or "i^k" (the text after "x_").
func parseVariable(s string) (idx, exp int, ok bool) {
	idxStr, expStr, hasCaret := strings.Cut(s, "^")
	if !isDigits(idxStr) || (hasCaret && !isDigits(expStr)) {
		return 0, 0, false
	}
	var err error
	if idx, err = strconv.Atoi(idxStr); err != nil {
		return 0, 0, false
	}
	exp = 1
	if hasCaret {
		if exp, err = strconv.Atoi(expStr); err != nil {
			return 0, 0, false
		}
	}

	return idx, exp, true
}

// parseCoefficient reads "digits" or "digits.digits".
func parseCoefficient(s string) (float64, bool) {
	whole, frac, hasDot := strings.Cut(s, ".")
	if !isDigits(whole) || (hasDot && !isDigits(frac)) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
