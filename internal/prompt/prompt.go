package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput signals that a token was rejected and must be asked for again.
var ErrInvalidInput = errors.New("invalid input")

// Prompter reads whitespace-delimited tokens from an input stream and keeps
// asking until each value passes validation.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New constructs a Prompter reading from r and writing prompts to w.
func New(r io.Reader, w io.Writer) *Prompter {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &Prompter{scanner: scanner, out: w}
}

// Token prints prompt and returns the next raw token.
func (p *Prompter) Token(prompt string) (string, error) {
	p.print(prompt)
	return p.next()
}

// Name asks until the token is a non-empty run of ASCII letters.
func (p *Prompter) Name(prompt, retry string) (string, error) {
	p.print(prompt)
	for {
		token, err := p.next()
		if err != nil {
			return "", err
		}
		if ValidName(token) {
			return token, nil
		}
		p.print(retry)
	}
}

// Choice asks until the lowercased token is one of allowed.
func (p *Prompter) Choice(prompt, retry string, allowed ...string) (string, error) {
	p.print(prompt)
	for {
		token, err := p.next()
		if err != nil {
			return "", err
		}
		if value, err := ParseChoice(token, allowed...); err == nil {
			return value, nil
		}
		p.print(retry)
	}
}

// Int asks until the token is an integer in [lo, hi].
func (p *Prompter) Int(prompt, retry string, lo, hi int) (int, error) {
	for {
		p.print(prompt)
		token, err := p.next()
		if err != nil {
			return 0, err
		}
		if value, err := ParseInt(token, lo, hi); err == nil {
			return value, nil
		}
		p.print(retry)
	}
}

// Float asks until the token is a finite real in [lo, hi].
func (p *Prompter) Float(prompt, retry string, lo, hi float64) (float64, error) {
	for {
		p.print(prompt)
		token, err := p.next()
		if err != nil {
			return 0, err
		}
		if value, err := ParseFloat(token, lo, hi); err == nil {
			return value, nil
		}
		p.print(retry)
	}
}

func (p *Prompter) next() (string, error) {
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	if err := p.scanner.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return "", io.ErrUnexpectedEOF
}

func (p *Prompter) print(s string) {
	if s != "" {
		_, _ = io.WriteString(p.out, s)
	}
}

// ValidName reports whether s is non-empty and made only of ASCII letters.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// ParseChoice lowercases s and returns it when it matches one of allowed.
func ParseChoice(s string, allowed ...string) (string, error) {
	lower := strings.ToLower(s)
	for _, candidate := range allowed {
		if lower == candidate {
			return lower, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not one of %s", ErrInvalidInput, s, strings.Join(allowed, ", "))
}

// ParseInt parses s as a base-10 integer within [lo, hi].
func ParseInt(s string, lo, hi int) (int, error) {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}
	if value < lo || value > hi {
		return 0, fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidInput, value, lo, hi)
	}
	return value, nil
}

// ParseFloat parses s as a finite real within [lo, hi].
func ParseFloat(s string, lo, hi float64) (float64, error) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	if value < lo || value > hi {
		return 0, fmt.Errorf("%w: %g is outside [%g, %g]", ErrInvalidInput, value, lo, hi)
	}
	return value, nil
}
