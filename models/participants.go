package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"game-with-you/internal/status"
)

// Participants is the ordered, duplicate-free list of people attending an event.
//
// The canonical encoding is a JSON array of strings. Older rows stored the list
// as a string holding a Python list literal such as "['Alice', 'Bob']", so the
// decoder accepts that form too and always re-encodes as an array.
type Participants []string

func (p Participants) Contains(name string) bool {
	for _, n := range p {
		if n == name {
			return true
		}
	}
	return false
}

// With returns the list with name appended, and false if it was already there.
func (p Participants) With(name string) (Participants, bool) {
	if p.Contains(name) {
		return p, false
	}
	out := make(Participants, len(p), len(p)+1)
	copy(out, p)
	return append(out, name), true
}

// Dedupe keeps the first occurrence of every name.
func (p Participants) Dedupe() Participants {
	out := make(Participants, 0, len(p))
	for _, n := range p {
		if !out.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

func (p Participants) String() string {
	return strings.Join(p, ", ")
}

func (p Participants) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(p))
}

func (p *Participants) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*p = Participants{}
		return nil
	case data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("%w: %v", status.ErrInvalidParticipantsEncoding, err)
		}
		*p = list
		return nil
	case data[0] == '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("%w: %v", status.ErrInvalidParticipantsEncoding, err)
		}
		list, err := ParseListLiteral(raw)
		if err != nil {
			return err
		}
		*p = list
		return nil
	}
	return fmt.Errorf("%w: unexpected %q", status.ErrInvalidParticipantsEncoding, data)
}

// ParseParticipantsText splits the comma-joined edit field.
func ParseParticipantsText(text string) Participants {
	return Participants(CleanList(strings.Split(text, ",")))
}

// ParseListLiteral decodes a string-serialized list of strings, either as a
// JSON array or as a Python list literal with single or double quotes.
func ParseListLiteral(raw string) (Participants, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty string", status.ErrInvalidParticipantsEncoding)
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list, nil
	}

	l := &literalLexer{src: raw}
	out, err := l.list()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrInvalidParticipantsEncoding, err)
	}
	return out, nil
}

type literalLexer struct {
	src string
	pos int
}

func (l *literalLexer) skipSpace() {
	for l.pos < len(l.src) && strings.ContainsRune(" \t\r\n", rune(l.src[l.pos])) {
		l.pos++
	}
}

func (l *literalLexer) expect(c byte) error {
	l.skipSpace()
	if l.pos >= len(l.src) || l.src[l.pos] != c {
		return fmt.Errorf("expected %q at offset %d", c, l.pos)
	}
	l.pos++
	return nil
}

func (l *literalLexer) list() (Participants, error) {
	if err := l.expect('['); err != nil {
		return nil, err
	}
	out := Participants{}
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			return nil, fmt.Errorf("unterminated list")
		}
		if l.src[l.pos] == ']' {
			l.pos++
			break
		}
		s, err := l.str()
		if err != nil {
			return nil, err
		}
		out = append(out, s)

		l.skipSpace()
		if l.pos < len(l.src) && l.src[l.pos] == ',' {
			l.pos++
			continue
		}
		if err := l.expect(']'); err != nil {
			return nil, err
		}
		break
	}
	l.skipSpace()
	if l.pos != len(l.src) {
		return nil, fmt.Errorf("trailing data at offset %d", l.pos)
	}
	return out, nil
}

func (l *literalLexer) str() (string, error) {
	quote := l.src[l.pos]
	if quote != '\'' && quote != '"' {
		return "", fmt.Errorf("expected string at offset %d", l.pos)
	}
	l.pos++

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return b.String(), nil
		case c == '\\':
			if l.pos+1 >= len(l.src) {
				return "", fmt.Errorf("dangling escape")
			}
			l.pos++
			switch e := l.src[l.pos]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(e)
			}
			l.pos++
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return "", fmt.Errorf("unterminated string")
}
