package tunesmith

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedNoteError is returned by ParseNotes when a line of the notation
// cannot be interpreted. Line is 1-based.
type MalformedNoteError struct {
	Line   int
	Token  string
	Reason string
}

func (e *MalformedNoteError) Error() string {
	return fmt.Sprintf("line %d: malformed note %q: %s", e.Line, e.Token, e.Reason)
}

// ParseNotes parses the fixed beat notation. Each non-blank line is one beat
// slot of stepSize seconds:
//
//	C          a single note, octave 4
//	C5,E5      notes sounding together, octave 5
//	-          a rest
//	(C,E,G)x2  notes held for two beat slots
//
// A note token is a pitch name (C, C#, Cs ...) optionally followed by a
// single octave digit. Parsing stops at the first malformed line.
func ParseNotes(notation string, stepSize float64) ([]Note, error) {
	var ret []Note
	offset := 0.0
	for i, line := range strings.Split(notation, "\n") {
		lineNumber := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "-" {
			ret = append(ret, Note{Rest: true, Length: stepSize, Offset: offset, Pitch: Pitch{Octave: ReferenceOctave}})
			offset += stepSize
			continue
		}
		group, steps, err := splitRepetition(line)
		if err != nil {
			return nil, &MalformedNoteError{Line: lineNumber, Token: line, Reason: err.Error()}
		}
		length := stepSize * float64(steps)
		for _, token := range strings.Split(group, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			p, err := parseNoteToken(token)
			if err != nil {
				if _, ok := err.(*InvalidPitchError); ok {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				return nil, &MalformedNoteError{Line: lineNumber, Token: token, Reason: err.Error()}
			}
			ret = append(ret, Note{Pitch: p, Length: length, Offset: offset})
		}
		offset += length
	}
	return ret, nil
}

// splitRepetition splits "(group)xN" into the group and N. Lines without
// parentheses span one step.
func splitRepetition(line string) (string, int, error) {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return line, 1, nil
	}
	closing := strings.IndexByte(line, ')')
	if closing < open {
		return "", 0, fmt.Errorf("unbalanced parentheses")
	}
	suffix := strings.TrimSpace(line[closing+1:])
	if !strings.HasPrefix(suffix, "x") {
		return "", 0, fmt.Errorf("expected x<count> after the note group")
	}
	steps, err := strconv.Atoi(strings.TrimSpace(suffix[1:]))
	if err != nil {
		return "", 0, fmt.Errorf("bad repetition count: %v", err)
	}
	return line[open+1 : closing], steps, nil
}

func parseNoteToken(token string) (Pitch, error) {
	switch len(token) {
	case 1:
		name, err := ParsePitchName(token)
		return Pitch{Name: name, Octave: ReferenceOctave}, err
	case 2:
		if d := token[1]; d >= '0' && d <= '9' {
			name, err := ParsePitchName(token[:1])
			return Pitch{Name: name, Octave: int(d - '0')}, err
		}
		name, err := ParsePitchName(token)
		return Pitch{Name: name, Octave: ReferenceOctave}, err
	}
	return Pitch{}, fmt.Errorf("expected 1 or 2 characters, got %d", len(token))
}
