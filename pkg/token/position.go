package token

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// advance returns the position just past text.
func (p Position) advance(text string) Position {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			p.Line++
			p.Column = 1
		case '\r':
			// \r\n counts once; a lone \r still breaks the line
			if i+1 < len(text) && text[i+1] == '\n' {
				break
			}
			p.Line++
			p.Column = 1
		default:
			p.Column++
		}
	}
	p.Offset += len(text)
	return p
}

// Positions returns the starting source position of every token in the stream.
func (s Stream) Positions() []Position {
	positions := make([]Position, len(s.Tokens))
	pos := Position{Line: 1, Column: 1}
	for i, t := range s.Tokens {
		positions[i] = pos
		pos = pos.advance(t.Text)
	}
	return positions
}
