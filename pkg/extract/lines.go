package extract

// logicalLine is one line of header text after joining backslash
// continuations and stripping comments. num is the 1-based physical
// line the logical line started on.
type logicalLine struct {
	text string
	num  int
}

// Comment stripping states. String and char literal states exist so
// that comment markers inside literals are left alone.
type scanState int

const (
	stateNormal scanState = iota
	stateLineComment
	stateBlockComment
	stateString
	stateChar
)

// logicalLines splits src into logical lines. In one pass it joins
// lines ending in a backslash with the following physical line and
// replaces comments with a single space. Comment markers inside string
// and character literals are not treated as comments, and an escaped
// quote does not terminate a literal. Block comments do not nest; a
// newline inside a block comment still ends the current logical line
// so that later line numbers stay aligned with the input.
func logicalLines(src string) []logicalLine {
	var lines []logicalLine
	var buf []byte
	state := stateNormal
	lineNum := 1
	startNum := 1

	flush := func() {
		lines = append(lines, logicalLine{text: string(buf), num: startNum})
		buf = buf[:0]
		startNum = lineNum
	}

	i := 0
	for i < len(src) {
		c := src[i]

		// Line continuation: applies in every state except line
		// comments, where the backslash is commentary text.
		if c == '\\' && state != stateLineComment {
			if i+1 < len(src) && src[i+1] == '\n' {
				i += 2
				lineNum++
				continue
			}
			if i+2 < len(src) && src[i+1] == '\r' && src[i+2] == '\n' {
				i += 3
				lineNum++
				continue
			}
		}

		if c == '\n' {
			if state == stateLineComment || state == stateString || state == stateChar {
				// line comments end here; an unterminated
				// literal cannot span a physical line
				state = stateNormal
			}
			lineNum++
			if state == stateBlockComment {
				// keep line numbering aligned; the comment
				// continues on the next logical line
				flush()
				i++
				continue
			}
			flush()
			i++
			continue
		}

		switch state {
		case stateNormal:
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				buf = append(buf, ' ')
				i += 2
				continue
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				buf = append(buf, ' ')
				i += 2
				continue
			case c == '"':
				state = stateString
				buf = append(buf, c)
			case c == '\'':
				state = stateChar
				buf = append(buf, c)
			default:
				buf = append(buf, c)
			}
		case stateLineComment:
			// discard
		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateNormal
				i += 2
				continue
			}
		case stateString:
			buf = append(buf, c)
			if c == '\\' && i+1 < len(src) {
				buf = append(buf, src[i+1])
				i += 2
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateChar:
			buf = append(buf, c)
			if c == '\\' && i+1 < len(src) {
				buf = append(buf, src[i+1])
				i += 2
				continue
			}
			if c == '\'' {
				state = stateNormal
			}
		}
		i++
	}

	if len(buf) > 0 {
		flush()
	}
	return lines
}
