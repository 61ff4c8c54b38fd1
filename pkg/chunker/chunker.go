package chunker

import "unicode"

// DefaultMaxChars fits under the request size limits of the cloud TTS
// endpoints with headroom for multi-byte characters.
const DefaultMaxChars = 4000

type SplitOptions struct {
	MaxChars int
}

// Segment is one synthesis-sized piece of a manuscript. Start and End are
// rune offsets into the original text, after trimming.
type Segment struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Split cuts text into segments of at most MaxChars runes each, breaking
// at a paragraph boundary when one is in range, then at a sentence end,
// then at a word boundary. Segments are trimmed of surrounding whitespace
// and whitespace-only pieces are dropped.
func Split(text string, opts SplitOptions) []Segment {
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	runes := []rune(text)
	var segments []Segment

	for start := 0; start < len(runes); {
		end := start + maxChars
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = splitPoint(runes, start, end)
		}

		if seg, ok := trimmed(runes, start, end, len(segments)); ok {
			segments = append(segments, seg)
		}
		start = end
	}
	return segments
}

// splitPoint picks the cut position in (start, limit], scanning backwards
// for the best available boundary. A window with no boundary at all gets
// a hard cut, so progress is always made.
func splitPoint(runes []rune, start, limit int) int {
	for i := limit; i >= start+2; i-- {
		if runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}
	for i := limit; i >= start+2; i-- {
		if isSentenceEnd(runes[i-2]) && unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	for i := limit; i >= start+1; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return limit
}

// trimmed shrinks [start, end) to exclude surrounding whitespace and
// reports whether anything is left.
func trimmed(runes []rune, start, end, index int) (Segment, bool) {
	for start < end && unicode.IsSpace(runes[start]) {
		start++
	}
	for end > start && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if start == end {
		return Segment{}, false
	}
	return Segment{
		Text:  string(runes[start:end]),
		Index: index,
		Start: start,
		End:   end,
	}, true
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
