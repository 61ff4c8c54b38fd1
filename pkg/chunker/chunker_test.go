package chunker

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestSplitShortTextIsOneSegment(t *testing.T) {
	is := is.New(t)

	segs := Split("A quiet morning.", SplitOptions{MaxChars: 100})

	is.Equal(len(segs), 1)
	is.Equal(segs[0].Text, "A quiet morning.")
	is.Equal(segs[0].Index, 0)
	is.Equal(segs[0].Start, 0)
	is.Equal(segs[0].End, 16)
}

func TestSplitWhitespaceOnlyYieldsNothing(t *testing.T) {
	is := is.New(t)

	is.Equal(len(Split("", SplitOptions{})), 0)
	is.Equal(len(Split("  \n\t\n  ", SplitOptions{})), 0)
}

func TestSplitRespectsMaxChars(t *testing.T) {
	is := is.New(t)

	text := strings.Repeat("The gull wheeled over the harbor. ", 40)
	segs := Split(text, SplitOptions{MaxChars: 120})

	is.True(len(segs) > 1)
	for _, s := range segs {
		if n := len([]rune(s.Text)); n > 120 {
			t.Fatalf("segment %d has %d runes", s.Index, n)
		}
	}
}

func TestSplitPrefersParagraphBreaks(t *testing.T) {
	is := is.New(t)

	text := "First paragraph, quite brief.\n\nSecond paragraph follows here."
	segs := Split(text, SplitOptions{MaxChars: 45})

	is.Equal(len(segs), 2)
	is.Equal(segs[0].Text, "First paragraph, quite brief.")
	is.Equal(segs[1].Text, "Second paragraph follows here.")
}

func TestSplitFallsBackToSentences(t *testing.T) {
	is := is.New(t)

	text := "One sentence here. Another one there. And a third to finish."
	segs := Split(text, SplitOptions{MaxChars: 40})

	is.Equal(segs[0].Text, "One sentence here. Another one there.")
	is.Equal(segs[1].Text, "And a third to finish.")
}

func TestSplitHardCutsUnbrokenRuns(t *testing.T) {
	is := is.New(t)

	segs := Split(strings.Repeat("a", 25), SplitOptions{MaxChars: 10})

	is.Equal(len(segs), 3)
	is.Equal(segs[0].Text, strings.Repeat("a", 10))
	is.Equal(segs[2].Text, strings.Repeat("a", 5))
}

func TestSplitOffsetsRecoverOriginalText(t *testing.T) {
	is := is.New(t)

	text := "The tide went out at dusk. Boats settled into the mud.\n\nBy dawn the water was back, and the pier groaned under it."
	runes := []rune(text)
	segs := Split(text, SplitOptions{MaxChars: 30})

	prevEnd := 0
	for i, s := range segs {
		is.Equal(s.Index, i) // indexes are contiguous
		// offsets point back at the segment text, in order
		is.Equal(s.Text, string(runes[s.Start:s.End]))
		is.True(s.Start >= prevEnd)
		prevEnd = s.End
	}
}

func TestSplitZeroMaxUsesDefault(t *testing.T) {
	is := is.New(t)

	segs := Split("hello", SplitOptions{})
	is.Equal(len(segs), 1)

	long := strings.Repeat("word ", 2000) // 10000 chars
	segs = Split(long, SplitOptions{})
	for _, s := range segs {
		is.True(len([]rune(s.Text)) <= DefaultMaxChars)
	}
}

func TestSplitCountsRunesNotBytes(t *testing.T) {
	is := is.New(t)

	// 10 three-byte runes; a byte-based limit of 12 would split after 4
	text := strings.Repeat("語", 10)
	segs := Split(text, SplitOptions{MaxChars: 12})

	is.Equal(len(segs), 1)
	is.Equal(segs[0].Text, text)
}
