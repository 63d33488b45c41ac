package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Entry is one output line of the pronunciation lexicon: the word as it
// appeared in the wordlist, followed by its phoneme tokens. Characters
// with no mapping appear as "(x)" pass-through markers.
type Entry struct {
	Word     string
	Phonemes []string
}

// Fixed header entries every Kaldi lexicon starts with.
var headerEntries = []Entry{
	{Word: "!SIL", Phonemes: []string{"sil"}},
	{Word: "<UNK>", Phonemes: []string{"spn"}},
}

// Build segments each word against the mapping table and returns one
// entry per word, in input order, preceded by the silence and
// unknown-word header entries. Characters that match no rule are wrapped
// in parentheses and collected into the returned OOV set; they never
// abort the build.
func Build(words []string, table MappingTable) ([]Entry, map[rune]bool) {
	entries := make([]Entry, 0, len(words)+len(headerEntries))
	entries = append(entries, headerEntries...)
	oov := make(map[rune]bool)

	for _, word := range words {
		entry := Entry{Word: word}
		lower := strings.ToLower(word)

		for i := 0; i < len(lower); {
			matched := false
			// Table is sorted longest grapheme first, so the first
			// prefix hit is the longest possible match.
			for _, m := range table {
				if strings.HasPrefix(lower[i:], m.Grapheme) {
					entry.Phonemes = append(entry.Phonemes, m.Phoneme)
					i += len(m.Grapheme)
					matched = true
					break
				}
			}
			if !matched {
				r, size := utf8.DecodeRuneInString(lower[i:])
				entry.Phonemes = append(entry.Phonemes, fmt.Sprintf("(%c)", r))
				oov[r] = true
				i += size
			}
		}
		entries = append(entries, entry)
	}
	return entries, oov
}

// Write emits the lexicon, one entry per line: word followed by its
// space-separated phonemes.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		bw.WriteString(e.Word)
		for _, p := range e.Phonemes {
			bw.WriteByte(' ')
			bw.WriteString(p)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
