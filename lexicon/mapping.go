package lexicon

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"
)

// Mapping maps a grapheme sequence to a single phoneme token.
type Mapping struct {
	Grapheme string
	Phoneme  string
}

// MappingTable is an ordered list of letter-to-sound rules. After
// LoadMappings it is sorted longest grapheme first, so a linear scan
// implements longest-match-wins; equal-length rules keep file order.
type MappingTable []Mapping

// LoadMappings reads a letter-to-sound config. Each line is
// <grapheme><whitespace><phoneme>; lines starting with # are comments.
// Lines with no phoneme part are skipped rather than rejected, so a
// half-written config still produces a usable table.
func LoadMappings(r io.Reader) (MappingTable, error) {
	var table MappingTable
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue // no mapped sound
		}
		table = append(table, Mapping{
			Grapheme: fields[0],
			Phoneme:  strings.Join(fields[1:], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(table, func(i, j int) bool {
		return len(table[i].Grapheme) > len(table[j].Grapheme)
	})
	return table, nil
}

// LoadMappingsFile is a convenience wrapper that opens a file path.
func LoadMappingsFile(path string) (MappingTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadMappings(f)
}

// LoadWordlist reads one word per line, trimming whitespace and
// ignoring blank lines. Order is preserved.
func LoadWordlist(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadWordlistFile is a convenience wrapper that opens a file path.
func LoadWordlistFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadWordlist(f)
}
