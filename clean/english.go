package clean

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// LoadWordSet reads a word set for English filtering, one word per
// line, lower-casing each entry. The nltk words corpus exported to a
// text file works directly.
func LoadWordSet(r io.Reader) (map[string]bool, error) {
	words := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		words[word] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadWordSetFile is a convenience wrapper that opens a file path.
func LoadWordSetFile(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadWordSet(f)
}
