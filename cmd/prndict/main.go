package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/lexkraay/corpusprep/lexicon"
)

func main() {
	infile := flag.String("infile", "", "wordlist input file, one word per line (required)")
	outfile := flag.String("outfile", "", "lexicon output file (default stdout)")
	config := flag.String("config", "", "letter-to-sound config file, one '<grapheme> <phoneme>' rule per line (required)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: prndict -infile wordlist.txt -config letter_to_sound.txt [-outfile lexicon.txt]")
		fmt.Fprintln(os.Stderr, "  Builds a pronunciation dictionary by greedy longest-match segmentation")
		fmt.Fprintln(os.Stderr, "  of each word against the letter-to-sound rules. Characters with no rule")
		fmt.Fprintln(os.Stderr, "  become (x) pass-through markers and are reported on stderr.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *infile == "" || *config == "" {
		fmt.Fprintln(os.Stderr, "error: -infile and -config are required")
		flag.Usage()
		os.Exit(1)
	}

	words, err := lexicon.LoadWordlistFile(*infile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading wordlist: %v\n", err)
		os.Exit(1)
	}

	table, err := lexicon.LoadMappingsFile(*config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
		os.Exit(1)
	}

	entries, oov := lexicon.Build(words, table)

	out := os.Stdout
	if *outfile != "" {
		f, err := os.Create(*outfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := lexicon.Write(out, entries); err != nil {
		fmt.Fprintf(os.Stderr, "error writing lexicon: %v\n", err)
		os.Exit(1)
	}

	// OOV summary is a diagnostic only; sorted for stable output.
	chars := make([]rune, 0, len(oov))
	for r := range oov {
		chars = append(chars, r)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	for _, r := range chars {
		fmt.Fprintf(os.Stderr, "unexpected character: %q\n", r)
	}

	fmt.Fprintf(os.Stderr, "Lexicon: %d entries, %d rules, %d unmapped characters\n",
		len(entries), len(table), len(chars))
}
