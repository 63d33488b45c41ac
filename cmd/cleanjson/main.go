package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abadojack/whatlanggo"

	"github.com/lexkraay/corpusprep"
	"github.com/lexkraay/corpusprep/clean"
)

func main() {
	infile := flag.String("infile", "", "JSON utterance file to clean (required)")
	outfile := flag.String("outfile", "", "output JSON file (default stdout)")
	removeEng := flag.Bool("remove-eng", false, "remove English words and English-like utterances")
	useLangID := flag.Bool("use-langid", false, "also reject utterances a language identifier labels English")
	engWords := flag.String("eng-words", "", "English wordlist file, one word per line (required with -remove-eng)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cleanjson -infile utterances.json [-outfile cleaned.json] [-remove-eng -eng-words words.txt [-use-langid]]")
		fmt.Fprintln(os.Stderr, "  Cleans utterance transcripts (punctuation, annotation markers, digit")
		fmt.Fprintln(os.Stderr, "  tokens) and drops utterances that are empty or mostly English after")
		fmt.Fprintln(os.Stderr, "  cleaning. Surviving utterances keep their order and metadata.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *infile == "" {
		fmt.Fprintln(os.Stderr, "error: -infile is required")
		flag.Usage()
		os.Exit(1)
	}
	if *removeEng && *engWords == "" {
		fmt.Fprintln(os.Stderr, "error: -remove-eng requires -eng-words")
		flag.Usage()
		os.Exit(1)
	}

	utts, err := corpusprep.ReadUtterancesFile(*infile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", *infile, err)
		os.Exit(1)
	}

	cfg := clean.DefaultConfig()
	cfg.RemoveEnglish = *removeEng
	cfg.UseLangID = *useLangID

	// English corpus and classifier are loaded once for the whole
	// batch, and only when the run needs them.
	var english map[string]bool
	if cfg.RemoveEnglish {
		english, err = clean.LoadWordSetFile(*engWords)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", *engWords, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "English words: %d\n", len(english))
	}
	var classify clean.Classifier
	if cfg.RemoveEnglish && cfg.UseLangID {
		classify = detectLanguage
	}

	cleaned := clean.Batch(utts, cfg, english, classify)

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
	if err := corpusprep.WriteUtterances(out, cleaned); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Input: %d utterances, kept: %d\n", len(utts), len(cleaned))
}

// detectLanguage adapts whatlanggo to the cleaner's Classifier
// interface, returning an ISO 639-1 code and a confidence in [0,1].
func detectLanguage(text string) (string, float64) {
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391(), info.Confidence
}
