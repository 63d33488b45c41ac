package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lexkraay/corpusprep"
	"github.com/lexkraay/corpusprep/eaf"
)

func main() {
	inputDir := flag.String("input-dir", "", "directory of .eaf files with matching .wav files (required)")
	tier := flag.String("tier", "", "target language tier name (default: first tier of each file)")
	outputJSON := flag.String("output-json", "", "output JSON file (default stdout)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: elan2json -input-dir DIR [-tier NAME] [-output-json FILE]")
		fmt.Fprintln(os.Stderr, "  Extracts time-aligned transcriptions from the given tier of every")
		fmt.Fprintln(os.Stderr, "  ELAN .eaf file under DIR into one JSON array of utterances. Each")
		fmt.Fprintln(os.Stderr, "  .eaf must have its .wav next to it; files without one are skipped")
		fmt.Fprintln(os.Stderr, "  with an error.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "error: -input-dir is required")
		flag.Usage()
		os.Exit(1)
	}

	var eafFiles []string
	err := filepath.WalkDir(*inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".eaf") {
			eafFiles = append(eafFiles, path)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error walking %s: %v\n", *inputDir, err)
		os.Exit(1)
	}
	sort.Strings(eafFiles)
	fmt.Fprintf(os.Stderr, "Found %d eaf files\n", len(eafFiles))

	var all []corpusprep.Utterance
	failed := 0
	for _, path := range eafFiles {
		utts, used, err := eaf.ExtractFile(path, *tier)
		if err != nil {
			// Fatal for this file only; the rest of the batch continues.
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed++
			continue
		}
		if *tier != "" && used != *tier {
			fmt.Fprintf(os.Stderr, "warning: %s: tier %q not found, using first tier %q\n",
				filepath.Base(path), *tier, used)
		}
		all = append(all, utts...)
	}

	out := os.Stdout
	if *outputJSON != "" {
		if dir := filepath.Dir(*outputJSON); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
				os.Exit(1)
			}
		}
		f, err := os.Create(*outputJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := corpusprep.WriteUtterances(out, all); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Extracted %d utterances from %d files (failed: %d)\n",
		len(all), len(eafFiles)-failed, failed)
}
