package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexkraay/corpusprep/eaf"
	"github.com/lexkraay/corpusprep/textgrid"
)

func main() {
	tgPath := flag.String("tg", "", "input TextGrid file (required)")
	wavSCP := flag.String("wav", "", "Kaldi wav.scp whose first entry names the audio file (required)")
	outfile := flag.String("outfile", "./inferred-aligned.eaf", "output ELAN file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tg2elan -tg aligned.TextGrid -wav wav.scp [-outfile out.eaf]")
		fmt.Fprintln(os.Stderr, "  Converts a Praat TextGrid (e.g. forced-alignment output) to an ELAN")
		fmt.Fprintln(os.Stderr, "  .eaf file with the audio from wav.scp linked as media. Empty")
		fmt.Fprintln(os.Stderr, "  intervals are dropped; times become milliseconds.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *tgPath == "" || *wavSCP == "" {
		fmt.Fprintln(os.Stderr, "error: -tg and -wav are required")
		flag.Usage()
		os.Exit(1)
	}

	tg, err := textgrid.LoadFile(*tgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading TextGrid: %v\n", err)
		os.Exit(1)
	}

	wavPath, err := firstWav(*wavSCP)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", *wavSCP, err)
		os.Exit(1)
	}

	doc := eaf.New()
	total := 0
	for _, tier := range tg.Tiers {
		t := doc.AddTier(tier.Name, "")
		for _, iv := range tier.Intervals {
			if strings.TrimSpace(iv.Text) == "" {
				continue
			}
			doc.AddAnnotation(t, toMillis(iv.Min), toMillis(iv.Max), iv.Text)
			total++
		}
	}

	absWav, err := filepath.Abs(wavPath)
	if err != nil {
		absWav = wavPath
	}
	doc.LinkMedia("file://"+absWav, wavPath, "audio/x-wav")

	if dir := filepath.Dir(*outfile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := doc.WriteFile(*outfile); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", *outfile, err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s: %d tiers, %d annotations\n", *outfile, len(tg.Tiers), total)
}

// firstWav returns the audio path from the first line of a wav.scp
// (format: <utterance-id> <path> ...).
func firstWav(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 {
			return fields[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no wav entry in %s", path)
}

// toMillis converts TextGrid seconds to whole milliseconds.
func toMillis(seconds float64) int {
	return int(math.Round(seconds * 1000))
}
