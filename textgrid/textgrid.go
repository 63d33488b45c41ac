// Package textgrid reads Praat TextGrid files in the long text format
// (the format Praat and most forced aligners write by default). Only
// interval tiers are read; point tiers are skipped.
package textgrid

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Interval is one labelled stretch of time, in seconds.
type Interval struct {
	Min  float64
	Max  float64
	Text string
}

// Tier is a named interval tier.
type Tier struct {
	Name      string
	Min       float64
	Max       float64
	Intervals []Interval
}

// TextGrid is a parsed annotation file.
type TextGrid struct {
	Min   float64
	Max   float64
	Tiers []Tier
}

// Load parses a long-format TextGrid.
func Load(r io.Reader) (*TextGrid, error) {
	tg := &TextGrid{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var (
		lineNum     int
		headerDone  bool
		inIntervals bool   // seen "intervals [" in the current tier
		skipTier    bool   // current tier is not an IntervalTier
		cur         *Tier
		pending     Interval
		pendingSet  bool
	)

	flushPending := func() {
		if pendingSet && cur != nil {
			cur.Intervals = append(cur.Intervals, pending)
		}
		pending = Interval{}
		pendingSet = false
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "item ["):
			// A new tier starts (the bare "item []:" list header has
			// no index digits and no following class line that belongs
			// to it, so treating it like a tier start is harmless).
			flushPending()
			cur = nil
			inIntervals = false
			skipTier = false
			headerDone = true

		case strings.HasPrefix(line, "class ="):
			if quoted(line) == "IntervalTier" {
				tg.Tiers = append(tg.Tiers, Tier{})
				cur = &tg.Tiers[len(tg.Tiers)-1]
			} else {
				skipTier = true
				cur = nil
			}

		case strings.HasPrefix(line, "name ="):
			if cur != nil {
				cur.Name = quoted(line)
			}

		case strings.HasPrefix(line, "intervals ["):
			if skipTier {
				continue
			}
			flushPending()
			inIntervals = true
			pendingSet = true

		case strings.HasPrefix(line, "xmin ="):
			v, err := number(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			switch {
			case !headerDone:
				tg.Min = v
			case inIntervals && pendingSet:
				pending.Min = v
			case cur != nil:
				cur.Min = v
			}

		case strings.HasPrefix(line, "xmax ="):
			v, err := number(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			switch {
			case !headerDone:
				tg.Max = v
			case inIntervals && pendingSet:
				pending.Max = v
			case cur != nil:
				cur.Max = v
			}

		case strings.HasPrefix(line, "text ="):
			if inIntervals && pendingSet {
				pending.Text = quoted(line)
			}
		}
	}
	flushPending()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tg, nil
}

// LoadFile is a convenience wrapper that opens a file path.
func LoadFile(path string) (*TextGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tg, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return tg, nil
}

// quoted extracts the value of a `key = "value"` line, undoing Praat's
// doubled-quote escaping.
func quoted(line string) string {
	i := strings.Index(line, "=")
	if i < 0 {
		return ""
	}
	v := strings.TrimSpace(line[i+1:])
	v = strings.TrimPrefix(v, `"`)
	v = strings.TrimSuffix(v, `"`)
	return strings.ReplaceAll(v, `""`, `"`)
}

// number extracts the value of a `key = 1.23` line.
func number(line string) (float64, error) {
	i := strings.Index(line, "=")
	if i < 0 {
		return 0, errors.Errorf("no value in %q", line)
	}
	return strconv.ParseFloat(strings.TrimSpace(line[i+1:]), 64)
}
