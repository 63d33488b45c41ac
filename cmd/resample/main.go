package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/schollz/progressbar/v2"
)

const tmpDirName = "tmp"

func main() {
	corpus := flag.String("corpus", "", "directory of audio files to resample (required)")
	rate := flag.Int("rate", 44100, "target sample rate in Hz")
	overwrite := flag.Bool("overwrite", true, "replace original files with the converted ones")
	workers := flag.Int("workers", runtime.NumCPU(), "number of parallel ffmpeg workers")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: resample -corpus DIR [-rate HZ] [-overwrite=false] [-workers N]")
		fmt.Fprintln(os.Stderr, "  Converts every .wav under DIR to 16-bit mono at the target rate")
		fmt.Fprintln(os.Stderr, "  using ffmpeg. Converted files are written to a tmp/ directory next")
		fmt.Fprintln(os.Stderr, "  to each source and, with -overwrite, moved over the originals.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *corpus == "" {
		fmt.Fprintln(os.Stderr, "error: -corpus is required")
		flag.Usage()
		os.Exit(1)
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		fmt.Fprintln(os.Stderr, "error: ffmpeg not found in PATH")
		os.Exit(1)
	}

	var files []string
	err := filepath.WalkDir(*corpus, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Never re-convert our own output.
			if d.Name() == tmpDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".wav") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error walking %s: %v\n", *corpus, err)
		os.Exit(1)
	}
	sort.Strings(files)
	fmt.Fprintf(os.Stderr, "Found %d wav files\n", len(files))
	if len(files) == 0 {
		return
	}

	bar := progressbar.NewOptions(len(files), progressbar.OptionSetWriter(os.Stderr))

	var (
		convertOK   int64
		convertFail int64
		mu          sync.Mutex // guards tmp-dir creation and tmpDirs
		tmpDirs     = make(map[string]bool)
		wg          sync.WaitGroup
		sem         = make(chan struct{}, *workers)
	)

	for _, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			defer bar.Add(1)

			dir := filepath.Dir(path)
			outDir := filepath.Join(dir, tmpDirName)

			// Two files in the same directory race on MkdirAll.
			mu.Lock()
			if !tmpDirs[outDir] {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					mu.Unlock()
					fmt.Fprintf(os.Stderr, "error creating %s: %v\n", outDir, err)
					atomic.AddInt64(&convertFail, 1)
					return
				}
				tmpDirs[outDir] = true
			}
			mu.Unlock()

			outPath := filepath.Join(outDir, filepath.Base(path))
			if _, err := os.Stat(outPath); err == nil {
				atomic.AddInt64(&convertOK, 1)
				return // already converted
			}

			if err := convert(path, outPath, *rate); err != nil {
				fmt.Fprintf(os.Stderr, "ffmpeg error (%s): %v\n", path, err)
				atomic.AddInt64(&convertFail, 1)
				return
			}
			atomic.AddInt64(&convertOK, 1)
		}(path)
	}
	wg.Wait()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Converted: %d (failed: %d)\n", convertOK, convertFail)

	if !*overwrite {
		return
	}

	// Replace originals and clean up the tmp directories.
	moved := 0
	for dir := range tmpDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", dir, err)
			continue
		}
		for _, e := range entries {
			src := filepath.Join(dir, e.Name())
			dst := filepath.Join(filepath.Dir(dir), e.Name())
			if err := os.Rename(src, dst); err != nil {
				fmt.Fprintf(os.Stderr, "error moving %s: %v\n", src, err)
				continue
			}
			moved++
		}
		if err := os.Remove(dir); err != nil {
			fmt.Fprintf(os.Stderr, "error removing %s: %v\n", dir, err)
		}
	}
	fmt.Fprintf(os.Stderr, "Replaced %d original files\n", moved)
}

// convert resamples one file to 16-bit mono WAV at the given rate.
// Failed conversions are reported, not retried.
func convert(inPath, outPath string, rate int) error {
	cmd := exec.Command("ffmpeg", "-y", "-loglevel", "error",
		"-i", inPath,
		"-ar", strconv.Itoa(rate), "-ac", "1", "-sample_fmt", "s16",
		"-f", "wav", outPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%v: %s", err, string(output))
	}
	return nil
}
