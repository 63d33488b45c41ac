// Package eaf reads and writes the subset of the ELAN Annotation Format
// needed for corpus preparation: time-aligned annotations on named
// tiers, per-tier participant metadata, and linked media descriptors.
// Reference annotations, controlled vocabularies and the rest of the
// EAF schema are ignored on read and never written.
package eaf

import (
	"encoding/xml"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Document is the root ANNOTATION_DOCUMENT element.
type Document struct {
	XMLName         xml.Name         `xml:"ANNOTATION_DOCUMENT"`
	Author          string           `xml:"AUTHOR,attr"`
	Date            string           `xml:"DATE,attr"`
	Format          string           `xml:"FORMAT,attr"`
	Version         string           `xml:"VERSION,attr"`
	Header          Header           `xml:"HEADER"`
	TimeOrder       TimeOrder        `xml:"TIME_ORDER"`
	Tiers           []Tier           `xml:"TIER"`
	LinguisticTypes []LinguisticType `xml:"LINGUISTIC_TYPE"`
}

type Header struct {
	MediaFile        string            `xml:"MEDIA_FILE,attr"`
	TimeUnits        string            `xml:"TIME_UNITS,attr"`
	MediaDescriptors []MediaDescriptor `xml:"MEDIA_DESCRIPTOR"`
}

type MediaDescriptor struct {
	MediaURL         string `xml:"MEDIA_URL,attr"`
	RelativeMediaURL string `xml:"RELATIVE_MEDIA_URL,attr,omitempty"`
	MimeType         string `xml:"MIME_TYPE,attr"`
	TimeOrigin       string `xml:"TIME_ORIGIN,attr,omitempty"`
}

type TimeOrder struct {
	Slots []TimeSlot `xml:"TIME_SLOT"`
}

type TimeSlot struct {
	ID    string `xml:"TIME_SLOT_ID,attr"`
	Value string `xml:"TIME_VALUE,attr,omitempty"`
}

type Tier struct {
	ID                string       `xml:"TIER_ID,attr"`
	Participant       string       `xml:"PARTICIPANT,attr,omitempty"`
	LinguisticTypeRef string       `xml:"LINGUISTIC_TYPE_REF,attr"`
	Annotations       []Annotation `xml:"ANNOTATION"`
}

type Annotation struct {
	Alignable *AlignableAnnotation `xml:"ALIGNABLE_ANNOTATION"`
}

type AlignableAnnotation struct {
	ID    string `xml:"ANNOTATION_ID,attr"`
	Ref1  string `xml:"TIME_SLOT_REF1,attr"`
	Ref2  string `xml:"TIME_SLOT_REF2,attr"`
	Value string `xml:"ANNOTATION_VALUE"`
}

type LinguisticType struct {
	ID            string `xml:"LINGUISTIC_TYPE_ID,attr"`
	TimeAlignable bool   `xml:"TIME_ALIGNABLE,attr"`
}

// Segment is one time-aligned annotation with resolved times in
// milliseconds.
type Segment struct {
	Start int
	End   int
	Text  string
}

// Load parses an EAF document.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parse eaf")
	}
	return &doc, nil
}

// LoadFile is a convenience wrapper that opens a file path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return doc, nil
}

// TierNames returns the tier IDs in document order.
func (d *Document) TierNames() []string {
	names := make([]string, 0, len(d.Tiers))
	for _, t := range d.Tiers {
		names = append(names, t.ID)
	}
	return names
}

// Tier returns the tier with the given ID, or nil.
func (d *Document) Tier(id string) *Tier {
	for i := range d.Tiers {
		if d.Tiers[i].ID == id {
			return &d.Tiers[i]
		}
	}
	return nil
}

// Segments resolves the alignable annotations of a tier against the
// document's time order and returns them sorted by start time.
// Annotations whose time slots are missing or carry no time value are
// skipped.
func (d *Document) Segments(tierID string) []Segment {
	tier := d.Tier(tierID)
	if tier == nil {
		return nil
	}

	times := make(map[string]int, len(d.TimeOrder.Slots))
	for _, slot := range d.TimeOrder.Slots {
		if slot.Value == "" {
			continue
		}
		v, err := strconv.Atoi(slot.Value)
		if err != nil {
			continue
		}
		times[slot.ID] = v
	}

	var segments []Segment
	for _, a := range tier.Annotations {
		if a.Alignable == nil {
			continue
		}
		start, ok1 := times[a.Alignable.Ref1]
		end, ok2 := times[a.Alignable.Ref2]
		if !ok1 || !ok2 {
			continue
		}
		segments = append(segments, Segment{Start: start, End: end, Text: a.Alignable.Value})
	}
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments
}
