package eaf

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"
)

const defaultLinguisticType = "default-lt"

// New creates an empty document with a milliseconds header, ready for
// AddTier/AddAnnotation.
func New() *Document {
	return &Document{
		Date:    time.Now().Format(time.RFC3339),
		Format:  "3.0",
		Version: "3.0",
		Header: Header{
			TimeUnits: "milliseconds",
		},
		LinguisticTypes: []LinguisticType{
			{ID: defaultLinguisticType, TimeAlignable: true},
		},
	}
}

// LinkMedia attaches a media descriptor to the header.
func (d *Document) LinkMedia(mediaURL, relativeURL, mimeType string) {
	d.Header.MediaDescriptors = append(d.Header.MediaDescriptors, MediaDescriptor{
		MediaURL:         mediaURL,
		RelativeMediaURL: relativeURL,
		MimeType:         mimeType,
		TimeOrigin:       "0",
	})
}

// AddTier appends an empty time-alignable tier.
func (d *Document) AddTier(id, participant string) *Tier {
	d.Tiers = append(d.Tiers, Tier{
		ID:                id,
		Participant:       participant,
		LinguisticTypeRef: defaultLinguisticType,
	})
	return &d.Tiers[len(d.Tiers)-1]
}

// AddAnnotation appends a time-aligned annotation to a tier, creating
// the two time slots it references. Times are milliseconds.
func (d *Document) AddAnnotation(tier *Tier, start, end int, text string) {
	ref1 := d.addTimeSlot(start)
	ref2 := d.addTimeSlot(end)
	tier.Annotations = append(tier.Annotations, Annotation{
		Alignable: &AlignableAnnotation{
			ID:    fmt.Sprintf("a%d", d.annotationCount()+1),
			Ref1:  ref1,
			Ref2:  ref2,
			Value: text,
		},
	})
}

func (d *Document) addTimeSlot(ms int) string {
	id := fmt.Sprintf("ts%d", len(d.TimeOrder.Slots)+1)
	d.TimeOrder.Slots = append(d.TimeOrder.Slots, TimeSlot{
		ID:    id,
		Value: fmt.Sprintf("%d", ms),
	})
	return id
}

func (d *Document) annotationCount() int {
	n := 0
	for _, t := range d.Tiers {
		n += len(t.Annotations)
	}
	return n
}

// Write marshals the document as indented XML with a standard header.
func (d *Document) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile writes the document to a file path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
