package eaf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEAF = `<?xml version="1.0" encoding="UTF-8"?>
<ANNOTATION_DOCUMENT AUTHOR="" DATE="2018-06-12T10:00:00+10:00" FORMAT="3.0" VERSION="3.0">
    <HEADER MEDIA_FILE="" TIME_UNITS="milliseconds"/>
    <TIME_ORDER>
        <TIME_SLOT TIME_SLOT_ID="ts1" TIME_VALUE="1500"/>
        <TIME_SLOT TIME_SLOT_ID="ts2" TIME_VALUE="2480"/>
        <TIME_SLOT TIME_SLOT_ID="ts3" TIME_VALUE="0"/>
        <TIME_SLOT TIME_SLOT_ID="ts4" TIME_VALUE="900"/>
    </TIME_ORDER>
    <TIER LINGUISTIC_TYPE_REF="default-lt" TIER_ID="Phrase" PARTICIPANT="MARK">
        <ANNOTATION>
            <ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
                <ANNOTATION_VALUE>ngajang marri</ANNOTATION_VALUE>
            </ALIGNABLE_ANNOTATION>
        </ANNOTATION>
        <ANNOTATION>
            <ALIGNABLE_ANNOTATION ANNOTATION_ID="a2" TIME_SLOT_REF1="ts3" TIME_SLOT_REF2="ts4">
                <ANNOTATION_VALUE>bardi jawa</ANNOTATION_VALUE>
            </ALIGNABLE_ANNOTATION>
        </ANNOTATION>
    </TIER>
    <TIER LINGUISTIC_TYPE_REF="default-lt" TIER_ID="Translation">
        <ANNOTATION>
            <ALIGNABLE_ANNOTATION ANNOTATION_ID="a3" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
                <ANNOTATION_VALUE>the dog ran</ANNOTATION_VALUE>
            </ALIGNABLE_ANNOTATION>
        </ANNOTATION>
    </TIER>
    <LINGUISTIC_TYPE GRAPHIC_REFERENCES="false" LINGUISTIC_TYPE_ID="default-lt" TIME_ALIGNABLE="true"/>
</ANNOTATION_DOCUMENT>
`

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(testEAF))
	require.NoError(t, err)

	assert.Equal(t, []string{"Phrase", "Translation"}, doc.TierNames())
	assert.Equal(t, "MARK", doc.Tier("Phrase").Participant)
	assert.Equal(t, "", doc.Tier("Translation").Participant)
	assert.Nil(t, doc.Tier("Missing"))
}

func TestSegmentsSortedByStart(t *testing.T) {
	doc, err := Load(strings.NewReader(testEAF))
	require.NoError(t, err)

	segments := doc.Segments("Phrase")
	require.Len(t, segments, 2)

	// a2 starts at 0 and must come first even though a1 is listed first.
	assert.Equal(t, Segment{Start: 0, End: 900, Text: "bardi jawa"}, segments[0])
	assert.Equal(t, Segment{Start: 1500, End: 2480, Text: "ngajang marri"}, segments[1])
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	eafPath := filepath.Join(dir, "session1.eaf")
	require.NoError(t, os.WriteFile(eafPath, []byte(testEAF), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session1.wav"), []byte("RIFF"), 0644))

	utts, used, err := ExtractFile(eafPath, "Phrase")
	require.NoError(t, err)
	assert.Equal(t, "Phrase", used)
	require.Len(t, utts, 2)

	assert.Equal(t, "session1.wav", utts[0].AudioFileName)
	assert.Equal(t, "MARK", utts[0].SpeakerID)
	assert.Equal(t, "bardi jawa", utts[0].Transcript)
	require.NotNil(t, utts[0].StartMS)
	assert.Equal(t, 0, *utts[0].StartMS)
	require.NotNil(t, utts[1].StopMS)
	assert.Equal(t, 2480, *utts[1].StopMS)
}

func TestExtractFileTierFallback(t *testing.T) {
	dir := t.TempDir()
	eafPath := filepath.Join(dir, "session1.eaf")
	require.NoError(t, os.WriteFile(eafPath, []byte(testEAF), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session1.wav"), []byte("RIFF"), 0644))

	_, used, err := ExtractFile(eafPath, "NoSuchTier")
	require.NoError(t, err)
	assert.Equal(t, "Phrase", used)
}

func TestExtractFileNoAudio(t *testing.T) {
	dir := t.TempDir()
	eafPath := filepath.Join(dir, "session1.eaf")
	require.NoError(t, os.WriteFile(eafPath, []byte(testEAF), 0644))

	_, _, err := ExtractFile(eafPath, "Phrase")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAudio))
}

func TestWriteRoundTrip(t *testing.T) {
	doc := New()
	tier := doc.AddTier("Phrase", "MARK")
	doc.AddAnnotation(tier, 0, 900, "bardi jawa")
	doc.AddAnnotation(tier, 1500, 2480, "ngajang marri")
	doc.LinkMedia("file:///data/session1.wav", "session1.wav", "audio/x-wav")

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))

	parsed, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Phrase"}, parsed.TierNames())
	assert.Equal(t, "MARK", parsed.Tier("Phrase").Participant)

	segments := parsed.Segments("Phrase")
	require.Len(t, segments, 2)
	assert.Equal(t, Segment{Start: 0, End: 900, Text: "bardi jawa"}, segments[0])
	assert.Equal(t, Segment{Start: 1500, End: 2480, Text: "ngajang marri"}, segments[1])
}
