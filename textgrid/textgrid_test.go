package textgrid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGrid = `File type = "ooTextFile"
Object class = "TextGrid"

xmin = 0
xmax = 2.5
tiers? <exists>
size = 2
item []:
    item [1]:
        class = "IntervalTier"
        name = "words"
        xmin = 0
        xmax = 2.5
        intervals: size = 3
        intervals [1]:
            xmin = 0
            xmax = 0.75
            text = ""
        intervals [2]:
            xmin = 0.75
            xmax = 1.6
            text = "ngajang"
        intervals [3]:
            xmin = 1.6
            xmax = 2.5
            text = "said ""hi"""
    item [2]:
        class = "TextTier"
        name = "points"
        xmin = 0
        xmax = 2.5
        points: size = 1
        points [1]:
            number = 1.2
            mark = "peak"
`

func TestLoad(t *testing.T) {
	tg, err := Load(strings.NewReader(testGrid))
	require.NoError(t, err)

	assert.Equal(t, 0.0, tg.Min)
	assert.Equal(t, 2.5, tg.Max)

	// Point tiers are skipped.
	require.Len(t, tg.Tiers, 1)
	tier := tg.Tiers[0]
	assert.Equal(t, "words", tier.Name)
	assert.Equal(t, 0.0, tier.Min)
	assert.Equal(t, 2.5, tier.Max)

	require.Len(t, tier.Intervals, 3)
	assert.Equal(t, Interval{Min: 0, Max: 0.75, Text: ""}, tier.Intervals[0])
	assert.Equal(t, Interval{Min: 0.75, Max: 1.6, Text: "ngajang"}, tier.Intervals[1])
	// Praat escapes embedded quotes by doubling them.
	assert.Equal(t, `said "hi"`, tier.Intervals[2].Text)
}

func TestLoadBadNumber(t *testing.T) {
	_, err := Load(strings.NewReader("xmin = not-a-number\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoadEmpty(t *testing.T) {
	tg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tg.Tiers)
}
