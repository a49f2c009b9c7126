package formats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		percent    int
		wantFactor float64
		wantErr    error
	}{
		{50, 0.5, nil},
		{75, 0.25, nil},
		{1, 0.99, nil},
		{99, 0.01, nil},
		{0, 0, ErrInvalidPercent},
		{-10, 0, ErrInvalidPercent},
		{100, 0, ErrInvalidPercent},
		{150, 0, ErrInvalidPercent},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%v%%", test.percent), func(t *testing.T) {
			factor, err := ScaleFactor(test.percent)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, test.wantFactor, factor, 0.0001)
			assert.Greater(t, factor, 0.0)
			assert.Less(t, factor, 1.0)
		})
	}
}

func TestScaleFactorFullRange(t *testing.T) {
	for p := 1; p <= 99; p++ {
		factor, err := ScaleFactor(p)
		assert.NoError(t, err)
		assert.Greater(t, factor, 0.0)
		assert.Less(t, factor, 1.0)
	}
}

func TestThumbnailPoints(t *testing.T) {
	points := ThumbnailPoints(3)
	assert.Equal(t, []ThumbnailPoint{
		{Index: 1, Fraction: 0.25},
		{Index: 2, Fraction: 0.5},
		{Index: 3, Fraction: 0.75},
	}, points)

	for _, count := range []int{1, 2, 10, 31} {
		points := ThumbnailPoints(count)
		assert.Len(t, points, count)
		prev := 0.0
		for i, p := range points {
			assert.Equal(t, i+1, p.Index)
			assert.Greater(t, p.Fraction, 0.0)
			assert.Less(t, p.Fraction, 1.0)
			assert.Greater(t, p.Fraction, prev)
			prev = p.Fraction
		}
	}
}

func TestValidPreset(t *testing.T) {
	for _, p := range Presets {
		assert.True(t, ValidPreset(p))
	}
	assert.False(t, ValidPreset("warpspeed"))
	assert.False(t, ValidPreset(""))
	assert.False(t, ValidPreset("Medium"))
}

func TestMatchesExtension(t *testing.T) {
	assert.True(t, MatchesExtension("video.mp4"))
	assert.True(t, MatchesExtension("video.MP4"))
	assert.True(t, MatchesExtension("/some/dir/video.Mp4"))
	assert.False(t, MatchesExtension("video.mkv"))
	assert.False(t, MatchesExtension("video.mp4.part"))
	assert.False(t, MatchesExtension("mp4"))
}

func TestScaleFilter(t *testing.T) {
	assert.Equal(t, "scale=trunc(iw*0.5/2)*2:trunc(ih*0.5/2)*2", ScaleFilter(0.5))
	assert.Equal(t, "scale=trunc(iw*0.25/2)*2:trunc(ih*0.25/2)*2", ScaleFilter(0.25))
	assert.Equal(t, "scale=trunc(iw*0.33/2)*2:trunc(ih*0.33/2)*2", ScaleFilter(0.33))
}
