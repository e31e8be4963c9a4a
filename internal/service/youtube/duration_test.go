package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
)

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "PT4M13S", want: "00:04:13"},
		{input: "PT1H2M3S", want: "01:02:03"},
		{input: "PT2H", want: "02:00:00"},
		{input: "PT45S", want: "00:00:45"},
		{input: "PT0S", want: "00:00:00"},
		{input: "PT1H30S", want: "01:00:30"},
		{input: "PT12H59M59S", want: "12:59:59"},
		{input: "PT100H", want: "100:00:00"},
		{input: "PT2147483647S", want: "00:00:2147483647"},
		{input: "PT99999999999999999999H", wantErr: true},
		{input: "PT1M99999999999999999999S", wantErr: true},
		{input: "PT", wantErr: true},
		{input: "P0D", wantErr: true},
		{input: "P1DT2H", wantErr: true},
		{input: "4:13", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.CodeInvalidArg))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDurations(t *testing.T) {
	short, long := "PT4M13S", "PT1H"
	records := map[string]*model.VideoMetadata{
		"a": {VideoContentDetails: model.VideoContentDetails{Duration: &short}},
		"b": {VideoContentDetails: model.VideoContentDetails{Duration: &long}},
		"c": {},
	}

	require.NoError(t, NormalizeDurations(records))
	assert.Equal(t, "00:04:13", *records["a"].Duration)
	assert.Equal(t, "01:00:00", *records["b"].Duration)
	assert.Nil(t, records["c"].Duration)
}

func TestNormalizeDurations_Malformed(t *testing.T) {
	bad := "P1W"
	records := map[string]*model.VideoMetadata{
		"x": {VideoContentDetails: model.VideoContentDetails{Duration: &bad}},
	}

	err := NormalizeDurations(records)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArg))
	assert.Contains(t, err.Error(), "video x")
}

func TestNormalizeDuration_LiveBroadcast(t *testing.T) {
	_, err := NormalizeDuration("P0D")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArg))
	assert.Contains(t, err.Error(), "live broadcast")

	live := "P0D"
	records := map[string]*model.VideoMetadata{
		"stream": {VideoContentDetails: model.VideoContentDetails{Duration: &live}},
	}
	err = NormalizeDurations(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "video stream")
	assert.Contains(t, err.Error(), "live broadcast")
}

func TestNormalizeDuration_OutOfRange(t *testing.T) {
	_, err := NormalizeDuration("PT99999999999999999999H")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArg))
	assert.Contains(t, err.Error(), "out of range")
}
