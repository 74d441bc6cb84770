package audio

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArgs(t *testing.T) {
	args := decodeArgs("https://aac.example.com/a_320.mp4", 0)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-reconnect 1")
	assert.NotContains(t, joined, "-ss")
	assert.Equal(t, "pipe:1", args[len(args)-1])
	assert.Contains(t, joined, "-i https://aac.example.com/a_320.mp4")
	assert.Contains(t, joined, "-ar 44100 -ac 2")
}

func TestDecodeArgsSeekBeforeInput(t *testing.T) {
	args := decodeArgs("/tmp/song.mp4", 75.5)
	joined := strings.Join(args, " ")

	assert.NotContains(t, joined, "-reconnect")
	assert.Less(t, strings.Index(joined, "-ss"), strings.Index(joined, "-i "))
	assert.Contains(t, joined, "-ss 00:01:15.500")
}

func TestFormatSeekTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{-3, "00:00:00.000"},
		{59.25, "00:00:59.250"},
		{3725, "01:02:05.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSeekTime(tt.seconds))
	}
}

func TestParseProbe(t *testing.T) {
	secs, err := parseProbe([]byte(`{"format":{"duration":"213.456000"}}`))
	require.NoError(t, err)
	assert.InDelta(t, 213.456, secs, 0.0001)

	_, err = parseProbe([]byte(`{"format":{}}`))
	assert.Error(t, err)

	_, err = parseProbe([]byte(`not json`))
	assert.Error(t, err)
}

func TestProbeBinary(t *testing.T) {
	assert.Equal(t, "ffprobe", probeBinary("ffmpeg"))
	assert.Equal(t, "/opt/bin/ffprobe", probeBinary("/opt/bin/ffmpeg"))
	assert.Equal(t, "/usr/local/bin/ffprobe-6", probeBinary("/usr/local/bin/ffmpeg-6"))
	assert.Equal(t, "ffprobe", probeBinary("/usr/bin/avconv"))
}

func TestCountingReader(t *testing.T) {
	cr := &countingReader{reader: strings.NewReader(strings.Repeat("x", bytesPerSec))}

	_, err := io.Copy(io.Discard, cr)
	require.NoError(t, err)

	assert.EqualValues(t, bytesPerSec, cr.Pos())
	assert.InDelta(t, 1.0, cr.Seconds(), 0.0001)
	assert.True(t, cr.Drained())
}

func TestStartDecoderMissingBinary(t *testing.T) {
	_, err := startDecoder("tapedeck-no-such-ffmpeg", "/tmp/x.mp4", 0)
	assert.ErrorIs(t, err, ErrFFmpegNotFound)
}
