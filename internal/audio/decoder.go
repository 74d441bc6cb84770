package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 2
	bytesPerSec  = sampleRate * channelCount * bitDepth
)

// countingReader wraps the decoder output and tracks bytes read and whether
// the stream has been exhausted.
type countingReader struct {
	reader io.Reader
	mu     sync.Mutex
	pos    int64
	eof    bool
	err    error
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	if err == io.EOF {
		cr.eof = true
	} else if err != nil && cr.err == nil {
		cr.err = err
	}
	cr.mu.Unlock()
	return n, err
}

// Pos returns the number of PCM bytes consumed so far.
func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

// Seconds converts the consumed bytes to playback seconds.
func (cr *countingReader) Seconds() float64 {
	return float64(cr.Pos()) / float64(bytesPerSec)
}

// Drained reports whether the decoder reached the end of the stream.
func (cr *countingReader) Drained() bool {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.eof
}

// decoder is one ffmpeg process turning a remote stream into s16le PCM.
// Seeking is done by starting a new decoder with an offset.
type decoder struct {
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	counter *countingReader
	stderr  *bytes.Buffer
	done    chan struct{}
	waitErr error
}

// decodeArgs builds the ffmpeg argument list for url starting at offset seconds.
func decodeArgs(url string, offset float64) []string {
	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		args = append(args,
			"-reconnect", "1",
			"-reconnect_streamed", "1",
			"-reconnect_delay_max", "5",
		)
	}
	if offset > 0 {
		args = append(args, "-ss", formatSeekTime(offset))
	}
	args = append(args,
		"-i", url,
		"-vn",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channelCount),
		"pipe:1",
	)
	return args
}

// startDecoder launches ffmpeg. The process is reaped on its own goroutine so
// stopping never waits on it.
func startDecoder(bin, url string, offset float64) (*decoder, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, ErrFFmpegNotFound
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, path, decodeArgs(url, offset)...)
	cmd.Stdin = nil
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setting up ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}

	d := &decoder{
		cmd:     cmd,
		cancel:  cancel,
		counter: &countingReader{reader: stdout},
		stderr:  stderr,
		done:    make(chan struct{}),
	}
	go func() {
		d.waitErr = cmd.Wait()
		close(d.done)
	}()
	return d, nil
}

// stop kills the process without waiting for it to exit.
func (d *decoder) stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

// failure returns the process error once it has exited with nothing decoded.
func (d *decoder) failure() error {
	select {
	case <-d.done:
	default:
		return nil
	}
	if d.waitErr == nil || d.counter.Pos() > 0 {
		return nil
	}
	msg := strings.TrimSpace(d.stderr.String())
	if msg == "" {
		return fmt.Errorf("ffmpeg: %w", d.waitErr)
	}
	return fmt.Errorf("ffmpeg: %w: %s", d.waitErr, msg)
}

// formatSeekTime formats seconds as HH:MM:SS.mmm for ffmpeg -ss.
func formatSeekTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := int(seconds) / 3600
	m := (int(seconds) % 3600) / 60
	s := seconds - float64(h*3600+m*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", h, m, s)
}

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseProbe extracts the container duration in seconds from ffprobe JSON.
func parseProbe(output []byte) (float64, error) {
	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return 0, fmt.Errorf("parsing ffprobe output: %w", err)
	}
	secs, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("no duration in ffprobe output")
	}
	return secs, nil
}

// probeDuration asks ffprobe for the stream duration.
func probeDuration(ctx context.Context, bin, url string) (float64, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return 0, fmt.Errorf("ffprobe not found")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, path,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		url,
	)
	cmd.Stdin = nil

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbe(output)
}

// probeBinary derives the ffprobe path from the configured ffmpeg path.
func probeBinary(ffmpeg string) string {
	dir, base := "", ffmpeg
	if i := strings.LastIndexAny(ffmpeg, `/\`); i >= 0 {
		dir, base = ffmpeg[:i+1], ffmpeg[i+1:]
	}
	if strings.HasPrefix(base, "ffmpeg") {
		return dir + "ffprobe" + strings.TrimPrefix(base, "ffmpeg")
	}
	return "ffprobe"
}
