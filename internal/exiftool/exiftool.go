// Package exiftool adapts a single long-lived "exiftool -stay_open"
// subprocess for concurrent use, generalizing
// bryanbrunetti-takeaway's one-process-per-worker ExifToolProcess into a
// single multiplexed process addressed by sequence token, per spec.md
// §4.7.1.
package exiftool

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goccy/go-json"

	"takeoutsort/internal/errs"
)

// readyMarkerPrefix is the token exiftool echoes back (via -echo3) once a
// request completes, letting the reader goroutine demultiplex interleaved
// output by sequence number instead of relying on a single {ready}
// sentinel the way a one-request-at-a-time process would.
const readyMarkerPrefix = "----GPTH-READY-"

// requestTimeout bounds how long one request may wait for its ready
// marker before the caller gives up on the process (spec.md §4.7.1).
const requestTimeout = 2 * time.Minute

// binaryCandidates lists where to look for the exiftool executable when
// it isn't already resolvable on PATH, tried in order after PATH itself.
var binaryCandidates = []string{
	"/usr/bin/exiftool",
	"/usr/local/bin/exiftool",
	"/opt/homebrew/bin/exiftool",
}

// ResolveBinary finds an exiftool executable: an explicit override,
// then the configured path, then PATH, then a list of common install
// locations, each probed with "exiftool -ver" (spec.md §4.7.1).
func ResolveBinary(explicit, configured string) (string, error) {
	candidates := []string{explicit, configured}
	if path, err := exec.LookPath("exiftool"); err == nil {
		candidates = append(candidates, path)
	}
	candidates = append(candidates, binaryCandidates...)

	for _, c := range candidates {
		if c == "" {
			continue
		}
		if err := exec.Command(c, "-ver").Run(); err == nil {
			return c, nil
		}
	}
	return "", errs.New(errs.KindExifTool, "", fmt.Errorf("no working exiftool binary found"))
}

type pendingRequest struct {
	lines chan string
	errCh chan error
}

// Process wraps one persistent "exiftool -stay_open True -@ -"
// subprocess, dispatching concurrent requests by sequence token and
// demultiplexing their interleaved -echo3 ready markers.
type Process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pendingRequest

	closeOnce sync.Once
	readerErr chan error
}

// Start launches the persistent exiftool process at binaryPath and begins
// demultiplexing its output. The launch itself is retried with a short
// exponential backoff: on a freshly extracted Takeout export the binary
// can be momentarily unavailable (package manager mid-install in a
// container entrypoint), and a single failed exec.Start shouldn't abort
// the whole run.
func Start(binaryPath string) (*Process, error) {
	var p *Process
	startOnce := func() error {
		cmd := exec.Command(binaryPath, "-stay_open", "True", "-@", "-")

		stdin, err := cmd.StdinPipe()
		if err != nil {
			return errs.New(errs.KindExifTool, binaryPath, err)
		}
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			stdin.Close()
			return errs.New(errs.KindExifTool, binaryPath, err)
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			stdout.Close()
			return errs.New(errs.KindExifTool, binaryPath, err)
		}
		p = &Process{
			cmd:       cmd,
			stdin:     stdin,
			stdout:    stdout,
			pending:   map[string]*pendingRequest{},
			readerErr: make(chan error, 1),
		}
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(startOnce, bo); err != nil {
		return nil, err
	}
	go p.readLoop()
	return p, nil
}

// readLoop is the single reader goroutine: it owns stdout entirely and
// routes each completed request's buffered lines to the pending entry
// named by the ready marker's sequence token.
func (p *Process) readLoop() {
	scanner := bufio.NewScanner(p.stdout)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var buf []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "{ready") {
			// exiftool's own end-of-command sentinel; requests are
			// delimited by the sequence markers instead.
			continue
		}
		if strings.HasPrefix(line, readyMarkerPrefix) {
			token := strings.TrimSuffix(strings.TrimPrefix(line, readyMarkerPrefix), "----")
			p.deliver(token, buf)
			buf = nil
			continue
		}
		buf = append(buf, line)
	}
	p.readerErr <- scanner.Err()
}

func (p *Process) deliver(token string, lines []string) {
	p.mu.Lock()
	req, ok := p.pending[token]
	if ok {
		delete(p.pending, token)
	}
	p.mu.Unlock()
	if !ok {
		return
	}
	for _, l := range lines {
		req.lines <- l
	}
	close(req.lines)
}

// nextToken returns the next monotonically increasing sequence token.
func (p *Process) nextToken() string {
	p.mu.Lock()
	p.seq++
	tok := strconv.FormatUint(p.seq, 10)
	p.mu.Unlock()
	return tok
}

// execute sends args followed by an -echo3 directive carrying the ready
// marker and a closing "-execute\n", so the marker is printed after this
// request's own output, then waits for that marker (or requestTimeout,
// or process death).
func (p *Process) execute(ctx context.Context, args []string) ([]string, error) {
	token := p.nextToken()
	req := &pendingRequest{lines: make(chan string, 64)}

	p.mu.Lock()
	p.pending[token] = req
	p.mu.Unlock()

	var b strings.Builder
	for _, a := range args {
		b.WriteString(a)
		b.WriteByte('\n')
	}
	b.WriteString("-echo3\n")
	fmt.Fprintf(&b, "%s%s----\n", readyMarkerPrefix, token)
	b.WriteString("-execute\n")

	if _, err := p.stdin.Write([]byte(b.String())); err != nil {
		return nil, errs.New(errs.KindExifTool, "", err)
	}

	var lines []string
	timeout := time.NewTimer(requestTimeout)
	defer timeout.Stop()
	for {
		select {
		case line, ok := <-req.lines:
			if !ok {
				return lines, nil
			}
			lines = append(lines, line)
		case err := <-p.readerErr:
			return nil, errs.New(errs.KindExifTool, "", fmt.Errorf("exiftool process ended: %w", err))
		case <-timeout.C:
			return nil, errs.New(errs.KindExifTool, "", fmt.Errorf("timed out waiting for exiftool response"))
		case <-ctx.Done():
			return nil, errs.New(errs.KindExifTool, "", ctx.Err())
		}
	}
}

// ReadDates returns every string-valued tag of exiftool's -json output
// for path (date/time tags among them, as raw EXIF-format strings),
// keyed by tag name.
func (p *Process) ReadDates(ctx context.Context, path string) (map[string]string, error) {
	lines, err := p.execute(ctx, []string{"-json", path})
	if err != nil {
		return nil, err
	}
	joined := strings.TrimSpace(strings.Join(lines, "\n"))
	if joined == "" {
		return map[string]string{}, nil
	}

	var records []map[string]interface{}
	if err := json.Unmarshal([]byte(joined), &records); err != nil {
		return nil, errs.New(errs.KindExifTool, path, err)
	}
	if len(records) == 0 {
		return map[string]string{}, nil
	}

	out := map[string]string{}
	for k, v := range records[0] {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}

// WriteAllDates sets every date/time tag on path to dateStr (EXIF format
// "YYYY:MM:DD HH:MM:SS"), overwriting the file in place (spec.md §4.7).
func (p *Process) WriteAllDates(ctx context.Context, path, dateStr string) error {
	lines, err := p.execute(ctx, []string{"-overwrite_original", fmt.Sprintf("-AllDates=%s", dateStr), path})
	if err != nil {
		return err
	}
	for _, l := range lines {
		if strings.Contains(l, "Error") {
			return errs.New(errs.KindExifTool, path, fmt.Errorf("%s", l))
		}
	}
	return nil
}

// WriteGPS sets GPSLatitude/GPSLongitude and their hemisphere reference
// tags on path (spec.md §4.7).
func (p *Process) WriteGPS(ctx context.Context, path string, lat, lon float64) error {
	latRef, lonRef := "N", "E"
	if lat < 0 {
		latRef = "S"
	}
	if lon < 0 {
		lonRef = "W"
	}
	lines, err := p.execute(ctx, []string{
		"-overwrite_original",
		fmt.Sprintf("-GPSLatitude=%.6f", lat),
		fmt.Sprintf("-GPSLatitudeRef=%s", latRef),
		fmt.Sprintf("-GPSLongitude=%.6f", lon),
		fmt.Sprintf("-GPSLongitudeRef=%s", lonRef),
		path,
	})
	if err != nil {
		return err
	}
	for _, l := range lines {
		if strings.Contains(l, "Error") {
			return errs.New(errs.KindExifTool, path, fmt.Errorf("%s", l))
		}
	}
	return nil
}

// Close sends "-stay_open False" to let the process exit gracefully, then
// waits for it to terminate.
func (p *Process) Close() error {
	var closeErr error
	p.closeOnce.Do(func() {
		p.stdin.Write([]byte("-stay_open\nFalse\n"))
		p.stdin.Close()
		closeErr = p.cmd.Wait()
	})
	return closeErr
}
