package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"jumbofurnace.ai/internal/sim/world"
	"jumbofurnace.ai/internal/sim/world/event"
)

// Stream names one kind of record. A stream lives in <base>/<stream>/ as
// hourly files named <stream>-YYYY-MM-DD-HH.jsonl.zst.
type Stream string

const (
	StreamAttempts Stream = "attempts"
	StreamAudit    Stream = "audit"
)

const hourLayout = "2006-01-02-15"

func (s Stream) Dir(base string) string { return filepath.Join(base, string(s)) }

func (s Stream) HourFile(base string, t time.Time) string {
	return filepath.Join(s.Dir(base), fmt.Sprintf("%s-%s.jsonl.zst", s, t.UTC().Format(hourLayout)))
}

// Files lists the stream's hourly files under base, oldest first.
func (s Stream) Files(base string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.Dir(base), string(s)+"-*.jsonl.zst"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ReadStream decodes every record of a stream across all of its hourly files.
func ReadStream(base string, s Stream) ([]json.RawMessage, error) {
	files, err := s.Files(base)
	if err != nil {
		return nil, err
	}
	var out []json.RawMessage
	for _, f := range files {
		lines, err := ReadJSONL(f)
		if err != nil {
			return out, fmt.Errorf("%s: %w", filepath.Base(f), err)
		}
		out = append(out, lines...)
	}
	return out, nil
}

// JSONLZstdWriter appends JSON lines to the current hour's file of one stream.
type JSONLZstdWriter struct {
	base   string
	stream Stream
	now    func() time.Time

	mu      sync.Mutex
	curHour time.Time
	open    bool
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewJSONLZstdWriter(base string, stream Stream) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		base:   base,
		stream: stream,
		now:    time.Now,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Write appends vs as consecutive lines and flushes once, so a formation's
// cells land in the same hourly file.
func (w *JSONLZstdWriter) Write(vs ...any) error {
	if len(vs) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := w.now().UTC().Truncate(time.Hour)
	if !w.open || !hour.Equal(w.curHour) {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	for _, v := range vs {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := w.w.Write(b); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

func (w *JSONLZstdWriter) rotateLocked(hour time.Time) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.stream.Dir(w.base), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.stream.HourFile(w.base, hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour
	w.open = true
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err error
	if w.w != nil {
		err = w.w.Flush()
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.open = false
	return err
}

// AttemptLogger records one line per multi-place event.
type AttemptLogger struct{ w *JSONLZstdWriter }

func NewAttemptLogger(base string) *AttemptLogger {
	return &AttemptLogger{w: NewJSONLZstdWriter(base, StreamAttempts)}
}

func (l *AttemptLogger) WriteAttempt(r event.AttemptRecord) error { return l.w.Write(r) }
func (l *AttemptLogger) Close() error                             { return l.w.Close() }

// AuditLogger records the cells committed by one placement as a single batch.
type AuditLogger struct{ w *JSONLZstdWriter }

func NewAuditLogger(base string) *AuditLogger {
	return &AuditLogger{w: NewJSONLZstdWriter(base, StreamAudit)}
}

func (l *AuditLogger) WriteAudits(entries []world.AuditEntry) error {
	vs := make([]any, len(entries))
	for i, e := range entries {
		vs[i] = e
	}
	return l.w.Write(vs...)
}

func (l *AuditLogger) Close() error { return l.w.Close() }
