package download

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const progressInterval = time.Second

// progress counts the bytes written to the temp file and logs a report
// at most once per progressInterval. It never fails a write.
type progress struct {
	logger  *slog.Logger
	size    int64
	written int64
	started time.Time
	next    time.Time
}

func newProgress(logger *slog.Logger, size int64) *progress {
	now := time.Now()
	return &progress{logger: logger, size: size, started: now, next: now}
}

func (p *progress) Write(b []byte) (int, error) {
	p.written += int64(len(b))

	if now := time.Now(); !now.Before(p.next) {
		p.next = now.Add(progressInterval)
		p.report("writing response body")
	}

	return len(b), nil
}

func (p *progress) report(msg string) {
	elapsed := time.Since(p.started)

	attrs := []slog.Attr{
		slog.Int64("written", p.written),
		slog.Duration("elapsed", elapsed.Round(time.Millisecond)),
	}
	if secs := elapsed.Seconds(); secs > 0 {
		attrs = append(attrs, slog.String("rate", fmt.Sprintf("%.2fMiB/s", float64(p.written)/secs/(1<<20))))
	}
	if p.size > 0 {
		attrs = append(attrs,
			slog.Int64("size", p.size),
			slog.String("percent", fmt.Sprintf("%.1f", float64(p.written)/float64(p.size)*100)),
		)
	}

	p.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, slog.Attr{Key: "transfer", Value: slog.GroupValue(attrs...)})
}
