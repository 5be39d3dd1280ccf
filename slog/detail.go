package slog

import (
	"log/slog"
	"time"

	"github.com/mgirard/ecoute"
)

// Ensure LoggingDetailParser implements ecoute.DetailParser.
var _ ecoute.DetailParser = (*LoggingDetailParser)(nil)

// LoggingDetailParser wraps a DetailParser with extraction logging. The
// logged fields make audio-fallback misses and empty transcripts visible
// without storing anything.
type LoggingDetailParser struct {
	next   ecoute.DetailParser
	logger *slog.Logger
}

// NewLoggingDetailParser creates a new LoggingDetailParser.
func NewLoggingDetailParser(next ecoute.DetailParser, logger *slog.Logger) *LoggingDetailParser {
	return &LoggingDetailParser{next: next, logger: logger}
}

// ParseDetail delegates to the wrapped parser and logs what was found.
func (p *LoggingDetailParser) ParseDetail(html string) (*ecoute.ExerciseDetail, error) {
	begin := time.Now()
	detail, err := p.next.ParseDetail(html)
	if err != nil {
		p.logger.Info("detail parse",
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	p.logger.Info("detail parse",
		"audio", detail.AudioURL != "",
		"quiz", detail.H5PEmbedURL != "",
		"transcript_len", len(detail.Transcript),
		"level", detail.Level,
		"duration", time.Since(begin),
	)
	return detail, nil
}
