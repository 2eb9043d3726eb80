package util

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var charReplacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201C", "\"", "\u201D", "\"",
	"\u2013", "-", "\u2014", "--", "\u2026", "...", "\u00a0", " ",
)

// ErrBinaryContent is returned for input that contains NUL bytes.
var ErrBinaryContent = errors.New("content looks binary")

// CleanReportText turns raw bytes from a report file into classifier input:
// the BOM is stripped, invalid UTF-8 is replaced, and typographic quotes,
// dashes and non-breaking spaces are mapped to ASCII so keyword matching sees
// them.
func CleanReportText(raw []byte, src string) (string, error) {
	if bytes.IndexByte(raw, 0) >= 0 {
		return "", fmt.Errorf("%s: %w", src, ErrBinaryContent)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if !utf8.Valid(raw) {
		log.WithField("source", src).Warn("invalid UTF-8, replacing invalid chars")
		raw = bytes.ToValidUTF8(raw, []byte(string(utf8.RuneError)))
	}

	return charReplacer.Replace(string(raw)), nil
}
