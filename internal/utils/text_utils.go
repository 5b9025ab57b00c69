package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// TextProcessor prepares backend-supplied text for terminal display
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText shortens text to at most maxWidth terminal columns, ending
// with an ellipsis when anything was cut. maxWidth <= 0 disables it.
func (tp *TextProcessor) TruncateText(text string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	truncated := runewidth.Truncate(text, maxWidth, "…")
	tp.logger.Debug("Text truncated",
		zap.Int("original_width", runewidth.StringWidth(text)),
		zap.Int("max_width", maxWidth))

	return truncated
}

// SanitizeText drops invalid UTF-8 and C0/C1 control characters, folds whitespace
// runs to single spaces, and normalizes to NFC
func (tp *TextProcessor) SanitizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := false
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				continue
			}
		}
		switch {
		case r == '\n' || r == '\r' || r == '\t' || r == ' ':
			if !space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = true
			continue
		case unicode.IsControl(r):
			continue
		}
		b.WriteRune(r)
		space = false
	}

	return norm.NFC.String(strings.TrimRight(b.String(), " "))
}

// ProcessText sanitizes and then truncates text in one operation
func (tp *TextProcessor) ProcessText(text string, maxWidth int) string {
	return tp.TruncateText(tp.SanitizeText(text), maxWidth)
}
