// Package parser turns raw logcat lines into structured log records.
package parser

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/strictwatch/internal/model"
)

// tagPattern matches the StrictMode and System.err source tags, optionally
// followed by a parenthesised pid, e.g. "StrictMode( 1234):".
var tagPattern = regexp.MustCompile(`(StrictMode|System\.err)(\([ 0-9]+\))?:`)

// nullMessage is printed by System.err for null throwables and carries no data.
const nullMessage = "null"

// Parser converts raw lines into records. The zero value is ready to use.
type Parser struct {
	// Now returns the observation time stamped on each record.
	// Defaults to time.Now.
	Now func() time.Time
}

// Parse converts a single line using the wall clock for ObservedAt.
func Parse(line string) (model.LogRecord, bool) {
	return Parser{}.Parse(line)
}

// Parse splits the line around occurrences of the source tag. The first
// occurrence becomes the record's tag and the text up to the next occurrence
// (or end of line) its message. Lines without a tag, with an empty message,
// or whose message is "null" are rejected.
func (p Parser) Parse(line string) (model.LogRecord, bool) {
	line = norm.NFC.String(line)

	locs := tagPattern.FindAllStringIndex(line, 2)
	if len(locs) == 0 {
		return model.LogRecord{}, false
	}

	end := len(line)
	if len(locs) > 1 {
		end = locs[1][0]
	}
	msg := strings.TrimSpace(line[locs[0][1]:end])
	if msg == "" || msg == nullMessage {
		return model.LogRecord{}, false
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return model.LogRecord{
		Tag:        line[locs[0][0]:locs[0][1]],
		Message:    msg,
		ObservedAt: now(),
	}, true
}
