package journal

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/didit/internal/model"
	"github.com/verte-zerg/didit/internal/stats"
)

const (
	currentFields = 4
	bom           = "\ufeff"

	// Lines longer than this are reported without being parsed.
	maxLineBytes     = 4096
	problemTextBytes = 80
)

// Log is the parsed content of the activity log.
type Log struct {
	Exists   bool
	Entries  []model.Entry
	Totals   map[string]int
	Problems []*model.ParseError
}

// Read parses the log at path. A missing file yields an empty Log.
// Unparseable lines are skipped and reported in Problems.
func Read(path string, tiers model.TierTable) (Log, error) {
	result := Log{Totals: map[string]int{}}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only log.
			_ = cerr
		}
	}()
	result.Exists = true

	reader := bufio.NewReader(file)
	lineNo := 0
	for {
		raw, rerr := reader.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return Log{Totals: map[string]int{}}, rerr
		}
		if raw == "" && rerr == io.EOF {
			break
		}
		lineNo++
		if len(raw) > maxLineBytes {
			result.Problems = append(result.Problems, &model.ParseError{
				Line:   lineNo,
				Text:   raw[:problemTextBytes] + "...",
				Reason: "line too long",
			})
		} else if line := cleanLine(raw, lineNo); line != "" {
			entry, perr := ParseLine(line, tiers)
			if perr != nil {
				perr.Line = lineNo
				result.Problems = append(result.Problems, perr)
			} else {
				result.Entries = append(result.Entries, entry)
			}
		}
		if rerr == io.EOF {
			break
		}
	}
	result.Totals = stats.DailyTotals(result.Entries)
	return result, nil
}

func cleanLine(raw string, lineNo int) string {
	if lineNo == 1 {
		raw = strings.TrimPrefix(raw, bom)
	}
	return strings.TrimSpace(raw)
}

// ParseLine parses one trimmed, non-blank log line. The current four-field
// schema is tried first, then the legacy schema carrying a trailing glyph.
// The returned ParseError has no line number set.
func ParseLine(line string, tiers model.TierTable) (model.Entry, *model.ParseError) {
	parts := strings.Split(line, ",")
	if len(parts) < currentFields {
		return model.Entry{}, &model.ParseError{Text: line, Reason: "expected at least 4 fields"}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	entry := model.Entry{
		Date:   parts[0],
		Time:   parts[1],
		Tier:   strings.ToLower(parts[2]),
		Schema: model.SchemaCurrent,
	}
	if _, err := time.Parse(model.DateLayout, entry.Date); err != nil {
		return model.Entry{}, &model.ParseError{Text: line, Reason: "invalid date"}
	}
	if _, err := model.ParseClock(entry.Time); err != nil {
		return model.Entry{}, &model.ParseError{Text: line, Reason: "invalid time"}
	}
	if entry.Tier == "" {
		return model.Entry{}, &model.ParseError{Text: line, Reason: "missing tier"}
	}
	score, err := strconv.Atoi(parts[3])
	if err != nil {
		return model.Entry{}, &model.ParseError{Text: line, Reason: "invalid score"}
	}
	entry.Score = score

	if len(parts) > currentFields {
		entry.Schema = model.SchemaLegacy
		entry.Glyph = parts[len(parts)-1]
	}
	if entry.Glyph == "" {
		if tier, ok := tiers.Lookup(entry.Tier); ok {
			entry.Glyph = tier.Glyph
		}
	}
	return entry, nil
}
