// Package journal appends to and reads the append-only activity log.
package journal

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/didit/internal/model"
)

// Recorder appends entries to the activity log.
// There is no locking: a single writer process is assumed.
type Recorder struct {
	path  string
	tiers model.TierTable
	now   func() time.Time
}

// NewRecorder returns a Recorder writing to path.
func NewRecorder(path string, tiers model.TierTable) *Recorder {
	return &Recorder{path: path, tiers: tiers, now: time.Now}
}

// WithClock replaces the recorder's time source.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record appends one entry for the named tier, creating the log if absent.
func (r *Recorder) Record(tierName string) (model.Entry, error) {
	tier, ok := r.tiers.Lookup(tierName)
	if !ok {
		return model.Entry{}, fmt.Errorf("unknown tier %q (available: %s)", tierName, strings.Join(r.tiers.Names(), ", "))
	}
	now := r.now()
	entry := model.Entry{
		Date:   now.Format(model.DateLayout),
		Time:   now.Format(model.TimeLayout),
		Tier:   tier.Name,
		Score:  tier.Score,
		Glyph:  tier.Glyph,
		Schema: model.SchemaCurrent,
	}
	if err := appendLine(r.path, FormatLine(entry)); err != nil {
		return model.Entry{}, &model.WriteError{Path: r.path, Err: err}
	}
	return entry, nil
}

// FormatLine serializes an entry in the current schema, including the newline.
func FormatLine(e model.Entry) string {
	return e.Date + "," + e.Time + "," + e.Tier + "," + strconv.Itoa(e.Score) + "\n"
}

func appendLine(path, line string) (err error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// A hand-edited log may lack the final newline.
	info, err := file.Stat()
	if err != nil {
		return err
	}
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, size-1); err != nil {
			return err
		}
		if last[0] != '\n' {
			line = "\n" + line
		}
	}
	n, err := file.WriteString(line)
	if err != nil {
		return err
	}
	if n != len(line) {
		return io.ErrShortWrite
	}
	return nil
}
