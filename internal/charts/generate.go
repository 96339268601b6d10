package charts

import (
	"path/filepath"

	"github.com/verte-zerg/didit/internal/fsutil"
	"github.com/verte-zerg/didit/internal/model"
)

// Source produces the PNG bytes of each chart.
type Source interface {
	Trend(day string, entries []model.Entry) ([]byte, error)
	Breakdown(day string, entries []model.Entry) ([]byte, error)
	Comparison(totals []model.DailyTotal) ([]byte, error)
}

// Generate renders every chart for day into dir and returns the written paths
// by kind. A chart that fails is reported as a *model.RenderError and the
// remaining charts are still attempted.
func Generate(src Source, dir, day string, todays []model.Entry, totals []model.DailyTotal) (map[Kind]string, []error) {
	paths := make(map[Kind]string, len(Kinds))
	var errs []error
	for _, kind := range Kinds {
		var (
			data []byte
			err  error
		)
		switch kind {
		case KindTrend:
			data, err = src.Trend(day, todays)
		case KindBreakdown:
			data, err = src.Breakdown(day, todays)
		case KindComparison:
			data, err = src.Comparison(totals)
		}
		name := FileName(kind, day)
		if err == nil {
			err = fsutil.WriteFileAtomic(filepath.Join(dir, name), data, 0o644)
		}
		if err != nil {
			errs = append(errs, &model.RenderError{Artifact: name, Err: err})
			continue
		}
		paths[kind] = filepath.Join(dir, name)
	}
	return paths, errs
}
