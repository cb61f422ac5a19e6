package output

import (
	"github.com/rpgo/asset-projector/internal/domain"
)

// GenerateReport writes results in the named format to path (a timestamped
// file when path is empty) and returns the paths written. "all" writes the
// verbose console report and the detailed CSV; path is ignored for it.
func GenerateReport(results *domain.PortfolioProjection, format, path string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var written []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			p, err := WriteFormatted(f, results, "")
			if err != nil {
				return written, err
			}
			written = append(written, p)
		}
		return written, nil
	}
	f, err := LookupFormatter(format)
	if err != nil {
		return nil, err
	}
	p, err := WriteFormatted(f, results, path)
	if err != nil {
		return nil, err
	}
	return []string{p}, nil
}
