package output

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rpgo/asset-projector/internal/domain"
)

// Select evaluates a JSONPath expression (e.g. "$.properties[0].summary")
// against the JSON form of results. Decimal fields are JSON strings.
func Select(results *domain.PortfolioProjection, path string) (any, error) {
	raw, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return v, nil
}

// SelectJSON is Select rendered as indented JSON.
func SelectJSON(results *domain.PortfolioProjection, path string) ([]byte, error) {
	v, err := Select(results, path)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// SelectFormatter wraps Select as a Formatter so selections can be written
// like any other report.
func SelectFormatter(path string) Formatter {
	return FormatterFunc{
		ID: "json",
		F: func(r *domain.PortfolioProjection) ([]byte, error) {
			return SelectJSON(r, path)
		},
	}
}
