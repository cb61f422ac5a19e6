package output

import (
	"encoding/json"

	"github.com/rpgo/asset-projector/internal/domain"
)

// JSONFormatter serializes the portfolio projection as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.PortfolioProjection) ([]byte, error) {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
