package output

import (
	json "github.com/goccy/go-json"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// JSONFormatter exports the full result, summary and annual series
// included.
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (f JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	if f.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
