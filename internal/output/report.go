// Package output renders simulation results for the console and for
// machine-readable export.
package output

import (
	"fmt"
	"io"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// Formatter renders one simulation result in a specific format.
type Formatter interface {
	Name() string
	Format(result *domain.SimulationResult) ([]byte, error)
}

// FormatterFor returns the formatter registered for a format name.
func FormatterFor(format string) (Formatter, error) {
	switch format {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	case "json":
		return JSONFormatter{Pretty: true}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteReport formats a result and writes it out.
func WriteReport(w io.Writer, result *domain.SimulationResult, format string) error {
	f, err := FormatterFor(format)
	if err != nil {
		return err
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("formatting %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
