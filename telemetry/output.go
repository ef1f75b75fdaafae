package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/burrow/config"
)

// OutputManager writes run logs into one directory:
// config.yaml, telemetry.csv, perf.csv and, at the end of a run, ants.csv.
type OutputManager struct {
	dir       string
	telemetry csvStream
	perf      csvStream
}

// csvStream appends rows to a CSV file, writing the header with the first batch.
type csvStream struct {
	file          *os.File
	headerWritten bool
}

func (s *csvStream) write(rows any) error {
	if s.headerWritten {
		return gocsv.MarshalWithoutHeaders(rows, s.file)
	}
	if err := gocsv.Marshal(rows, s.file); err != nil {
		return err
	}
	s.headerWritten = true
	return nil
}

// AntRecord is one row of the end-of-run per-ant summary.
type AntRecord struct {
	Index        int    `csv:"ant"`
	State        string `csv:"state"`
	X            int    `csv:"x"`
	Y            int    `csv:"y"`
	SoilCarried  int    `csv:"soil"`
	Trips        int32  `csv:"trips"`
	Deliveries   int32  `csv:"deliveries"`
	CellsDug     int32  `csv:"cells_dug"`
	Backtracks   int32  `csv:"backtracks"`
	Abandoned    int32  `csv:"abandoned"`
	LongestTrail int32  `csv:"longest_trail"`
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetry.file = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.telemetry.file.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perf.file = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteAnts writes the per-ant summary to ants.csv, replacing any previous one.
func (om *OutputManager) WriteAnts(records []AntRecord) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "ants.csv"))
	if err != nil {
		return fmt.Errorf("creating ants.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing ants: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.telemetry.file, om.perf.file} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
