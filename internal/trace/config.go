package trace

import "fmt"

// Output selects where the drain writes formatted trace lines.
type Output string

const (
	OutputFile Output = "file"
	OutputNone Output = "none"
)

// Config is the trace subsystem's read-only-after-init configuration
// surface (spec §6). It is meant to be embedded in the process-wide
// application config and populated from YAML.
type Config struct {
	Output           Output `yaml:"output"`
	Logfile          string `yaml:"logfile"`
	SnapshotLevels   int    `yaml:"snapshot_levels"`
	SnapshotInterval uint64 `yaml:"snapshot_interval"`
	Emit             bool   `yaml:"emit"`

	// RingCapacity sizes the SPSC ring backing the drain pipeline. It isn't
	// part of the external configuration surface named in spec §6 — it's an
	// internal tuning knob, not something the CSV-driven CLI needs to
	// expose — so it defaults to ringDefaultCapacity when zero rather than
	// being required.
	RingCapacity uint64 `yaml:"-"`
}

const ringDefaultCapacity = 1 << 16

// Validate checks the fields that materially affect correctness rather than
// just cosmetics: an interval of 0 would divide by nothing, a file output
// with no path can't be opened, and a negative level count is meaningless.
// A level count of 0 is accepted; it makes every snapshot render
// "Buy: [] Sell: []" regardless of book state.
func (c Config) Validate() error {
	switch c.Output {
	case OutputFile, OutputNone:
	default:
		return fmt.Errorf("trace: unknown output %q", c.Output)
	}
	if c.Output == OutputFile && c.Logfile == "" {
		return fmt.Errorf("trace: output=file requires logfile")
	}
	if c.SnapshotInterval == 0 {
		return fmt.Errorf("trace: snapshot_interval must be >= 1")
	}
	if c.SnapshotLevels < 0 {
		return fmt.Errorf("trace: snapshot_levels must be >= 0")
	}
	return nil
}

func (c Config) ringCapacity() uint64 {
	if c.RingCapacity == 0 {
		return ringDefaultCapacity
	}
	return c.RingCapacity
}
