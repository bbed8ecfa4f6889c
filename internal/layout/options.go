package layout

// Defaults applied by Options.withDefaults when a field is unset.
const (
	DefaultMinWidth  = 200
	DefaultMinHeight = 150

	// DefaultTolerance is the pairwise overlap tolerance used by the
	// projection solver. Observed as a small fixed constant in practice;
	// tunable, not contractual.
	DefaultTolerance = 5
)

// Options carries the caller-supplied tuning values modes need. The
// zero value is usable: minimum sizes and tolerance fall back to
// defaults, padding stays zero.
type Options struct {
	// Padding shrinks the usable area before grid partitioning, px.
	Padding float64

	// MinWidth/MinHeight are the absolute size floors enforced by the
	// boundary corrector and consulted by margin-aware solvers.
	MinWidth  float64
	MinHeight float64

	// Tolerance is the overlap allowance for the projection solver.
	Tolerance float64
}

func (o Options) withDefaults() Options {
	if o.MinWidth <= 0 {
		o.MinWidth = DefaultMinWidth
	}
	if o.MinHeight <= 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	return o
}
