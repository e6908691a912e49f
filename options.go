package unmult

// Strategy selects the per-pixel kernel.
type Strategy uint8

const (
	// StrategyExact runs every pixel through the float64 kernel.
	StrategyExact Strategy = iota

	// StrategyTable uses the fixed-point divide-table kernel for 8-bit RGB
	// frames. Other frames fall back to StrategyExact.
	StrategyTable
)

func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyTable:
		return "table"
	default:
		return "unknown"
	}
}

// DefaultMinParallelPixels is the frame size below which rendering stays on
// the calling goroutine.
const DefaultMinParallelPixels = 4096

// RenderOption configures Render and NewRenderer.
// Use functional options to customize rendering.
//
// Example:
//
//	// Default: exact kernel, all CPUs
//	err := unmult.Render(in, out)
//
//	// Fixed-point kernel on four workers
//	r := unmult.NewRenderer(unmult.WithStrategy(unmult.StrategyTable), unmult.WithWorkers(4))
//	defer r.Close()
type RenderOption func(*renderOptions)

// renderOptions holds optional rendering configuration.
type renderOptions struct {
	strategy          Strategy
	workers           int
	minParallelPixels int
}

// defaultOptions returns the default render options.
func defaultOptions() renderOptions {
	return renderOptions{
		strategy:          StrategyExact,
		workers:           0, // GOMAXPROCS
		minParallelPixels: DefaultMinParallelPixels,
	}
}

func buildOptions(opts []RenderOption) renderOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStrategy sets the per-pixel kernel.
func WithStrategy(s Strategy) RenderOption {
	return func(o *renderOptions) {
		o.strategy = s
	}
}

// WithWorkers sets the number of goroutines used for one frame.
// Zero or a negative value means one per available CPU.
func WithWorkers(n int) RenderOption {
	return func(o *renderOptions) {
		o.workers = max(n, 0)
	}
}

// WithMinParallelPixels sets the frame size below which rendering stays on
// the calling goroutine. Values below 1 make every frame parallel.
func WithMinParallelPixels(n int) RenderOption {
	return func(o *renderOptions) {
		o.minParallelPixels = max(n, 1)
	}
}
