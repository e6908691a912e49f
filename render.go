package unmult

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/kovidgoyal/go-parallel"

	"github.com/gogpu/unmult/internal/channel"
	"github.com/gogpu/unmult/internal/color"
	intImage "github.com/gogpu/unmult/internal/image"
	intParallel "github.com/gogpu/unmult/internal/parallel"
)

const (
	// chunkPixels bounds how many pixels a band decodes at once.
	chunkPixels = 1024

	// minBandPixels is the smallest amount of work handed to one goroutine.
	minBandPixels = 1024
)

// Render unmultiplies in into out.
//
// Both frames must have the same width, height and channel depth; channel
// order and encoding may differ. out may be the very same region as in
// (same buffer, format and stride) to render in place; any other overlap is
// rejected. All validation happens before the first byte of out is written.
//
// Render splits large frames over all CPUs for the duration of the call.
// Hosts rendering many frames should prefer a Renderer, which keeps its
// workers between calls.
func Render(in, out *Frame, opts ...RenderOption) error {
	o := buildOptions(opts)
	j, err := plan(in, out, o)
	if err != nil {
		return err
	}
	return j.execute(rangeRunner(o.workers))
}

// Renderer renders frames on a persistent pool of workers.
//
// Thread safety: Renderer is safe for concurrent use. Concurrent Render
// calls share the workers.
type Renderer struct {
	opts renderOptions
	pool *intParallel.WorkerPool
}

// NewRenderer starts a Renderer. Call Close to stop its workers.
func NewRenderer(opts ...RenderOption) *Renderer {
	o := buildOptions(opts)
	r := &Renderer{
		opts: o,
		pool: intParallel.NewWorkerPool(o.workers),
	}
	Logger().Info("unmult: renderer started", "workers", r.pool.Workers(), "strategy", o.strategy.String())
	return r
}

// Render unmultiplies in into out. See the package-level Render for the
// rules on frames.
func (r *Renderer) Render(in, out *Frame) error {
	if !r.pool.IsRunning() {
		return ErrRendererClosed
	}
	j, err := plan(in, out, r.opts)
	if err != nil {
		return err
	}
	return j.execute(r.forRange)
}

// Workers returns the number of workers in the pool.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Close stops the workers. Renders already in progress complete on the
// calling goroutines. Close is safe to call multiple times.
func (r *Renderer) Close() {
	if r.pool.IsRunning() {
		Logger().Info("unmult: renderer closed")
	}
	r.pool.Close()
}

func (r *Renderer) forRange(start, limit, minSize int, f func(start, limit int)) error {
	var errs errCollector
	r.pool.ForRange(start, limit, minSize, func(s, l int) {
		defer func() {
			if p := recover(); p != nil {
				errs.add(fmt.Errorf("unmult: panic in range [%d, %d): %v", s, l, p))
			}
		}()
		f(s, l)
	})
	return errs.err()
}

// runner calls f over [start, limit), possibly split into ranges of at
// least minSize indices running concurrently.
type runner func(start, limit, minSize int, f func(start, limit int)) error

// rangeRunner splits work with go-parallel, which converts a panic in any
// range into an error.
func rangeRunner(workers int) runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return func(start, limit, minSize int, f func(start, limit int)) error {
		n := limit - start
		procs := min(workers, (n+minSize-1)/minSize)
		if procs <= 1 {
			f(start, limit)
			return nil
		}
		return parallel.Run_in_parallel_over_range(procs, f, start, limit)
	}
}

func serialRunner(start, limit, _ int, f func(start, limit int)) error {
	if limit > start {
		f(start, limit)
	}
	return nil
}

// pixelRun converts a packed run of pixels from src into dst. Both hold the
// same number of pixels.
type pixelRun func(src, dst []byte) error

// job is one validated render call.
type job struct {
	in, out  *Frame
	run      pixelRun
	strategy Strategy
	packed   bool
	opts     renderOptions
}

// plan validates a frame pair and picks the pixel run for it.
func plan(in, out *Frame, opts renderOptions) (*job, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("unmult: input: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("unmult: output: %w", err)
	}
	if in.Width != out.Width || in.Height != out.Height {
		return nil, fmt.Errorf("%w: %dx%d to %dx%d", ErrDimensionMismatch, in.Width, in.Height, out.Width, out.Height)
	}
	if in.Format.Depth() != out.Format.Depth() {
		return nil, fmt.Errorf("%w: %v to %v: channel depths differ", ErrUnsupportedFormat, in.Format, out.Format)
	}

	inExt, outExt := in.Extent(), out.Extent()
	if intImage.Overlaps(inExt, outExt) {
		inPlace := intImage.SameExtent(inExt, outExt) && in.FrameDescriptor == out.FrameDescriptor
		if !inPlace {
			return nil, fmt.Errorf("%w: %v stride %d and %v stride %d", ErrAliasedBuffers, in.Format, in.Stride, out.Format, out.Stride)
		}
	}

	run, strategy := selectRun(in.Format, out.Format, opts.strategy)
	if strategy != opts.strategy {
		Logger().Debug("unmult: table strategy needs 8-bit RGB frames, using exact kernel",
			"in", in.Format.String(), "out", out.Format.String())
	}

	return &job{
		in:       in,
		out:      out,
		run:      run,
		strategy: strategy,
		packed:   in.IsPacked() && out.IsPacked(),
		opts:     opts,
	}, nil
}

// selectRun returns the pixel run for a format pair with equal depths and
// the strategy it implements.
func selectRun(inF, outF PixelFormat, s Strategy) (pixelRun, Strategy) {
	if inF.IsYUV() || outF.IsYUV() {
		return normalizedRun(inF, outF), StrategyExact
	}

	inL, outL := inF.Layout(), outF.Layout()
	switch inF.Depth() {
	case channel.Depth8:
		if s == StrategyTable {
			return quadRun(inL, outL, color.UnmultiplyTable8), StrategyTable
		}
		return quadRun(inL, outL, color.Unmultiply[uint8]), StrategyExact
	case channel.Depth16:
		return quadRun(inL, outL, color.Unmultiply[uint16]), StrategyExact
	default:
		return quadRun(inL, outL, color.Unmultiply[float32]), StrategyExact
	}
}

// quadRun decodes RGB pixels into typed quads, applies kernel and encodes
// them in the output channel order.
func quadRun[T channel.Value](inL, outL intImage.Layout, kernel func(color.RGBA[T]) color.RGBA[T]) pixelRun {
	chunk := chunkPixels * 4 * channel.DepthOf[T]().Bytes()
	return func(src, dst []byte) error {
		if len(src) != len(dst) {
			return fmt.Errorf("%w: run of %d bytes into %d", ErrInvalidBufferSize, len(src), len(dst))
		}

		quads := intImage.GetScratch[T](chunkPixels)
		defer func() { intImage.PutScratch(quads) }()

		for off := 0; off < len(src); off += chunk {
			end := min(off+chunk, len(src))

			var err error
			quads, err = intImage.AppendQuads(quads[:0], src[off:end], inL)
			if err != nil {
				return err
			}
			for i, q := range quads {
				p := kernel(color.RGBA[T]{R: q[0], G: q[1], B: q[2], A: q[3]})
				quads[i] = intImage.Quad[T]{p.R, p.G, p.B, p.A}
			}
			if err := intImage.EncodeQuads(dst[off:end], outL, quads); err != nil {
				return err
			}
		}
		return nil
	}
}

// normalizedRun converts pixels through the normalized RGB domain, for pairs
// where either side is luma/chroma encoded.
func normalizedRun(inF, outF PixelFormat) pixelRun {
	bpp := inF.BytesPerPixel()
	clamp := outF.Depth() != channel.Depth32F
	return func(src, dst []byte) error {
		if len(src)%bpp != 0 || len(src) != len(dst) {
			return fmt.Errorf("%w: run of %d bytes into %d", ErrInvalidBufferSize, len(src), len(dst))
		}
		for off := 0; off < len(src); off += bpp {
			c, _ := color.UnmultiplyNormalized(intImage.LoadColor(src[off:off+bpp], inF))
			// Decoded luma/chroma can leave [0,1]; integer channels cannot
			// hold that.
			if clamp {
				c = c.Clamp()
			}
			intImage.StoreColor(dst[off:off+bpp], outF, c)
		}
		return nil
	}
}

// execute runs the job over ranges of pixels (packed frames) or rows.
func (j *job) execute(run runner) error {
	parallelize := j.in.Pixels() >= j.opts.minParallelPixels
	if !parallelize {
		run = serialRunner
	}

	Logger().Debug("unmult: render",
		"in", j.in.Format.String(),
		"out", j.out.Format.String(),
		"width", j.in.Width,
		"height", j.in.Height,
		"packed", j.packed,
		"parallel", parallelize,
		"strategy", j.strategy.String())

	var errs errCollector
	var err error
	if j.packed {
		err = run(0, j.in.Pixels(), minBandPixels, func(start, limit int) {
			errs.add(j.run(j.in.Span(start, limit), j.out.Span(start, limit)))
		})
	} else {
		minRows := max(1, minBandPixels/j.in.Width)
		err = run(0, j.in.Height, minRows, func(start, limit int) {
			for y := start; y < limit; y++ {
				if err := j.run(j.in.Row(y), j.out.Row(y)); err != nil {
					errs.add(fmt.Errorf("row %d: %w", y, err))
					return
				}
			}
		})
	}
	if err = errors.Join(err, errs.err()); err != nil {
		return fmt.Errorf("unmult: render: %w", err)
	}
	return nil
}

// errCollector gathers errors from concurrent ranges.
type errCollector struct {
	mu   sync.Mutex
	errs []error
}

func (c *errCollector) add(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.errs = append(c.errs, err)
	c.mu.Unlock()
}

func (c *errCollector) err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Join(c.errs...)
}
