package compositor

import (
	"errors"
	"fmt"
)

// ErrNoGPUDevice is returned when a stage receives a texture input but no
// texture pool is configured. It is fatal for that node invocation only;
// buffer inputs never touch the pool, so every node keeps a CPU path.
var ErrNoGPUDevice = errors.New("compositor: texture input with no texture pool configured")

// TextureID is an opaque handle into the scheduler's texture pool.
type TextureID uint64

// TexturePool is the contract this pipeline consumes from the GPU texture
// collaborator. Textures cannot carry a pending transform, so the
// pipeline downloads them to a Buffer before composing or baking. The
// compositor never allocates GPU memory itself.
//
// The texture package provides the canonical implementation.
type TexturePool interface {
	Retain(TextureID) error
	Release(TextureID) error
	Download(TextureID) (*Buffer, error)
}

// Outcome reports how a stage resolved a pending transform.
type Outcome struct {
	// Image is the resolved image. When Baked is false it is the input,
	// forwarded unchanged.
	Image *Image

	// Baked reports whether the pending transform was resampled into a
	// new buffer.
	Baked bool
}

// Stage is one transform-editing node invocation as seen from the
// scheduler: the node's parameters plus the downstream requirement flag.
type Stage struct {
	Params Parameters

	// RequiresSpatialCoherence forces baking regardless of the border
	// heuristic. Set when the downstream node type reads neighborhoods
	// (blur, convolution) and needs pixels at their final positions.
	RequiresSpatialCoherence bool
}

// Option configures a Pipeline during creation.
type Option func(*Pipeline)

// WithBackground sets the composite background color consulted by the
// bake heuristic. Default is Transparent.
func WithBackground(c RGBA) Option {
	return func(p *Pipeline) {
		p.background = c
	}
}

// WithOutOfBoundsColor sets the color substituted for samples outside the
// source image during baking. Default is Transparent.
func WithOutOfBoundsColor(c RGBA) Option {
	return func(p *Pipeline) {
		p.outOfBounds = c
	}
}

// WithTexturePool attaches the scheduler's texture pool, enabling
// texture-handle inputs.
func WithTexturePool(tp TexturePool) Option {
	return func(p *Pipeline) {
		p.textures = tp
	}
}

// Pipeline evaluates transform stages: composing parameters onto incoming
// images, deciding when to bake and handling texture inputs.
//
// Pipeline is stateless apart from its configuration and safe for
// concurrent use by independent nodes.
type Pipeline struct {
	background  RGBA
	outOfBounds RGBA
	textures    TexturePool
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		background:  Transparent,
		outOfBounds: Transparent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply composes a stage's parameters onto the incoming image. This is
// the O(1) metadata-only step; pixels are untouched.
func (p *Pipeline) Apply(img *Image, params Parameters) *Image {
	return img.Transformed(params.Matrix())
}

// Resolve decides whether the image's pending transform must be baked
// now and performs the bake if so. An oversized bake target forwards the
// input unchanged together with ErrBakeTargetTooLarge for the caller to
// surface as a warning.
func (p *Pipeline) Resolve(img *Image, requireCoherence bool) (Outcome, error) {
	if _, ok := img.Pending(); !ok {
		return Outcome{Image: img}, nil
	}
	if !requireCoherence && !ShouldBake(img, p.background) {
		return Outcome{Image: img}, nil
	}

	baked, err := Bake(img, p.outOfBounds)
	if err != nil {
		return Outcome{Image: img}, err
	}
	return Outcome{Image: baked, Baked: baked != img}, nil
}

// Run applies a stage to a buffer-backed image and resolves it.
func (p *Pipeline) Run(img *Image, stage Stage) (Outcome, error) {
	return p.Resolve(p.Apply(img, stage.Params), stage.RequiresSpatialCoherence)
}

// RunTexture applies a stage to a texture-handle input. The texture is
// downloaded to a buffer first (textures cannot carry a pending
// transform), retained for the duration and released on every exit path.
//
// With no texture pool configured the invocation fails with
// ErrNoGPUDevice.
func (p *Pipeline) RunTexture(id TextureID, stage Stage) (Outcome, error) {
	if p.textures == nil {
		return Outcome{}, ErrNoGPUDevice
	}

	if err := p.textures.Retain(id); err != nil {
		return Outcome{}, fmt.Errorf("retain texture %d: %w", id, err)
	}
	defer func() {
		if err := p.textures.Release(id); err != nil {
			Logger().Warn("texture release failed", "id", uint64(id), "err", err)
		}
	}()

	buf, err := p.textures.Download(id)
	if err != nil {
		return Outcome{}, fmt.Errorf("download texture %d: %w", id, err)
	}
	return p.Run(NewImage(buf), stage)
}
