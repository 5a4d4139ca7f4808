package compositor

import (
	"errors"
	"math"
	"testing"
)

// fakePool records texture pool calls for pipeline tests.
type fakePool struct {
	buf         *Buffer
	downloadErr error

	retains  int
	releases int
}

func (f *fakePool) Retain(TextureID) error { f.retains++; return nil }

func (f *fakePool) Release(TextureID) error { f.releases++; return nil }

func (f *fakePool) Download(TextureID) (*Buffer, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.buf.Clone(), nil
}

func TestResolveForwardsWithoutPending(t *testing.T) {
	p := NewPipeline()
	img := NewImage(NewBuffer(4, 4))

	out, err := p.Resolve(img, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.Image != img || out.Baked {
		t.Errorf("Resolve = %+v, want unchanged passthrough", out)
	}
}

func TestResolveDefersTranslation(t *testing.T) {
	p := NewPipeline()
	img := NewImage(gradientBuffer(4, 4)).Transformed(Translate(10, 5))

	out, err := p.Resolve(img, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if out.Baked {
		t.Error("pure translation must be deferred")
	}
	if out.Image != img {
		t.Error("deferred image must be forwarded unchanged")
	}
}

func TestResolveCoherenceForcesBake(t *testing.T) {
	p := NewPipeline()
	img := NewImage(gradientBuffer(4, 4)).Transformed(Translate(10, 5))

	out, err := p.Resolve(img, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !out.Baked {
		t.Error("spatial coherence must force a bake even for a translation")
	}
	if _, ok := out.Image.Pending(); !ok {
		t.Error("baked image must carry the placement translation")
	}
}

func TestRunBakesRotatedContent(t *testing.T) {
	p := NewPipeline(WithBackground(Transparent))
	img := NewImage(gradientBuffer(20, 20))

	stage := Stage{Params: Parameters{
		ScaleX: 1, ScaleY: 1, Angle: math.Pi / 4, PivotX: 10, PivotY: 10,
	}}
	out, err := p.Run(img, stage)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !out.Baked {
		t.Fatal("rotation over content must bake")
	}
	// A 45-degree rotation of a 20x20 square needs a ~29-pixel box.
	if out.Image.Width() < 28 || out.Image.Height() < 28 {
		t.Errorf("baked dimensions = %dx%d, want about 29x29",
			out.Image.Width(), out.Image.Height())
	}
}

func TestRunOversizedSurfacesWarning(t *testing.T) {
	p := NewPipeline()
	img := NewImage(gradientBuffer(2, 2))
	stage := Stage{
		Params:                   Parameters{ScaleX: 20000, ScaleY: 1},
		RequiresSpatialCoherence: true,
	}

	out, err := p.Run(img, stage)
	if !errors.Is(err, ErrBakeTargetTooLarge) {
		t.Fatalf("err = %v, want ErrBakeTargetTooLarge", err)
	}
	if out.Baked {
		t.Error("oversized bake must forward the input unbaked")
	}
	if _, ok := out.Image.Pending(); !ok {
		t.Error("pending transform must survive an oversized bake")
	}
}

func TestRunTexture(t *testing.T) {
	pool := &fakePool{buf: gradientBuffer(4, 4)}
	p := NewPipeline(WithTexturePool(pool))

	stage := Stage{
		Params:                   DefaultParameters(4, 4),
		RequiresSpatialCoherence: false,
	}
	stage.Params.OffsetX = 2

	out, err := p.RunTexture(7, stage)
	if err != nil {
		t.Fatalf("RunTexture: %v", err)
	}
	if out.Baked {
		t.Error("translation-only texture stage must defer the bake")
	}
	if pool.retains != 1 || pool.releases != 1 {
		t.Errorf("retains/releases = %d/%d, want 1/1", pool.retains, pool.releases)
	}
}

func TestRunTextureReleasesOnError(t *testing.T) {
	pool := &fakePool{downloadErr: errors.New("device lost")}
	p := NewPipeline(WithTexturePool(pool))

	_, err := p.RunTexture(7, Stage{Params: DefaultParameters(4, 4)})
	if err == nil {
		t.Fatal("download failure must propagate")
	}
	if pool.releases != 1 {
		t.Errorf("releases = %d, want 1 (error path must release)", pool.releases)
	}
}

func TestRunTextureWithoutPool(t *testing.T) {
	p := NewPipeline()
	_, err := p.RunTexture(1, Stage{Params: DefaultParameters(4, 4)})
	if !errors.Is(err, ErrNoGPUDevice) {
		t.Fatalf("err = %v, want ErrNoGPUDevice", err)
	}
}
