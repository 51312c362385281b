package scene

import "github.com/go-gl/mathgl/mgl32"

// RenderParameters are the shader-visible scalars and the fill mode.
type RenderParameters struct {
	TessellationFactor float32
	DisplacementLevel  float32
	Scaling            float32
	Wireframe          bool
}

// DefaultRenderParameters returns the parameters the demo starts with
func DefaultRenderParameters() RenderParameters {
	return RenderParameters{
		TessellationFactor: DefaultTessellationFactor,
		DisplacementLevel:  DefaultDisplacementLevel,
		Scaling:            DefaultScaling,
	}
}

// IncreaseTessellation raises the factor by one step, saturating at the maximum
func (p *RenderParameters) IncreaseTessellation() {
	p.TessellationFactor = clampTessellation(p.TessellationFactor + TessellationStep)
}

// DecreaseTessellation lowers the factor by one step, saturating at the minimum
func (p *RenderParameters) DecreaseTessellation() {
	p.TessellationFactor = clampTessellation(p.TessellationFactor - TessellationStep)
}

// ToggleWireframe flips between solid and wireframe rendering
func (p *RenderParameters) ToggleWireframe() {
	p.Wireframe = !p.Wireframe
}

// WorldMatrix scales the unit quad into world space
func (p RenderParameters) WorldMatrix() mgl32.Mat4 {
	return mgl32.Ident4().Mul4(mgl32.Scale3D(p.Scaling*WorldAspectX, p.Scaling, p.Scaling))
}

func clampTessellation(f float32) float32 {
	return mgl32.Clamp(f, MinTessellationFactor, MaxTessellationFactor)
}
