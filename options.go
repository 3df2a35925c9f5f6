package softrast

import "image/color"

// Option configures a Renderer during creation.
//
// Example:
//
//	// Affine texturing, no back-face culling
//	r, err := softrast.NewRenderer(pm, tex,
//	    softrast.WithPerspective(false),
//	    softrast.WithCulling(false))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	culling     bool
	perspective bool
	clampUV     bool
	clearColor  color.RGBA
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		culling:     true,
		perspective: true,
		clampUV:     true,
	}
}

// WithCulling enables or disables back-face culling. Enabled by default:
// triangles that wind clockwise on screen are skipped.
func WithCulling(enabled bool) Option {
	return func(o *rendererOptions) {
		o.culling = enabled
	}
}

// WithPerspective selects perspective-correct (default) or screen-space
// linear attribute interpolation.
func WithPerspective(enabled bool) Option {
	return func(o *rendererOptions) {
		o.perspective = enabled
	}
}

// WithUVClamp enables or disables clamping interpolated texture coordinates
// to [0,1] before sampling. Enabled by default.
func WithUVClamp(enabled bool) Option {
	return func(o *rendererOptions) {
		o.clampUV = enabled
	}
}

// WithClearColor sets the color used by Renderer.Clear. The default is
// transparent black.
func WithClearColor(c color.RGBA) Option {
	return func(o *rendererOptions) {
		o.clearColor = c
	}
}
