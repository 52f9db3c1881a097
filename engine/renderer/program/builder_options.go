package program

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/rs/zerolog"
)

// BuilderOption is a functional option used to configure a Builder during construction.
type BuilderOption func(*builder)

// WithPreProcessor runs every source through pp before compiling it.
//
// Parameters:
//   - pp: the pre-processor to apply
//
// Returns:
//   - BuilderOption: a function that sets the pre-processor for this builder
func WithPreProcessor(pp shader.PreProcessor) BuilderOption {
	return func(b *builder) {
		b.pp = pp
	}
}

// WithoutShaderCache disables the shader object cache. Each Build compiles every stage and
// flags its shader objects for deletion once the program is linked.
//
// Returns:
//   - BuilderOption: a function that disables caching for this builder
func WithoutShaderCache() BuilderOption {
	return func(b *builder) {
		b.noCache = true
	}
}

// WithLogger sets the logger for compile and link failures. Defaults to the global zerolog logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - BuilderOption: a function that sets the logger for this builder
func WithLogger(logger zerolog.Logger) BuilderOption {
	return func(b *builder) {
		b.logger = logger
	}
}
