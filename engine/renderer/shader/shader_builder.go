package shader

import "github.com/rs/zerolog"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithKey sets the identifier for this binding, used in logs and by the loader's cache.
//
// Parameters:
//   - key: the binding key
//
// Returns:
//   - ShaderBuilderOption: a function that sets the key for this binding
func WithKey(key string) ShaderBuilderOption {
	return func(s *shader) {
		s.key = key
	}
}

// WithLogger sets the logger used when the binding is built. Defaults to the global zerolog logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ShaderBuilderOption: a function that sets the logger for this binding
func WithLogger(logger zerolog.Logger) ShaderBuilderOption {
	return func(s *shader) {
		s.logger = logger
	}
}
