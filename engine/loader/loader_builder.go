package loader

import (
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/program"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/rs/zerolog"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the maximum number of concurrent fetch tasks.
//
// Parameters:
//   - n: the worker count, ignored when less than 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithTimeout bounds how long the two fetches of one Load may take. Defaults to 30 seconds.
//
// Parameters:
//   - d: the timeout, ignored when not positive
//
// Returns:
//   - LoaderBuilderOption: a function that applies the timeout to a loader
func WithTimeout(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithRetryMax sets how many times an HTTP fetch is retried after a transport error or 5xx response.
//
// Parameters:
//   - n: the retry count, 0 disables retries
//
// Returns:
//   - LoaderBuilderOption: a function that applies the retry count to a loader
func WithRetryMax(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n >= 0 {
			l.retryMax = n
		}
	}
}

// WithHTTPClient sets the client wrapped by the retrying HTTP backend.
//
// Parameters:
//   - c: the base HTTP client
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client to a loader
func WithHTTPClient(c *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		l.httpClient = c
	}
}

// WithRoot resolves relative file paths against dir.
//
// Parameters:
//   - dir: the root directory for file sources
//
// Returns:
//   - LoaderBuilderOption: a function that applies the root to a loader
func WithRoot(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.root = dir
	}
}

// WithPreProcessor runs fetched sources through pp before compiling. Ignored when
// WithProgramBuilder is also given.
//
// Parameters:
//   - pp: the pre-processor
//
// Returns:
//   - LoaderBuilderOption: a function that applies the pre-processor to a loader
func WithPreProcessor(pp shader.PreProcessor) LoaderBuilderOption {
	return func(l *loader) {
		l.pp = pp
	}
}

// WithProgramBuilder sets the builder used to compile and link fetched sources.
//
// Parameters:
//   - b: the program builder
//
// Returns:
//   - LoaderBuilderOption: a function that applies the builder to a loader
func WithProgramBuilder(b program.Builder) LoaderBuilderOption {
	return func(l *loader) {
		l.programs = b
	}
}

// WithErrorHandler sets a callback for failed loads. It may be called from a worker goroutine
// for fetch failures and from Poll for compile, link and bind failures.
//
// Parameters:
//   - h: the error handler
//
// Returns:
//   - LoaderBuilderOption: a function that applies the handler to a loader
func WithErrorHandler(h ErrorHandler) LoaderBuilderOption {
	return func(l *loader) {
		l.onError = h
	}
}

// WithLogger sets the logger for the loader and the bindings it creates. Defaults to the
// global zerolog logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger to a loader
func WithLogger(logger zerolog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}
