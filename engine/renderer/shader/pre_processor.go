// pre_processor.go implements the Oxy GLSL pre-processor. It scans shader source for
// @oxy: annotations and replaces them with registered chunk source or GLSL directives,
// collecting the processed annotations so callers can see what each source pulled in.
package shader

import (
	"strings"

	"github.com/pkg/errors"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// chunks maps chunk names to their GLSL source.
	chunks map[string]string

	// declarations accumulates the annotations handled during a Process call.
	// Reset at the start of each Process invocation.
	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in GLSL source before compilation.
// A PreProcessor is not safe for concurrent use; give each goroutine its own.
type PreProcessor interface {
	// Process replaces every annotation line in source with its output. include lines become
	// the chunk's source, spliced at most once per source, define lines become #define directives and version lines become a
	// #version directive. Non-annotation lines pass through unchanged.
	//
	// Parameters:
	//   - source: the raw GLSL source
	//
	// Returns:
	//   - string: the processed source
	//   - error: an error naming the line if an annotation is malformed or names an unknown chunk
	Process(source string) (string, error)

	// Declarations returns the annotations handled during the most recent call to Process,
	// in source order. Returns nil if Process has not been called.
	//
	// Returns:
	//   - []Annotation: the annotations from the last Process call
	Declarations() []Annotation

	// Chunks returns the names of every registered chunk.
	//
	// Returns:
	//   - []string: the chunk names, in no particular order
	Chunks() []string
}

var _ PreProcessor = &preProcessor{}

// PreProcessorBuilderOption is a functional option used to configure a PreProcessor during construction.
type PreProcessorBuilderOption func(*preProcessor)

// WithChunk registers a named GLSL chunk for @oxy:include, replacing any chunk with the same name.
//
// Parameters:
//   - name: the chunk name used in the include annotation
//   - source: the GLSL source injected at the include site
//
// Returns:
//   - PreProcessorBuilderOption: a function that registers the chunk
func WithChunk(name, source string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.chunks[name] = source
	}
}

// NewPreProcessor creates a PreProcessor with the built-in chunks (transform, time and color)
// registered, plus any chunks added through options.
//
// Parameters:
//   - options: variadic list of PreProcessorBuilderOption to configure the pre-processor
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(options ...PreProcessorBuilderOption) PreProcessor {
	p := &preProcessor{
		chunks: make(map[string]string, len(builtinChunks)),
	}
	for name, src := range builtinChunks {
		p.chunks[name] = src
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[string]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seenCode := false

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "//") {
				seenCode = true
			}
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			src, ok := p.chunks[a.Args[0]]
			if !ok {
				return "", errors.Errorf("line %d: unknown @oxy:include chunk %q", a.Line, a.Args[0])
			}
			if included[a.Args[0]] {
				continue
			}
			included[a.Args[0]] = true
			out = append(out, strings.TrimRight(src, "\n"))
			seenCode = true
		case AnnotationTypeDefine:
			out = append(out, strings.TrimSpace("#define "+strings.Join(a.Args, " ")))
		case AnnotationTypeVersion:
			if seenCode {
				return "", errors.Errorf("line %d: @oxy:version must precede all other statements", a.Line)
			}
			out = append(out, "#version "+strings.Join(a.Args, " "))
			seenCode = true
		}
		p.declarations = append(p.declarations, *a)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	if p.declarations == nil {
		return nil
	}
	return append([]Annotation(nil), p.declarations...)
}

func (p *preProcessor) Chunks() []string {
	names := make([]string, 0, len(p.chunks))
	for name := range p.chunks {
		names = append(names, name)
	}
	return names
}
