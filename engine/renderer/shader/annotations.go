// annotations.go defines the annotation types and parser for the Oxy GLSL pre-processor.
// Annotations are single-line GLSL comments prefixed with @oxy: that inject registered
// source chunks and emit directives before the source is handed to the driver's compiler.
package shader

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a GLSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "//@oxy:"

// identifierPattern matches a GLSL identifier.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// AnnotationType identifies the kind of annotation parsed from a GLSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude injects the source of a registered chunk at the annotation site.
	//
	// Syntax: //@oxy:include <chunk>
	//
	// Example: //@oxy:include transform
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeDefine emits a #define directive.
	//
	// Syntax: //@oxy:define <NAME> [value...]
	//
	// Example: //@oxy:define MAX_LIGHTS 4
	AnnotationTypeDefine AnnotationType = "define"

	// AnnotationTypeVersion emits a #version directive. GLSL requires it before any other
	// statement, so it is only accepted before the first non-blank, non-comment line.
	//
	// Syntax: //@oxy:version <number> [profile]
	//
	// Example: //@oxy:version 120
	AnnotationTypeVersion AnnotationType = "version"
)

// Annotation represents a single parsed @oxy: annotation from a GLSL source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include: [0] = chunk name
	//   - define:  [0] = macro name, [1:] = replacement tokens
	//   - version: [0] = version number, [1] = profile (optional)
	Args []string

	// Line is the 1-based line number in the unprocessed source where this annotation was found.
	Line int
}

// parseAnnotation attempts to parse a single line of GLSL source as an @oxy: annotation.
// Returns nil with no error for lines that are not annotations.
//
// Parameters:
//   - line: the raw GLSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	after, ok := strings.CutPrefix(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, errors.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeInclude:
		if len(args) != 2 {
			return nil, errors.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		return &Annotation{Type: AnnotationTypeInclude, Args: args[1:], Line: lineNum}, nil
	case AnnotationTypeDefine:
		if len(args) < 2 {
			return nil, errors.Errorf("line %d: @oxy define annotation requires a macro name", lineNum)
		}
		if !identifierPattern.MatchString(args[1]) {
			return nil, errors.Errorf("line %d: invalid macro name %q in @oxy define annotation", lineNum, args[1])
		}
		return &Annotation{Type: AnnotationTypeDefine, Args: args[1:], Line: lineNum}, nil
	case AnnotationTypeVersion:
		if len(args) < 2 || len(args) > 3 {
			return nil, errors.Errorf("line %d: @oxy version annotation requires a version number and an optional profile", lineNum)
		}
		if _, err := strconv.Atoi(args[1]); err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid version number %q in @oxy version annotation", lineNum, args[1])
		}
		return &Annotation{Type: AnnotationTypeVersion, Args: args[1:], Line: lineNum}, nil
	default:
		return nil, errors.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}
