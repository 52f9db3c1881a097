package shader

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"

// introspection is the result of walking a linked program's active variables.
type introspection struct {
	uniforms []driver.Variable
	attribs  []driver.Variable
}

// introspect enumerates the active uniforms, then the active attributes, of a linked program.
// Link status is not checked; an unlinked program reports whatever counts the driver gives.
//
// Parameters:
//   - q: the driver query surface
//   - program: the program handle
//
// Returns:
//   - introspection: the variables in driver enumeration order
func introspect(q driver.ProgramQuerier, program uint32) introspection {
	var out introspection

	n := q.ActiveUniformCount(program)
	out.uniforms = make([]driver.Variable, 0, n)
	for i := 0; i < n; i++ {
		out.uniforms = append(out.uniforms, q.ActiveUniform(program, i))
	}

	n = q.ActiveAttribCount(program)
	out.attribs = make([]driver.Variable, 0, n)
	for i := 0; i < n; i++ {
		out.attribs = append(out.attribs, q.ActiveAttrib(program, i))
	}
	return out
}
