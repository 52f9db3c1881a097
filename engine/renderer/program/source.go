package program

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"

// Source is the GLSL source of one shader stage.
type Source struct {
	Stage driver.Stage
	Code  string
}

// VertexSource returns a vertex stage Source.
func VertexSource(code string) Source { return Source{Stage: driver.StageVertex, Code: code} }

// FragmentSource returns a fragment stage Source.
func FragmentSource(code string) Source { return Source{Stage: driver.StageFragment, Code: code} }
