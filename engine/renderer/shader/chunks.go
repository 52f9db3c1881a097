package shader

import _ "embed"

// ChunkTransform declares the mat4 uniform "mvp" and a transform(vec3) helper returning
// the clip-space position.
//
//go:embed assets/transform.glsl
var ChunkTransform string

// ChunkTime declares the float uniform "time".
//
//go:embed assets/time.glsl
var ChunkTime string

// ChunkColor declares an hsv2rgb(vec3) helper.
//
//go:embed assets/color.glsl
var ChunkColor string

// builtinChunks are registered on every PreProcessor.
var builtinChunks = map[string]string{
	"transform": ChunkTransform,
	"time":      ChunkTime,
	"color":     ChunkColor,
}
