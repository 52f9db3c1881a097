package driver

import "fmt"

// Type is the declared type tag of an active program variable as reported by the driver.
// The values are the GL enum values so a GL-backed driver can pass them through unchanged.
//
// Reference: https://registry.khronos.org/OpenGL-Refpages/gl2.1/xhtml/glGetActiveUniform.xml
type Type uint32

const (
	TypeInt         Type = 0x1404
	TypeUnsignedInt Type = 0x1405
	TypeFloat       Type = 0x1406
	TypeFloatVec2   Type = 0x8B50
	TypeFloatVec3   Type = 0x8B51
	TypeFloatVec4   Type = 0x8B52
	TypeIntVec2     Type = 0x8B53
	TypeIntVec3     Type = 0x8B54
	TypeIntVec4     Type = 0x8B55
	TypeBool        Type = 0x8B56
	TypeBoolVec2    Type = 0x8B57
	TypeBoolVec3    Type = 0x8B58
	TypeBoolVec4    Type = 0x8B59
	TypeFloatMat2   Type = 0x8B5A
	TypeFloatMat3   Type = 0x8B5B
	TypeFloatMat4   Type = 0x8B5C
	TypeSampler1D   Type = 0x8B5D
	TypeSampler2D   Type = 0x8B5E
	TypeSampler3D   Type = 0x8B5F
	TypeSamplerCube Type = 0x8B60
	TypeFloatMat2x3 Type = 0x8B65
	TypeFloatMat2x4 Type = 0x8B66
	TypeFloatMat3x2 Type = 0x8B67
	TypeFloatMat3x4 Type = 0x8B68
	TypeFloatMat4x2 Type = 0x8B69
	TypeFloatMat4x3 Type = 0x8B6A
)

var typeNames = map[Type]string{
	TypeInt:         "INT",
	TypeUnsignedInt: "UNSIGNED_INT",
	TypeFloat:       "FLOAT",
	TypeFloatVec2:   "FLOAT_VEC2",
	TypeFloatVec3:   "FLOAT_VEC3",
	TypeFloatVec4:   "FLOAT_VEC4",
	TypeIntVec2:     "INT_VEC2",
	TypeIntVec3:     "INT_VEC3",
	TypeIntVec4:     "INT_VEC4",
	TypeBool:        "BOOL",
	TypeBoolVec2:    "BOOL_VEC2",
	TypeBoolVec3:    "BOOL_VEC3",
	TypeBoolVec4:    "BOOL_VEC4",
	TypeFloatMat2:   "FLOAT_MAT2",
	TypeFloatMat3:   "FLOAT_MAT3",
	TypeFloatMat4:   "FLOAT_MAT4",
	TypeSampler1D:   "SAMPLER_1D",
	TypeSampler2D:   "SAMPLER_2D",
	TypeSampler3D:   "SAMPLER_3D",
	TypeSamplerCube: "SAMPLER_CUBE",
	TypeFloatMat2x3: "FLOAT_MAT2x3",
	TypeFloatMat2x4: "FLOAT_MAT2x4",
	TypeFloatMat3x2: "FLOAT_MAT3x2",
	TypeFloatMat3x4: "FLOAT_MAT3x4",
	TypeFloatMat4x2: "FLOAT_MAT4x2",
	TypeFloatMat4x3: "FLOAT_MAT4x3",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("INVALID_TYPE(%#04x)", uint32(t))
}

// ComponentType is the element type of a vertex attribute as stored in a vertex buffer.
// The zero value means "use the default", which is ComponentFloat.
type ComponentType uint32

const (
	ComponentByte          ComponentType = 0x1400
	ComponentUnsignedByte  ComponentType = 0x1401
	ComponentShort         ComponentType = 0x1402
	ComponentUnsignedShort ComponentType = 0x1403
	ComponentInt           ComponentType = 0x1404
	ComponentUnsignedInt   ComponentType = 0x1405
	ComponentFloat         ComponentType = 0x1406
)

func (c ComponentType) String() string {
	switch c {
	case ComponentByte:
		return "BYTE"
	case ComponentUnsignedByte:
		return "UNSIGNED_BYTE"
	case ComponentShort:
		return "SHORT"
	case ComponentUnsignedShort:
		return "UNSIGNED_SHORT"
	case ComponentInt:
		return "INT"
	case ComponentUnsignedInt:
		return "UNSIGNED_INT"
	case ComponentFloat:
		return "FLOAT"
	}
	return fmt.Sprintf("INVALID_COMPONENT_TYPE(%#04x)", uint32(c))
}

// Stage identifies a shader stage within a program.
type Stage int

const (
	// StageVertex is the vertex processing stage.
	StageVertex Stage = iota + 1

	// StageFragment is the fragment processing stage.
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("INVALID_STAGE(%d)", int(s))
}

// Variable describes one active uniform or attribute of a linked program.
type Variable struct {
	// Name is the variable name as declared in the shader source (array uniforms carry the "[0]" suffix).
	Name string

	// Type is the declared type tag.
	Type Type

	// Size is the array length of the variable, 1 for non-array variables.
	Size int
}
