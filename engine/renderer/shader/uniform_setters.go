package shader

import (
	"math"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/pkg/errors"
)

// elementKind is the element type a uniform upload primitive takes.
type elementKind int

const (
	kindInt elementKind = iota + 1
	kindFloat
)

func (k elementKind) String() string {
	switch k {
	case kindInt:
		return "int"
	case kindFloat:
		return "float"
	}
	return "invalid"
}

// uniformRule is the generation rule for one declared uniform type.
// matrix is the square matrix order, 0 for scalars and vectors.
type uniformRule struct {
	kind   elementKind
	arity  int
	matrix int
}

// uniformRules maps every supported declared type tag to its generation rule.
// Bool and sampler uniforms are uploaded through the integer primitives.
var uniformRules = map[driver.Type]uniformRule{
	driver.TypeInt:         {kind: kindInt, arity: 1},
	driver.TypeBool:        {kind: kindInt, arity: 1},
	driver.TypeSampler2D:   {kind: kindInt, arity: 1},
	driver.TypeSamplerCube: {kind: kindInt, arity: 1},
	driver.TypeIntVec2:     {kind: kindInt, arity: 2},
	driver.TypeBoolVec2:    {kind: kindInt, arity: 2},
	driver.TypeIntVec3:     {kind: kindInt, arity: 3},
	driver.TypeBoolVec3:    {kind: kindInt, arity: 3},
	driver.TypeIntVec4:     {kind: kindInt, arity: 4},
	driver.TypeBoolVec4:    {kind: kindInt, arity: 4},
	driver.TypeFloat:       {kind: kindFloat, arity: 1},
	driver.TypeFloatVec2:   {kind: kindFloat, arity: 2},
	driver.TypeFloatVec3:   {kind: kindFloat, arity: 3},
	driver.TypeFloatVec4:   {kind: kindFloat, arity: 4},
	driver.TypeFloatMat2:   {kind: kindFloat, arity: 4, matrix: 2},
	driver.TypeFloatMat3:   {kind: kindFloat, arity: 9, matrix: 3},
	driver.TypeFloatMat4:   {kind: kindFloat, arity: 16, matrix: 4},
}

// setterFunc uploads v to the uniform at location.
type setterFunc func(u driver.UniformUploader, location int32, v any) error

// setterKey selects a scalar/vector setter.
type setterKey struct {
	kind   elementKind
	arity  int
	vector bool
}

// vectorSetters is the fixed set of scalar and vector setters.
var vectorSetters = map[setterKey]setterFunc{
	{kindInt, 1, false}:   setInt,
	{kindInt, 2, true}:    setIntVec2,
	{kindInt, 3, true}:    setIntVec3,
	{kindInt, 4, true}:    setIntVec4,
	{kindFloat, 1, false}: setFloat,
	{kindFloat, 2, true}:  setFloatVec2,
	{kindFloat, 3, true}:  setFloatVec3,
	{kindFloat, 4, true}:  setFloatVec4,
}

// matrixSetters is the fixed set of square matrix setters keyed by order.
var matrixSetters = map[int]setterFunc{
	2: setMatrix2,
	3: setMatrix3,
	4: setMatrix4,
}

// lookupSetter resolves the setter for a rule. It is only called at bind time.
func lookupSetter(r uniformRule) (setterFunc, bool) {
	if r.matrix > 0 {
		s, ok := matrixSetters[r.matrix]
		return s, ok
	}
	s, ok := vectorSetters[setterKey{kind: r.kind, arity: r.arity, vector: r.arity > 1}]
	return s, ok
}

func setInt(u driver.UniformUploader, location int32, v any) error {
	i, err := toInt32(v)
	if err != nil {
		return err
	}
	return u.Uniform1i(location, i)
}

func setIntVec2(u driver.UniformUploader, location int32, v any) error {
	return setIntVector(u, location, 2, v)
}

func setIntVec3(u driver.UniformUploader, location int32, v any) error {
	return setIntVector(u, location, 3, v)
}

func setIntVec4(u driver.UniformUploader, location int32, v any) error {
	return setIntVector(u, location, 4, v)
}

func setIntVector(u driver.UniformUploader, location int32, width int, v any) error {
	s, err := toInt32s(v)
	if err != nil {
		return err
	}
	return u.UniformIntVector(location, width, s)
}

func setFloat(u driver.UniformUploader, location int32, v any) error {
	f, err := toFloat32(v)
	if err != nil {
		return err
	}
	return u.Uniform1f(location, f)
}

func setFloatVec2(u driver.UniformUploader, location int32, v any) error {
	return setFloatVector(u, location, 2, v)
}

func setFloatVec3(u driver.UniformUploader, location int32, v any) error {
	return setFloatVector(u, location, 3, v)
}

func setFloatVec4(u driver.UniformUploader, location int32, v any) error {
	return setFloatVector(u, location, 4, v)
}

func setFloatVector(u driver.UniformUploader, location int32, width int, v any) error {
	s, err := toFloat32s(v)
	if err != nil {
		return err
	}
	return u.UniformFloatVector(location, width, s)
}

func setMatrix2(u driver.UniformUploader, location int32, v any) error {
	return setMatrix(u, location, 2, v)
}

func setMatrix3(u driver.UniformUploader, location int32, v any) error {
	return setMatrix(u, location, 3, v)
}

func setMatrix4(u driver.UniformUploader, location int32, v any) error {
	return setMatrix(u, location, 4, v)
}

// setMatrix always uploads non-transposed, column-major data.
func setMatrix(u driver.UniformUploader, location int32, order int, v any) error {
	s, err := toFloat32s(v)
	if err != nil {
		return err
	}
	return u.UniformMatrix(location, order, false, s)
}

func toInt32(v any) (int32, error) {
	switch t := v.(type) {
	case int32:
		return t, nil
	case int:
		if t < math.MinInt32 || t > math.MaxInt32 {
			return 0, outOfRange(v)
		}
		return int32(t), nil
	case uint32:
		if t > math.MaxInt32 {
			return 0, outOfRange(v)
		}
		return int32(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	}
	return 0, invalidValue(v, kindInt)
}

func toInt32s(v any) ([]int32, error) {
	switch t := v.(type) {
	case []int32:
		return t, nil
	case [2]int32:
		return t[:], nil
	case [3]int32:
		return t[:], nil
	case [4]int32:
		return t[:], nil
	case []int:
		out := make([]int32, len(t))
		for i, x := range t {
			n, err := toInt32(x)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case []bool:
		out := make([]int32, len(t))
		for i, x := range t {
			if x {
				out[i] = 1
			}
		}
		return out, nil
	case int32, int, uint32, bool:
		i, err := toInt32(t)
		if err != nil {
			return nil, err
		}
		return []int32{i}, nil
	}
	return nil, invalidValue(v, kindInt)
}

func toFloat32(v any) (float32, error) {
	switch t := v.(type) {
	case float32:
		return t, nil
	case float64:
		return float32(t), nil
	case int:
		return float32(t), nil
	}
	return 0, invalidValue(v, kindFloat)
}

func toFloat32s(v any) ([]float32, error) {
	switch t := v.(type) {
	case []float32:
		return t, nil
	case [2]float32:
		return t[:], nil
	case [3]float32:
		return t[:], nil
	case [4]float32:
		return t[:], nil
	case [9]float32:
		return t[:], nil
	case [16]float32:
		return t[:], nil
	case []float64:
		out := make([]float32, len(t))
		for i, x := range t {
			out[i] = float32(x)
		}
		return out, nil
	case float32, float64, int:
		f, _ := toFloat32(t)
		return []float32{f}, nil
	}
	return nil, invalidValue(v, kindFloat)
}

func invalidValue(v any, kind elementKind) error {
	return errors.Wrapf(ErrInvalidUniformValue, "cannot use %T as %s data", v, kind)
}

// outOfRange reports an integer that GLSL int (32-bit signed) cannot hold.
func outOfRange(v any) error {
	return errors.Wrapf(ErrInvalidUniformValue, "%v overflows int32", v)
}
