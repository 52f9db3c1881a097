package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
)

// attrib is the implementation of the Attrib interface.
type attrib struct {
	d        driver.VertexArrayer
	name     string
	typ      driver.Type
	location uint32
	size     int32
}

// Attrib describes and toggles one active vertex attribute of a bound program.
type Attrib interface {
	// Name returns the attribute name as reported by the driver.
	//
	// Returns:
	//   - string: the attribute name
	Name() string

	// Type returns the attribute's declared type tag.
	//
	// Returns:
	//   - driver.Type: the declared type
	Type() driver.Type

	// Location returns the attribute slot, which is the attribute's enumeration index.
	//
	// Returns:
	//   - uint32: the slot index
	Location() uint32

	// Size returns the number of components per vertex: 2, 3 or 4 for float vectors, 1 otherwise.
	//
	// Returns:
	//   - int: the component count
	Size() int

	// Set binds buffer as the array buffer and describes this slot as tightly packed,
	// non-normalized data starting at offset 0.
	//
	// Parameters:
	//   - buffer: the vertex buffer object
	//   - componentType: the element type of each component, zero for driver.ComponentFloat
	Set(buffer uint32, componentType driver.ComponentType)

	// Pointer describes this slot within the currently bound array buffer. It does not bind
	// a buffer; use it for interleaved layouts after binding the buffer yourself.
	//
	// Parameters:
	//   - componentType: the element type of each component, zero for driver.ComponentFloat
	//   - normalized: whether fixed-point data is normalized
	//   - stride: byte distance between consecutive vertices, 0 for tightly packed
	//   - offset: byte offset of the first component
	Pointer(componentType driver.ComponentType, normalized bool, stride int32, offset int)

	// Enable turns on the vertex attribute array at this slot.
	Enable()

	// Disable turns off the vertex attribute array at this slot.
	Disable()
}

var _ Attrib = &attrib{}

// attribWidth returns the component count for an attribute's declared type.
func attribWidth(t driver.Type) int32 {
	switch t {
	case driver.TypeFloatVec2:
		return 2
	case driver.TypeFloatVec3:
		return 3
	case driver.TypeFloatVec4:
		return 4
	}
	return 1
}

func newAttrib(d driver.VertexArrayer, slot uint32, v driver.Variable) *attrib {
	return &attrib{
		d:        d,
		name:     v.Name,
		typ:      v.Type,
		location: slot,
		size:     attribWidth(v.Type),
	}
}

func (a *attrib) Name() string {
	return a.name
}

func (a *attrib) Type() driver.Type {
	return a.typ
}

func (a *attrib) Location() uint32 {
	return a.location
}

func (a *attrib) Size() int {
	return int(a.size)
}

func (a *attrib) Set(buffer uint32, componentType driver.ComponentType) {
	a.d.BindBuffer(driver.ArrayBuffer, buffer)
	a.d.VertexAttribPointer(a.location, a.size, common.Coalesce(componentType, driver.ComponentFloat), false, 0, 0)
}

func (a *attrib) Pointer(componentType driver.ComponentType, normalized bool, stride int32, offset int) {
	a.d.VertexAttribPointer(a.location, a.size, common.Coalesce(componentType, driver.ComponentFloat), normalized, stride, offset)
}

func (a *attrib) Enable() {
	a.d.EnableVertexAttribArray(a.location)
}

func (a *attrib) Disable() {
	a.d.DisableVertexAttribArray(a.location)
}

func (a *attrib) String() string {
	return fmt.Sprintf("Attrib(%q, size:%v, type:%v, location:%d)", a.name, a.size, a.typ, a.location)
}
