package shader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/driver/drivertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttribWidthFromType(t *testing.T) {
	tests := []struct {
		typ  driver.Type
		want int32
	}{
		{driver.TypeFloatVec2, 2},
		{driver.TypeFloatVec3, 3},
		{driver.TypeFloatVec4, 4},
		{driver.TypeFloat, 1},
		{driver.TypeFloatMat4, 1},
		{driver.TypeIntVec3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, attribWidth(tt.typ))
		})
	}
}

func TestAttribSetBindsAndDescribes(t *testing.T) {
	d := drivertest.New()
	a := newAttrib(d, 2, driver.Variable{Name: "color", Type: driver.TypeFloatVec4, Size: 1})

	a.Set(11, driver.ComponentUnsignedByte)

	calls := d.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "BindBuffer", calls[0].Method)
	assert.Equal(t, []any{driver.ArrayBuffer, uint32(11)}, calls[0].Args)
	assert.Equal(t, "VertexAttribPointer", calls[1].Method)
	assert.Equal(t, []any{uint32(2), int32(4), driver.ComponentUnsignedByte, false, int32(0), 0}, calls[1].Args)
}

func TestAttribPointerDoesNotBind(t *testing.T) {
	d := drivertest.New()
	a := newAttrib(d, 1, driver.Variable{Name: "uv", Type: driver.TypeFloatVec2, Size: 1})

	a.Pointer(0, true, 20, 12)

	assert.Zero(t, d.Count("BindBuffer"))
	calls := d.CallsTo("VertexAttribPointer")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{uint32(1), int32(2), driver.ComponentFloat, true, int32(20), 12}, calls[0].Args)
}

func TestAttribEnableDisableOnlyTogglesFlag(t *testing.T) {
	d := drivertest.New()
	a := newAttrib(d, 3, driver.Variable{Name: "weight", Type: driver.TypeFloat, Size: 1})

	a.Enable()
	assert.True(t, d.Enabled(3))
	a.Disable()
	assert.False(t, d.Enabled(3))

	for _, c := range d.Calls() {
		assert.Contains(t, []string{"EnableVertexAttribArray", "DisableVertexAttribArray"}, c.Method)
	}
	assert.Equal(t, 1, a.Size())
	assert.Equal(t, uint32(3), a.Location())
	assert.Equal(t, driver.TypeFloat, a.Type())
}
