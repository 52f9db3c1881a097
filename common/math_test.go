package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func apply(m [16]float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row] += m[col*4+row] * v[col]
		}
	}
	return out
}

func assertVec(t *testing.T, want, got [4]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d", i)
	}
}

func TestMul4Identity(t *testing.T) {
	m := Translation(1, 2, 3)
	assert.Equal(t, m, Mul4(Identity(), m))
	assert.Equal(t, m, Mul4(m, Identity()))
}

func TestMul4AppliesRightFirst(t *testing.T) {
	m := Mul4(Translation(1, 0, 0), RotationZ(math32.Pi/2))
	assertVec(t, [4]float32{1, 1, 0, 1}, apply(m, [4]float32{1, 0, 0, 1}))
}

func TestRotationY(t *testing.T) {
	got := apply(RotationY(math32.Pi/2), [4]float32{1, 0, 0, 1})
	assertVec(t, [4]float32{0, 0, -1, 1}, got)
}

func TestPerspectiveMapsNearAndFar(t *testing.T) {
	p := Perspective(math32.Pi/2, 1, 1, 10)

	near := apply(p, [4]float32{0, 0, -1, 1})
	assert.InDelta(t, -1, near[2]/near[3], 1e-5)
	far := apply(p, [4]float32{0, 0, -10, 1})
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := [3]float32{0, 0, 5}
	v := LookAt(eye, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})

	assertVec(t, [4]float32{0, 0, 0, 1}, apply(v, [4]float32{eye[0], eye[1], eye[2], 1}))
	assertVec(t, [4]float32{0, 0, -5, 1}, apply(v, [4]float32{0, 0, 0, 1}))
}

func TestCoalesceAndClamp(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))

	assert.Equal(t, 5, Clamp(1, 5, 10))
	assert.Equal(t, 10, Clamp(20, 5, 10))
	assert.Equal(t, 20, Clamp(20, 5, 0))
}
