package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCount(t *testing.T) {
	assert.NoError(t, CheckCount("glUniform3fv", 3, 3))
	assert.NoError(t, CheckCount("glUniform3fv", 6, 3))
	assert.NoError(t, CheckCount("glUniformMatrix4fv", 16, 16))

	for _, n := range []int{0, 2, 4} {
		err := CheckCount("glUniform3fv", n, 3)
		assert.ErrorIs(t, err, ErrInvalidValue, "n=%d", n)
	}
	assert.ErrorContains(t, CheckCount("glUniform3fv", 2, 3), "glUniform3fv: 2 values, 3 per element")
	assert.ErrorIs(t, CheckCount("glUniformMatrix2fv", 9, 4), ErrInvalidValue)
}
