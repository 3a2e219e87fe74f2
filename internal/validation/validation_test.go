package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("title", "MVP"))
	err := Required("title", "   ")
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("email", ""))
	assert.NoError(t, Email("email", "founder@example.com"))
	assert.Error(t, Email("email", "not-an-email"))
}

func TestOneOf(t *testing.T) {
	allowed := []color{"red", "green"}
	assert.NoError(t, OneOf("color", color("red"), allowed))
	err := OneOf("color", color("blue"), allowed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "red, green")
}

func TestNonNegative(t *testing.T) {
	assert.NoError(t, NonNegative("amount", 0))
	assert.Error(t, NonNegative("amount", -1))
	assert.Error(t, NonNegative("amount", math.NaN()))
	assert.Error(t, NonNegative("amount", math.Inf(1)))
}

func TestRangeAndDate(t *testing.T) {
	assert.NoError(t, Range("progress", 100, 0, 100))
	assert.Error(t, Range("progress", 101, 0, 100))

	d, err := Date("dueDate", "2024-02-15")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Day())
	_, err = Date("dueDate", "15/02/2024")
	assert.Error(t, err)
}

func TestFirst(t *testing.T) {
	a := errors.New("a")
	assert.Nil(t, First(nil, nil))
	assert.Same(t, a, First(nil, a, errors.New("b")))
}
