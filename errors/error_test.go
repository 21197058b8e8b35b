package errors_test

import (
	stderr "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"andy.dev/fluentdebug/errors"
)

func TestWrapKeepsCause(t *testing.T) {
	original := stderr.New("Too many arguments")
	err := errors.Wrap(original, "An error occurred")

	assert.Equal(t, "An error occurred", err.Error())
	assert.Same(t, original, err.Cause())
	assert.ErrorIs(t, err, original)
	assert.Equal(t, original, stderr.Unwrap(err))
}

func TestErrorfWrapVerb(t *testing.T) {
	original := stderr.New("boom")
	err := errors.Errorf("calling delay: %w", original)

	assert.Equal(t, "calling delay: boom", err.Error())
	assert.ErrorIs(t, err, original)
}

func TestNewHasNoCause(t *testing.T) {
	err := errors.New("plain")
	assert.Nil(t, err.Cause())
	assert.Nil(t, stderr.Unwrap(err))
}

func TestLocation(t *testing.T) {
	err := errors.New("here")
	loc := err.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "error_test.go", loc.File)
	assert.Contains(t, loc.Function, "TestLocation")
	assert.Equal(t, loc.String(), fmt.Sprintf("%v", loc))
	assert.Equal(t, fmt.Sprintf("%q", loc.String()), fmt.Sprintf("%q", loc))
	assert.Contains(t, fmt.Sprintf("%+v", loc), "TestLocation")
	assert.NotEmpty(t, err.Stack().String())
}

func TestFieldsSortedAndPrefixed(t *testing.T) {
	err := errors.New("with fields").With("method", "delay").With("elapsed_ms", int64(12))

	assert.Equal(t, []any{"err_elapsed_ms", int64(12), "err_method", "delay"}, err.Fields())
	v, ok := err.Field("method")
	assert.True(t, ok)
	assert.Equal(t, "delay", v)
	assert.Nil(t, errors.New("none").Fields())
}

func TestAsFromWrapped(t *testing.T) {
	inner := errors.New("inner")
	outer := fmt.Errorf("outer: %w", inner)

	var target *errors.Error
	require.True(t, stderr.As(outer, &target))
	assert.Same(t, inner, target)
}
