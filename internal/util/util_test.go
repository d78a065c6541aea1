package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)
}

func TestStringToNullString(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)

	ns := StringToNullString("student")
	assert.True(t, ns.Valid)
	assert.Equal(t, "student", ns.String)
}
