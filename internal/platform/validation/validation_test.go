package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_EmptyIsNil(t *testing.T) {
	v := New()
	v.Required("name", "Milo")

	assert.True(t, v.Empty())
	assert.NoError(t, v.Err())
}

func TestError_FullMessages_SortedAndHumanized(t *testing.T) {
	v := New()
	v.Required("note_date", "")
	v.Required("content", "   ")

	err := v.Err()
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Content can't be blank", "Note date can't be blank"}, verr.FullMessages())
	assert.Equal(t, "validation failed: Content can't be blank, Note date can't be blank", err.Error())
}

func TestError_AddOnZeroValue(t *testing.T) {
	var v Error
	v.Add("species", MsgBlank)

	assert.Equal(t, map[string][]string{"species": {MsgBlank}}, v.Fields)
}

func TestError_Merge(t *testing.T) {
	decoded := New()
	decoded.Add("birth_date", "must be YYYY-MM-DD")

	v := New()
	v.Merge(decoded)
	v.Merge(nil)
	v.Required("name", "")

	assert.Equal(t, map[string][]string{
		"birth_date": {"must be YYYY-MM-DD"},
		"name":       {MsgBlank},
	}, v.Fields)
	assert.Equal(t, []string{"Birth date must be YYYY-MM-DD", "Name can't be blank"}, v.FullMessages())
}
