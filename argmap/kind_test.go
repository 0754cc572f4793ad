package argmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "flag", KindFlagTrue.String())
	assert.Equal(t, "inverted flag", KindFlagFalse.String())
	assert.Equal(t, "choice", KindChoice.String())
	assert.Equal(t, "list", KindList.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "subcommand", KindSelector.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestKind_ZeroValueIsUnknown(t *testing.T) {
	var k Kind
	assert.Equal(t, KindUnknown, k)
}

func TestKind_Scalar(t *testing.T) {
	assert.True(t, KindInt.Scalar())
	assert.True(t, KindFloat.Scalar())
	assert.True(t, KindString.Scalar())
	assert.True(t, KindUnknown.Scalar())
	assert.False(t, KindList.Scalar())
	assert.False(t, KindChoice.Scalar())
	assert.False(t, KindFlagTrue.Scalar())
	assert.False(t, KindSelector.Scalar())
}

func TestKind_Boolean(t *testing.T) {
	assert.True(t, KindFlagTrue.Boolean())
	assert.True(t, KindFlagFalse.Boolean())
	assert.False(t, KindInt.Boolean())
}

func TestCoerceScalar_Int(t *testing.T) {
	v, ok := CoerceScalar(KindInt, "42")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = CoerceScalar(KindInt, "  -7 ")
	assert.True(t, ok)
	assert.Equal(t, -7, v)

	v, ok = CoerceScalar(KindInt, "4.5")
	assert.False(t, ok)
	assert.Nil(t, v)

	v, ok = CoerceScalar(KindInt, "abc")
	assert.False(t, ok)
	assert.Nil(t, v)

	v, ok = CoerceScalar(KindInt, "")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestCoerceScalar_Float(t *testing.T) {
	v, ok := CoerceScalar(KindFloat, "3.5")
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)

	v, ok = CoerceScalar(KindFloat, " 10 ")
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)

	v, ok = CoerceScalar(KindFloat, "x")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestCoerceScalar_StringVerbatim(t *testing.T) {
	v, ok := CoerceScalar(KindString, "  keep spaces  ")
	assert.True(t, ok)
	assert.Equal(t, "  keep spaces  ", v)

	v, ok = CoerceScalar(KindString, "")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	v, ok = CoerceScalar(KindUnknown, "anything")
	assert.True(t, ok)
	assert.Equal(t, "anything", v)
}
