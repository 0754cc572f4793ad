package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(fn func()) (f *Fault) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var ok bool
		f, ok = From(r)
		if !ok {
			panic(r)
		}
	}()
	fn()
	return nil
}

func TestTruef(t *testing.T) {
	assert.NotPanics(t, func() {
		Truef(true, "should not fire")
	})

	f := capture(func() {
		Truef(false, "destination %q was never created", "count")
	})
	require.NotNil(t, f)
	assert.Contains(t, f.Error(), "internal consistency fault:")
	assert.Contains(t, f.Error(), `destination "count" was never created`)
	assert.Contains(t, f.Error(), "fault_test.go")
}

func TestFrom_NotAFault(t *testing.T) {
	_, ok := From("some other panic")
	assert.False(t, ok)
	_, ok = From(nil)
	assert.False(t, ok)
}
