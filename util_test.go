package tickz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerIdentityNil(t *testing.T) {
	assert.Equal(t, uintptr(0), handlerIdentity(nil))
}

func TestHandlerIdentitySameFunc(t *testing.T) {
	fn := func(_ context.Context, _ any) {}
	assert.Equal(t, handlerIdentity(fn), handlerIdentity(fn))
}

func TestHandlerIdentityDistinctFuncs(t *testing.T) {
	a := func(_ context.Context, _ any) {}
	b := func(_ context.Context, _ any) {}
	assert.NotEqual(t, handlerIdentity(a), handlerIdentity(b))
}

func TestFmtPanicError(t *testing.T) {
	assert.Equal(t, "boom", fmtPanic(assertError{"boom"}))
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }

func TestFmtPanicNonError(t *testing.T) {
	assert.Equal(t, "42", fmtPanic(42))
}
