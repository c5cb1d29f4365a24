package sitekit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitekit"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitekit.Errorf(sitekit.ENOTFOUND, "post %q not found", "test")

	assert.Equal(t, sitekit.ENOTFOUND, sitekit.ErrorCode(err))
	assert.Equal(t, "post \"test\" not found", sitekit.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("emit /about: %w", sitekit.Errorf(sitekit.EINVALID, "bad route"))

	assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err))
	assert.Equal(t, "bad route", sitekit.ErrorMessage(err))
}

func TestErrorCode_InternalError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, sitekit.EINTERNAL, sitekit.ErrorCode(err))
	assert.Equal(t, "Internal error.", sitekit.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitekit.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitekit.ErrorMessage(nil))
}
