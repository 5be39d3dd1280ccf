package ecoute_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mgirard/ecoute"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", ecoute.ErrorCode(nil))
	})

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := ecoute.Errorf(ecoute.ENOTFOUND, "exercise not found")
		assert.Equal(t, ecoute.ENOTFOUND, ecoute.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("lookup: %w", ecoute.Errorf(ecoute.ECONFLICT, "taken"))
		assert.Equal(t, ecoute.ECONFLICT, ecoute.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ecoute.EINTERNAL, ecoute.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", ecoute.ErrorMessage(nil))
	})

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := ecoute.Errorf(ecoute.EINVALID, "bad %s", "input")
		assert.Equal(t, "bad input", ecoute.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", ecoute.ErrorMessage(errors.New("boom")))
	})
}
