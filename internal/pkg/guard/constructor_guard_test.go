package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command not constructed")

	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errCommandNotConstructed := errors.New("completeCommand must be created via newCompleteCommand")

	type completeCommand struct {
		orderID int64
		guard   guard.ConstructorGuard
	}

	newCompleteCommand := func(orderID int64) (completeCommand, error) {
		if orderID < 0 {
			return completeCommand{}, errors.New("order id cannot be negative")
		}
		return completeCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newCompleteCommand(3)

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errCommandNotConstructed))
		assert.Equal(t, int64(3), cmd.orderID)
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		cmd, err := newCompleteCommand(-1)

		require.Error(t, err)
		assert.Equal(t, errCommandNotConstructed, cmd.guard.Validate(errCommandNotConstructed))
	})

	t.Run("copy_keeps_constructed_state", func(t *testing.T) {
		cmd, _ := newCompleteCommand(1)
		copied := cmd

		require.NoError(t, copied.guard.Validate(errCommandNotConstructed))
	})
}
