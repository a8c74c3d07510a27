package box_test

import (
	"testing"

	"freight/internal/core/domain/model/box"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Constants(t *testing.T) {
	assert.Equal(t, 1, int(box.New))
	assert.Equal(t, 2, int(box.Packed))
	assert.Equal(t, 5, int(box.ContainerReceived))
	assert.Equal(t, 6, int(box.Received))
}

func TestState_TransitionTo(t *testing.T) {
	t.Run("forward chain", func(t *testing.T) {
		s, err := box.New.TransitionTo(box.Packed)
		require.NoError(t, err)
		s, err = s.TransitionTo(box.ContainerReceived)
		require.NoError(t, err)
		s, err = s.TransitionTo(box.Received)
		require.NoError(t, err)
		assert.True(t, s.IsTerminal())
	})

	t.Run("packed box without container can be received directly", func(t *testing.T) {
		s, err := box.Packed.TransitionTo(box.Received)
		require.NoError(t, err)
		assert.Equal(t, box.Received, s)
	})

	t.Run("no regression", func(t *testing.T) {
		_, err := box.Packed.TransitionTo(box.New)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = box.Received.TransitionTo(box.Packed)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("no skipping", func(t *testing.T) {
		_, err := box.New.TransitionTo(box.Received)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestNewBox(t *testing.T) {
	b, err := box.NewBox(kernel.NewUUID())

	require.NoError(t, err)
	require.NoError(t, b.Validate())
	assert.Equal(t, box.New, b.State())
	assert.Nil(t, b.Container())
	assert.Equal(t, int64(1), b.Version())

	_, err = box.NewBox(kernel.UUID{})
	require.Error(t, err)

	var zero box.Box
	require.ErrorIs(t, zero.Validate(), box.ErrBoxIsNotConstructed)
}

func TestBox_Lifecycle(t *testing.T) {
	t.Run("standalone box is received directly after packing", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID())
		require.NoError(t, err)

		require.NoError(t, b.Pack())
		assert.Equal(t, box.Packed, b.State())

		require.NoError(t, b.Receive())
		assert.Equal(t, box.Received, b.State())
	})

	t.Run("containered box must wait for its container", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, b.AssignToContainer(kernel.NewUUID()))
		require.NoError(t, b.Pack())

		err = b.Receive()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, box.Packed, b.State())

		require.NoError(t, b.MarkContainerReceived())
		assert.Equal(t, box.ContainerReceived, b.State())

		require.NoError(t, b.Receive())
		assert.Equal(t, box.Received, b.State())
	})

	t.Run("MarkContainerReceived requires a container", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, b.Pack())

		require.ErrorIs(t, b.MarkContainerReceived(), errs.ErrValueIsRequired)
	})

	t.Run("cannot re-pack or regress", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, b.Pack())

		require.ErrorIs(t, b.Pack(), errs.ErrInvalidTransition)
	})
}

func TestBox_AssignToContainer(t *testing.T) {
	t.Run("assignable while open or packed", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID())
		require.NoError(t, err)
		containerID := kernel.NewUUID()

		require.NoError(t, b.AssignToContainer(containerID))
		require.NotNil(t, b.Container())
		assert.True(t, b.Container().IsEqual(containerID))

		require.NoError(t, b.Pack())
		require.NoError(t, b.AssignToContainer(kernel.NewUUID()), "reassignment while packed is allowed")
	})

	t.Run("not assignable after the shipment leg started", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, b.AssignToContainer(kernel.NewUUID()))
		require.NoError(t, b.Pack())
		require.NoError(t, b.MarkContainerReceived())

		require.ErrorIs(t, b.AssignToContainer(kernel.NewUUID()), box.ErrBoxAlreadyClosed)
	})

	t.Run("rejects zero-value container id", func(t *testing.T) {
		b, err := box.NewBox(kernel.NewUUID())
		require.NoError(t, err)
		require.Error(t, b.AssignToContainer(kernel.UUID{}))
	})
}

func TestRestoreBox(t *testing.T) {
	t.Run("restores a persisted box verbatim", func(t *testing.T) {
		id := kernel.NewUUID()
		containerID := kernel.NewUUID()

		b, err := box.RestoreBox(id, box.ContainerReceived, &containerID, 4)

		require.NoError(t, err)
		assert.Equal(t, box.ContainerReceived, b.State())
		assert.Equal(t, int64(4), b.Version())
		require.NotNil(t, b.Container())
	})

	t.Run("rejects invalid stored state", func(t *testing.T) {
		_, err := box.RestoreBox(kernel.NewUUID(), box.State(3), nil, 1)
		require.Error(t, err)
	})

	t.Run("rejects non-positive version", func(t *testing.T) {
		_, err := box.RestoreBox(kernel.NewUUID(), box.New, nil, 0)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}
