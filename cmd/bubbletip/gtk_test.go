package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/bubbletip/internal/geometry"
)

func TestGTKCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"gtk"})
	require.NoError(t, err)
	require.Equal(t, "gtk", cmd.Name())

	prefer := cmd.Flags().Lookup("prefer")
	require.NotNil(t, prefer)
	assert.Equal(t, "top", prefer.DefValue)

	modal := cmd.Flags().Lookup("modal")
	require.NotNil(t, modal)
	assert.Equal(t, "true", modal.DefValue)
}

func TestGTKRejectsInvalidSide(t *testing.T) {
	orig := gtkFlags.prefer
	gtkFlags.prefer = "diagonal"
	t.Cleanup(func() { gtkFlags.prefer = orig })

	// Side validation runs before any display connection is attempted.
	err := runGTK(gtkCmd, nil)
	require.ErrorIs(t, err, geometry.ErrInvalidSide)
}
