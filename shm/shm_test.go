package shm_test

import (
	"io"
	"testing"

	"deedles.dev/wlgl/shm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestMapShared(t *testing.T) {
	file, err := shm.Allocate("shm-test", 4096)
	require.NoError(t, err)
	defer file.Close()

	mmap, err := shm.MapShared(file, 4096, unix.PROT_READ|unix.PROT_WRITE)
	require.NoError(t, err)
	require.Len(t, mmap, 4096)

	copy(mmap, "triangle")
	require.NoError(t, mmap.Unmap())

	buf := make([]byte, 8)
	_, err = io.ReadFull(file, buf)
	require.NoError(t, err)
	assert.Equal(t, "triangle", string(buf))
}
