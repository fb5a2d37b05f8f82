package service

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCronSkipsOverlappingTicks(t *testing.T) {
	c := newWatchCron()

	var runs atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	id, err := c.AddFunc("@every 1h", func() {
		if runs.Add(1) == 1 {
			close(started)
			<-release
		}
	})
	require.NoError(t, err)
	job := c.Entry(id).WrappedJob

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()
	<-started

	// the first tick is still rendering
	job.Run()
	assert.Equal(t, int32(1), runs.Load())

	close(release)
	<-done
	job.Run()
	assert.Equal(t, int32(2), runs.Load())
}
