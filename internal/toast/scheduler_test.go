package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAndExpire(t *testing.T) {
	s := NewScheduler()

	shown := s.Show("saved", 2*time.Second)
	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "saved", current.Message)

	assert.True(t, s.Expire(shown.Seq))
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestShowReplacesVisibleToast(t *testing.T) {
	s := NewScheduler()

	first := s.Show("X", 2*time.Second)
	second := s.Show("Y", 0)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Y", current.Message)

	// The replaced toast's pending expiry must not clear the new one.
	assert.False(t, s.Expire(first.Seq))
	current, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, "Y", current.Message)

	// Y is sticky; even its own seq does not auto-expire it.
	assert.False(t, s.Expire(second.Seq))
	_, ok = s.Current()
	assert.True(t, ok)
}

func TestSeqIncreasesForIdenticalMessages(t *testing.T) {
	s := NewScheduler()

	first := s.Show("copied", time.Second)
	second := s.Show("copied", time.Second)

	assert.Greater(t, second.Seq, first.Seq)
}

func TestStickyToastNeedsExplicitDismiss(t *testing.T) {
	s := NewScheduler()

	shown := s.ShowWithPayload("update available", 0, "https://example.com/dl")
	require.True(t, shown.Sticky())

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/dl", current.Payload)

	s.Dismiss()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestDismissClearsMessageAndPayloadTogether(t *testing.T) {
	s := NewScheduler()
	s.ShowWithPayload("notice", time.Second, "ctx")

	s.Dismiss()

	current, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, current.Message)
	assert.Empty(t, current.Payload)
}

func TestExpireOnEmptySchedulerIsNoop(t *testing.T) {
	s := NewScheduler()
	assert.False(t, s.Expire(1))
}
