package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingClaimPublishPollRelease(t *testing.T) {
	r := newRing(4)

	slot, ok := r.claim()
	require.True(t, ok)
	slot.FunctionUUID = "one"
	r.publish()

	got, ok := r.poll()
	require.True(t, ok)
	assert.Equal(t, "one", got.FunctionUUID)
	r.release()

	_, ok = r.poll()
	assert.False(t, ok)
}

func TestRingDropsWhenFull(t *testing.T) {
	r := newRing(2) // rounds up to 2

	for i := 0; i < 2; i++ {
		_, ok := r.claim()
		require.True(t, ok)
	}
	r.publish()

	_, ok := r.claim()
	assert.False(t, ok, "claim on a full ring must fail rather than block")
}

func TestRingClaimReleaseFreesCapacity(t *testing.T) {
	r := newRing(2)

	_, ok := r.claim()
	require.True(t, ok)
	r.publish()

	_, ok = r.poll()
	require.True(t, ok)
	r.release()

	// Freeing a slot must let the producer claim again, refreshing its
	// cached head from the consumer's release.
	_, ok = r.claim()
	assert.True(t, ok)
}

func TestRingPreservesOrderAcrossManyEvents(t *testing.T) {
	r := newRing(8)

	for i := 0; i < 100; i++ {
		slot, ok := r.claim()
		if !ok {
			r.publish()
			for {
				e, ok := r.poll()
				if !ok {
					break
				}
				_ = e
				r.release()
			}
			slot, ok = r.claim()
			require.True(t, ok)
		}
		slot.Quantity = uint64(i)
		r.publish()

		e, ok := r.poll()
		require.True(t, ok)
		assert.Equal(t, uint64(i), e.Quantity)
		r.release()
	}
}

func TestRingIsEmpty(t *testing.T) {
	r := newRing(4)
	assert.True(t, r.isEmpty())

	_, ok := r.claim()
	require.True(t, ok)
	r.publish()
	assert.False(t, r.isEmpty())
}

func TestRingClaimNAllOrNothing(t *testing.T) {
	r := newRing(2)

	// Only 2 slots total; asking for 3 must claim none of them.
	slots, ok := r.claimN(3)
	assert.False(t, ok)
	assert.Nil(t, slots)

	slots, ok = r.claimN(2)
	require.True(t, ok)
	require.Len(t, slots, 2)
	r.publish()

	_, ok = r.claim()
	assert.False(t, ok, "a failed claimN must not have consumed any capacity")
}
