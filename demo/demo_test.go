package demo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTenPrintersWritesExactCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	result := TenPrinters(10, rng)

	require.Equal(t, 10000, result.Details["total"])
	for i := 0; i < 10; i++ {
		name := string(rune('0' + i))
		require.Equalf(t, 1000, result.Details[name], "digit %s", name)
	}
}

func TestMutexExclusionNeverExceedsOneOccupant(t *testing.T) {
	result := MutexExclusion()
	require.Equal(t, 1, result.Details["maxInside"])
}

func TestMailboxConsumesEveryMessageAndSentinel(t *testing.T) {
	result := Mailbox(4, 2, 5000)

	require.Equal(t, 20000, result.Details["consumed"])
	require.Equal(t, 2, result.Details["sentinelsConsumed"])
	require.Equal(t, 0, result.Details["queueLenAtExit"])
}

func TestFIFOMutexOrdersWaitersByEnqueueTime(t *testing.T) {
	result := FIFOMutex(5)
	require.Equal(t, 5, result.Details["waiters"])
	require.Equal(t, 1, result.Details["monotonic"])
}

func TestHeadOfLineSemaphoreBlocksSmallerWaiterBehindLarger(t *testing.T) {
	result := HeadOfLineSemaphore()

	require.Equal(t, 10, result.Details["aAcquired"])
	require.Equal(t, 1, result.Details["bAcquired"])
	require.Equal(t, 1, result.Details["neitherWokeOnFirstRelease"])
	require.Equal(t, 1, result.Details["aWokeBeforeB"])
	require.Equal(t, 0, result.Details["permitsRemaining"])
}

func TestRecursiveMutexWaiterWakesOnlyOnFinalRelease(t *testing.T) {
	result := RecursiveMutex(4)
	require.Equal(t, 4, result.Details["depth"])
	require.Equal(t, 4, result.Details["waiterWokeAfter"])
}
