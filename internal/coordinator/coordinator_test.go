package coordinator

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"tornbank/internal/account"
	"tornbank/pkg/errors"
	"tornbank/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Append(line string) {
	m.Called(line)
}

// --- Tests ---

func callID(line string) string {
	for _, f := range strings.Fields(line) {
		if strings.HasPrefix(f, "call=") {
			return strings.TrimPrefix(f, "call=")
		}
	}
	return ""
}

func TestTransferAuditTrail(t *testing.T) {
	rec := logger.NewRecorder()
	coord := New(account.NewPair(4000, 6000), rec)

	_, err := coord.Transfer(context.Background(), account.AccountA, 100, 0)
	require.NoError(t, err)

	lines := rec.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "transfer requested")
	assert.Contains(t, lines[0], "from=1")
	assert.Contains(t, lines[0], "amount=100")
	assert.Contains(t, lines[1], "lock acquired")
	assert.Contains(t, lines[2], "lock released")

	// All three lines carry the same call identity.
	id := callID(lines[0])
	assert.NotEmpty(t, id)
	assert.Equal(t, id, callID(lines[1]))
	assert.Equal(t, id, callID(lines[2]))
}

func TestTransferLogsThroughLogger(t *testing.T) {
	mockLogger := new(MockLogger)
	mockLogger.On("Append", mock.AnythingOfType("string")).Return()

	coord := New(account.NewPair(4000, 6000), mockLogger)

	_, err := coord.Transfer(context.Background(), account.AccountA, 100, 0)
	require.NoError(t, err)

	mockLogger.AssertNumberOfCalls(t, "Append", 3)
	mockLogger.AssertExpectations(t)
}

func TestBalanceDelegates(t *testing.T) {
	coord := New(account.NewPair(4000, 6000), logger.NewNop())

	a, err := coord.Balance(account.AccountA)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), a)

	_, err = coord.Balance(5)
	assert.ErrorIs(t, err, errors.ErrInvalidAccountID)

	assert.Equal(t, int64(10000), coord.TotalBalance())
}

func TestMutualExclusion(t *testing.T) {
	const workers = 16

	rec := logger.NewRecorder()
	coord := New(account.NewPair(4000, 6000), rec)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		from := account.AccountA
		if i%2 == 1 {
			from = account.AccountB
		}
		wg.Add(1)
		go func(from account.AccountID) {
			defer wg.Done()
			_, err := coord.Transfer(context.Background(), from, 100, time.Millisecond)
			assert.NoError(t, err)
		}(from)
	}
	wg.Wait()

	assert.Equal(t, int64(10000), coord.TotalBalance())

	// Every acquisition has a matching release and no two critical sections
	// overlap in the audit stream.
	acquired, released, depth := 0, 0, 0
	for _, line := range rec.Lines() {
		switch {
		case strings.Contains(line, "lock acquired"):
			acquired++
			depth++
			require.Equal(t, 1, depth, "overlapping critical sections in audit stream")
		case strings.Contains(line, "lock released"):
			released++
			depth--
			require.Equal(t, 0, depth)
		}
	}
	assert.Equal(t, workers, acquired)
	assert.Equal(t, workers, released)
}

func TestErrorsPropagateUnchanged(t *testing.T) {
	rec := logger.NewRecorder()
	coord := New(account.NewPairWithTotal(4000, 6000, 9000), rec)

	_, err := coord.Transfer(context.Background(), account.AccountA, 100, 0)

	var violation *errors.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, int64(4000), violation.BalanceA)
	assert.Equal(t, int64(6000), violation.BalanceB)
	assert.Equal(t, int64(9000), violation.Expected)

	// The lock is still released on the failure path.
	lines := rec.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "lock released")
}

func TestForcefulCancelReleasesLock(t *testing.T) {
	coord := New(account.NewPair(4000, 6000), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := coord.Transfer(ctx, account.AccountA, 100, 10*time.Second)
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	// No deadlock: the lock was released on the cancellation path, so reads
	// and further transfers go through — and find the torn state.
	assert.Equal(t, int64(9900), coord.TotalBalance())

	_, err := coord.Transfer(context.Background(), account.AccountA, 100, 0)
	var violation *errors.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, int64(3900), violation.BalanceA)
	assert.Equal(t, int64(6000), violation.BalanceB)
	assert.Equal(t, int64(10000), violation.Expected)
}
