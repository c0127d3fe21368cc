package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vinayakrc/store-monitoring/services/api/report"
)

type staticSource struct {
	dataset *report.Dataset
	err     error
}

func (s *staticSource) LoadDataset(context.Context) (*report.Dataset, error) {
	return s.dataset, s.err
}

type panicSource struct{}

func (panicSource) LoadDataset(context.Context) (*report.Dataset, error) {
	panic("bad snapshot")
}

func testDataset(t *testing.T) *report.Dataset {
	t.Helper()
	anchor := time.Date(2023, 1, 25, 12, 0, 0, 0, time.UTC)
	ds, err := report.NewDataset(
		[]report.Observation{
			{StoreID: "s1", Timestamp: anchor.Add(-time.Hour), Status: report.StatusActive},
			{StoreID: "s1", Timestamp: anchor, Status: report.StatusActive},
		},
		nil,
		[]report.StoreTimezone{{StoreID: "s1", Timezone: "UTC"}},
		report.DefaultTimezone,
	)
	require.NoError(t, err)
	return ds
}

func newTestRunner(source Source) (*Runner, *Pool) {
	pool := NewPool(2)
	runner := NewRunner(NewRegistry(), pool, source, time.Minute, zap.NewNop())
	return runner, pool
}

func TestRunnerCompletesJob(t *testing.T) {
	runner, pool := newTestRunner(&staticSource{dataset: testDataset(t)})

	id := runner.Trigger()

	snapshot, ok := runner.Poll(id)
	require.True(t, ok)
	require.Contains(t, []State{StateRunning, StateComplete}, snapshot.State)

	pool.Wait()

	snapshot, ok = runner.Poll(id)
	require.True(t, ok)
	require.Equal(t, StateComplete, snapshot.State)
	require.True(t, strings.HasPrefix(snapshot.Artifact, report.CSVHeader))
	require.Contains(t, snapshot.Artifact, "\ns1,")
}

func TestRunnerPollUnknownID(t *testing.T) {
	runner, _ := newTestRunner(&staticSource{dataset: testDataset(t)})
	_, ok := runner.Poll("never-created")
	require.False(t, ok)
}

func TestRunnerFailsJobOnSourceError(t *testing.T) {
	runner, pool := newTestRunner(&staticSource{err: errors.New("connection refused")})

	id := runner.Trigger()
	pool.Wait()

	snapshot, ok := runner.Poll(id)
	require.True(t, ok)
	require.Equal(t, StateFailed, snapshot.State)
	require.Contains(t, snapshot.Diagnostic, "connection refused")
}

func TestRunnerFailsJobOnPanic(t *testing.T) {
	runner, pool := newTestRunner(panicSource{})

	id := runner.Trigger()
	pool.Wait()

	snapshot, ok := runner.Poll(id)
	require.True(t, ok)
	require.Equal(t, StateFailed, snapshot.State)
	require.Contains(t, snapshot.Diagnostic, "panicked")
}

func TestRunnerJobsAreIndependent(t *testing.T) {
	runner, pool := newTestRunner(&staticSource{dataset: testDataset(t)})

	first := runner.Trigger()
	second := runner.Trigger()
	require.NotEqual(t, first, second)

	pool.Wait()

	a, _ := runner.Poll(first)
	b, _ := runner.Poll(second)
	require.Equal(t, StateComplete, a.State)
	require.Equal(t, StateComplete, b.State)
	require.Equal(t, a.Artifact, b.Artifact)
}
