package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/domain"
	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader fails the first fetchErrs fetches, serves queued messages, then
// cancels and blocks until ctx is done.
type fakeReader struct {
	queue     []kafkago.Message
	fetchErrs int
	fetches   int
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.fetches++
	if r.fetchErrs > 0 {
		r.fetchErrs--
		return kafkago.Message{}, errors.New("broker unreachable")
	}
	if len(r.queue) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func fastBackoff(t *testing.T) {
	t.Helper()
	initial, ceiling := initialBackoff, maxBackoff
	initialBackoff, maxBackoff = time.Millisecond, 4*time.Millisecond
	t.Cleanup(func() { initialBackoff, maxBackoff = initial, ceiling })
}

type fakeGenerator struct {
	GeneratePayrollFn func(ctx context.Context, actor domain.Actor, workerID string, start, end time.Time) (payroll.PayrollResponse, bool, error)
}

func (f *fakeGenerator) GeneratePayroll(ctx context.Context, actor domain.Actor, workerID string, start, end time.Time) (payroll.PayrollResponse, bool, error) {
	return f.GeneratePayrollFn(ctx, actor, workerID, start, end)
}

type fakeBalances struct {
	InitializeBalancesFn func(ctx context.Context, companyID, workerID string, year int) (int, error)
}

func (f *fakeBalances) InitializeBalances(ctx context.Context, companyID, workerID string, year int) (int, error) {
	return f.InitializeBalancesFn(ctx, companyID, workerID, year)
}

func message(t *testing.T, offset int64, v any) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: body}
}

func generateEvent(workerID string) events.PayrollGenerateRequestedEvent {
	return events.PayrollGenerateRequestedEvent{
		EventType:   events.EventPayrollGenerateRequested,
		RequestID:   "req-1",
		BatchID:     "batch-1",
		WorkerID:    workerID,
		CompanyID:   "c1",
		PeriodStart: "2024-06-01",
		PeriodEnd:   "2024-06-30",
		RequestedBy: "agent-1",
		Role:        "agent",
	}
}

func TestConsume_RetriesFailedMessageBeforeLaterOffsets(t *testing.T) {
	fastBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{{Offset: 0}, {Offset: 1}}}

	var handled []int64
	failures := 2
	consume(ctx, reader, zap.NewNop(), func(_ context.Context, msg kafkago.Message) error {
		handled = append(handled, msg.Offset)
		if msg.Offset == 0 && failures > 0 {
			failures--
			return errors.New("db timeout")
		}
		return nil
	})

	assert.Equal(t, []int64{0, 0, 0, 1}, handled)
	assert.Equal(t, []int64{0, 1}, reader.committed)
}

func TestConsume_CancelDuringRetryLeavesMessageUncommitted(t *testing.T) {
	fastBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{{Offset: 7}, {Offset: 8}}}

	attempts := 0
	consume(ctx, reader, zap.NewNop(), func(context.Context, kafkago.Message) error {
		attempts++
		if attempts == 3 {
			cancel()
		}
		return errors.New("db timeout")
	})

	assert.Equal(t, 3, attempts)
	assert.Empty(t, reader.committed)
	assert.Len(t, reader.queue, 1)
}

func TestConsume_FetchErrorsBackOff(t *testing.T) {
	fastBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, fetchErrs: 3, queue: []kafkago.Message{{Offset: 1}}}

	start := time.Now()
	consume(ctx, reader, zap.NewNop(), func(context.Context, kafkago.Message) error { return nil })

	assert.Equal(t, []int64{1}, reader.committed)
	assert.Equal(t, 5, reader.fetches)
	assert.GreaterOrEqual(t, time.Since(start), 1*time.Millisecond+2*time.Millisecond+4*time.Millisecond)
}

func TestNextBackoff(t *testing.T) {
	fastBackoff(t)
	assert.Equal(t, 2*time.Millisecond, nextBackoff(time.Millisecond))
	assert.Equal(t, 4*time.Millisecond, nextBackoff(3*time.Millisecond))
}

func TestConsumePayrollGenerateRequested(t *testing.T) {
	fastBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bad := generateEvent("w-bad-period")
	bad.PeriodEnd = "June"

	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
		message(t, 1, generateEvent("w-ok")),
		{Offset: 2, Value: []byte("{not json")},
		message(t, 3, generateEvent("w-forbidden")),
		message(t, 4, generateEvent("w-db-down")),
		message(t, 5, bad),
	}}

	var calls []string
	dbDown := true
	gen := &fakeGenerator{GeneratePayrollFn: func(ctx context.Context, actor domain.Actor, workerID string, start, end time.Time) (payroll.PayrollResponse, bool, error) {
		calls = append(calls, workerID)
		assert.Equal(t, domain.Actor{UserID: "agent-1", Role: domain.RoleAgent, CompanyID: "c1"}, actor)
		assert.Equal(t, "req-1", contextutil.GetRequestID(ctx))
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), end)

		switch workerID {
		case "w-forbidden":
			return payroll.PayrollResponse{}, false, apperror.ErrForbidden
		case "w-db-down":
			if dbDown {
				dbDown = false
				return payroll.PayrollResponse{}, false, errors.New("connection reset")
			}
		}
		return payroll.PayrollResponse{ID: "p1"}, true, nil
	}}

	ConsumePayrollGenerateRequested(ctx, reader, gen, zap.NewNop())

	assert.Equal(t, []string{"w-ok", "w-forbidden", "w-db-down", "w-db-down"}, calls)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, reader.committed)
}

func TestConsumeWorkerLifecycle(t *testing.T) {
	fastBackoff(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	occurred := time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC)
	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
		message(t, 1, events.WorkerLifecycleEvent{EventType: events.EventWorkerCreated, WorkerID: "w1", CompanyID: "c1", OccurredAt: occurred}),
		message(t, 2, events.WorkerLifecycleEvent{EventType: events.EventWorkerDeactivated, WorkerID: "w1", CompanyID: "c1"}),
		message(t, 3, events.WorkerLifecycleEvent{EventType: events.EventWorkerCreated, WorkerID: "w2", CompanyID: "c1"}),
	}}

	var years []int
	w2Failed := false
	balances := &fakeBalances{InitializeBalancesFn: func(_ context.Context, companyID, workerID string, year int) (int, error) {
		assert.Equal(t, "c1", companyID)
		years = append(years, year)
		if workerID == "w2" && !w2Failed {
			w2Failed = true
			return 0, errors.New("db down")
		}
		return 3, nil
	}}

	ConsumeWorkerLifecycle(ctx, reader, balances, zap.NewNop())

	require.Len(t, years, 3)
	assert.Equal(t, 2025, years[0])
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}

func TestHandleWorkerLifecycle_DefaultsToCurrentYear(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	msg := kafkago.Message{Value: []byte(`{"event_type":"worker.created","worker_id":"w1","company_id":"c1"}`)}

	var got int
	balances := &fakeBalances{InitializeBalancesFn: func(_ context.Context, _, _ string, year int) (int, error) {
		got = year
		return 0, nil
	}}

	require.NoError(t, handleWorkerLifecycle(context.Background(), msg, balances, now, zap.NewNop()))
	assert.Equal(t, 2026, got)
}
