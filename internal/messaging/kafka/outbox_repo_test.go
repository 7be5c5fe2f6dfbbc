package kafka_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"go-payroll/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	ev, err := kafka.NewOutboxEvent("rid-1", "payroll", "agg-1", "payroll.generated", "topic.v1", map[string]string{"a": "b"})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "rid-1", ev.RequestID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.NoError(t, kafka.ValidateOutboxEvent(ev))

	var body map[string]string
	require.NoError(t, json.Unmarshal(ev.Payload, &body))
	assert.Equal(t, "b", body["a"])
}

func TestOutboxRepository_CreateUsesTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ev, err := kafka.NewOutboxEvent("rid", "worker", "agg", "worker.created", "worker.lifecycle.v1", struct{}{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(ev.ID, ev.RequestID, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Topic, ev.Payload, ev.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	require.NoError(t, repo.Create(context.Background(), ev))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "e1", AggregateID: "a1", Topic: "t", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending}

	tests := []struct {
		name   string
		mutate func(e *kafka.OutboxEvent)
		errMsg string
	}{
		{"valid", func(*kafka.OutboxEvent) {}, ""},
		{"missing id", func(e *kafka.OutboxEvent) { e.ID = "" }, "id is required"},
		{"missing aggregate", func(e *kafka.OutboxEvent) { e.AggregateID = "" }, "aggregate id"},
		{"missing topic", func(e *kafka.OutboxEvent) { e.Topic = "" }, "topic"},
		{"empty payload", func(e *kafka.OutboxEvent) { e.Payload = nil }, "payload is required"},
		{"payload not json", func(e *kafka.OutboxEvent) { e.Payload = []byte("{") }, "valid json"},
		{"already sent", func(e *kafka.OutboxEvent) { e.Status = kafka.OutboxStatusSent }, "must be pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := valid
			tt.mutate(&ev)
			err := kafka.ValidateOutboxEvent(ev)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = kafka.NewOutboxRepository(db).Create(context.Background(), kafka.OutboxEvent{ID: "x", AggregateID: "a", Topic: "t", Status: kafka.OutboxStatusPending})
	assert.ErrorContains(t, err, "payload")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ClaimPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	leaseUntil := time.Now().Add(time.Minute)
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("e1", "rid", "payroll", "p1", "payroll.generated", "payroll.record.generated.v1", []byte(`{}`), kafka.OutboxStatusFailed, 2, leaseUntil)

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50, float64(60)).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ClaimPending(context.Background(), 50, time.Minute)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "rid", events[0].RequestID)
	assert.Equal(t, "p1", events[0].AggregateID)
	assert.Equal(t, 2, events[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("retry_count = retry_count + 1")).
		WithArgs("e1", kafka.OutboxStatusFailed, kafka.OutboxStatusDead, kafka.MaxOutboxAttempts, "broker unavailable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "e1", "broker unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("processed_at = NOW()")).
		WithArgs("e1", kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kafka.NewOutboxRepository(db).MarkSent(context.Background(), "e1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
