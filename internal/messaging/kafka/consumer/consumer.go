package consumer

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-payroll/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// errSkip marks a message that can never succeed. It is committed so the
// group moves past it.
var errSkip = errors.New("skip message")

// Retry delays for transient failures. Variables so tests can shrink them.
var (
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 30 * time.Second
)

// consume fetches until ctx is cancelled. A message is committed when handle
// succeeds or reports errSkip. Any other error retries the same message with
// exponential backoff, because committing a later offset of the partition
// would drop it for good.
func consume(ctx context.Context, reader MessageReader, log *zap.Logger, handle func(context.Context, kafkago.Message) error) {
	log.Info("consumer started")
	defer log.Info("consumer stopped")

	fetchBackoff := initialBackoff
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("fetch message failed", zap.Duration("retry_in", fetchBackoff), zap.Error(err))
			if !wait(ctx, fetchBackoff) {
				return
			}
			fetchBackoff = nextBackoff(fetchBackoff)
			continue
		}
		fetchBackoff = initialBackoff

		if !handleUntilDone(ctx, msg, log, handle) {
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// handleUntilDone reports false when ctx was cancelled before msg settled.
func handleUntilDone(ctx context.Context, msg kafkago.Message, log *zap.Logger, handle func(context.Context, kafkago.Message) error) bool {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := handle(ctx, msg)
		if err == nil || errors.Is(err, errSkip) {
			return true
		}

		log.Error("handle message failed",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)
		if !wait(ctx, backoff) {
			return false
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d *= 2; d > maxBackoff {
		return maxBackoff
	}
	return d
}

func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// permanent reports whether err is a client-side AppError that a retry
// would hit again.
func permanent(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus >= http.StatusBadRequest && appErr.HTTPStatus < http.StatusInternalServerError
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
