package worker

import (
	"context"
	"encoding/json"
	"time"

	"kingscogent/services/mailer"
	"kingscogent/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// EmailWorker consumes email receipt tasks from the queue and delivers them
// over SMTP. It runs in the same process as the webhook receiver but outside
// any request lifecycle.
type EmailWorker struct {
	server *asynq.Server
	mailer mailer.Mailer
	logger *zap.Logger
}

// NewEmailWorker builds the asynq server for the receipt queue.
func NewEmailWorker(redisOpts asynq.RedisClientOpt, m mailer.Mailer, logger *zap.Logger) *EmailWorker {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	return &EmailWorker{server: srv, mailer: m, logger: logger}
}

// Start runs the worker in the background, retrying startup a few times
// before giving up.
func (w *EmailWorker) Start() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailReceipt, w.handleEmailReceipt)

	go func() {
		w.logger.Info("Starting email worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.server.Run(mux)
			if err == nil {
				return
			}
			w.logger.Error("Email worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Fatal("Email worker exhausted startup attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown stops the worker, waiting for in-flight tasks.
func (w *EmailWorker) Shutdown() {
	w.server.Shutdown()
}

func (w *EmailWorker) handleEmailReceipt(ctx context.Context, task *asynq.Task) error {
	var p tasks.EmailReceiptPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.logger.Error("Invalid email receipt payload", zap.Error(err))
		return err
	}

	if err := w.mailer.SendReceipt(p); err != nil {
		// Single attempt only; the failure is recorded and the task dropped.
		w.logger.Error("Failed to deliver email receipt",
			zap.String("to", p.To), zap.String("txRef", p.TxRef), zap.Error(err))
		return err
	}

	w.logger.Info("Email receipt delivered", zap.String("to", p.To), zap.String("txRef", p.TxRef))
	return nil
}
