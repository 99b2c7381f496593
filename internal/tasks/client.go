package tasks

import (
	"steg-backend/config"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

var client *asynq.Client

// InitClient wires the shared asynq client against the same Redis the
// session store uses.
func InitClient(redisAddr, redisPassword string) {
	client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
	})
	config.Logger.Info("Task queue client initialized", zap.String("redisAddr", redisAddr))
}

// CloseClient releases the queue connection at shutdown.
func CloseClient() {
	if client != nil {
		client.Close()
	}
}

// EnqueueEmail queues one email for the worker. Falls through with a log
// line when the client was never initialized, so callers stay fire-and-forget.
func EnqueueEmail(to, subject, body, attachmentPath string) {
	if client == nil {
		config.Logger.Warn("Email not queued: task client not initialized",
			zap.String("to", to),
			zap.String("subject", subject))
		return
	}

	task, err := NewEmailDeliveryTask(to, subject, body, attachmentPath)
	if err != nil {
		config.Logger.Error("Failed to build email task", zap.Error(err))
		return
	}

	info, err := client.Enqueue(task)
	if err != nil {
		config.Logger.Error("Failed to enqueue email task",
			zap.Error(err),
			zap.String("to", to))
		return
	}

	config.Logger.Info("Email task enqueued",
		zap.String("taskID", info.ID),
		zap.String("queue", info.Queue),
		zap.String("to", to))
}
