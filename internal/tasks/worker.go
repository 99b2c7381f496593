package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"steg-backend/config"
	"steg-backend/db/models"
	"steg-backend/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmailWorker processes queued email tasks and records each attempt in the
// email log table.
type EmailWorker struct {
	DB *gorm.DB
}

func (w *EmailWorker) HandleEmailDeliveryTask(ctx context.Context, t *asynq.Task) error {
	var p EmailDeliveryPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal email payload: %v: %w", err, asynq.SkipRetry)
	}

	logEntry := models.EmailLog{
		ID:        uuid.New(),
		Recipient: p.To,
		Subject:   p.Subject,
		Body:      p.Body,
		Status:    models.EmailPending,
	}
	if w.DB != nil {
		w.DB.Create(&logEntry)
	}

	if err := utils.SendEmail(p.To, p.Body, p.Subject, p.AttachmentPath); err != nil {
		if w.DB != nil {
			msg := err.Error()
			w.DB.Model(&logEntry).Updates(map[string]interface{}{
				"status":     models.EmailFailed,
				"last_error": &msg,
			})
		}
		return fmt.Errorf("send email to %s: %w", p.To, err)
	}

	if w.DB != nil {
		w.DB.Model(&logEntry).Update("status", models.EmailSent)
	}

	config.Logger.Info("Email delivered",
		zap.String("to", p.To),
		zap.String("subject", p.Subject))
	return nil
}

// RunWorker blocks, draining the email queue. Meant to run in its own
// goroutine from main.
func RunWorker(redisAddr, redisPassword string, db *gorm.DB) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				QueueEmails:  3,
				QueueDefault: 1,
			},
		},
	)

	worker := &EmailWorker{DB: db}
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailDelivery, worker.HandleEmailDeliveryTask)

	if err := srv.Run(mux); err != nil {
		config.Logger.Error("Task worker stopped", zap.Error(err))
	}
}
