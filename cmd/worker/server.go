package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"bookreview-backend/internal/infrastructure/queue"
	"bookreview-backend/pkg/container"
)

// asynqServer wraps asynq.Server so main can shut it down with a timeout.
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer registers task handlers and starts consuming.
func setupAsynqServer(c *container.Container) *asynqServer {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskProcessCover, c.ProcessCoverHandler.ProcessTask)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			// In-flight tasks get this long on shutdown before being
			// requeued for the next worker.
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] ❌ Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown stops the server; the wait for in-flight tasks is bounded by
// the ShutdownTimeout configured above.
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Println("[Worker] ✓ Gracefully stopped")
}
