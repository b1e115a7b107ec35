package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"bookreview-backend/internal/domains/book/service"
	"bookreview-backend/internal/infrastructure/queue"
)

// ProcessCoverHandler consumes cover:process tasks on the worker.
type ProcessCoverHandler struct {
	service service.ServiceInterface
}

func NewProcessCoverHandler(service service.ServiceInterface) *ProcessCoverHandler {
	return &ProcessCoverHandler{service: service}
}

func (h *ProcessCoverHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ProcessCoverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", queue.TaskProcessCover, err)
	}

	bookID, err := uuid.Parse(payload.BookID)
	if err != nil {
		return fmt.Errorf("invalid book id %q: %w", payload.BookID, err)
	}

	return h.service.ProcessCover(ctx, bookID)
}
