package confirm_session

import (
	"context"

	"github.com/bookline/BL-BookingEngine/internal/workflow"
)

type WorkflowManager interface {
	Get(ctx context.Context, sessionID string) (*workflow.Session, error)
	Confirm(ctx context.Context, sessionID string) (*workflow.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
