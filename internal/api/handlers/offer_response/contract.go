package offer_response

import (
	"context"

	"github.com/bookline/BL-BookingEngine/internal/workflow"
)

type WorkflowManager interface {
	Get(ctx context.Context, sessionID string) (*workflow.Session, error)
	RespondToOffer(ctx context.Context, sessionID string, accept bool) (*workflow.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
