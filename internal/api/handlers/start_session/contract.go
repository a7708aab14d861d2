package start_session

import (
	"context"

	"github.com/bookline/BL-BookingEngine/internal/workflow"
)

type WorkflowManager interface {
	Start(ctx context.Context, userID int64) (*workflow.Session, error)
	StartReschedule(ctx context.Context, userID, reservationID int64) (*workflow.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
