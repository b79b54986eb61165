package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// HumaMiddleware attaches a fresh LogData to every request and emits one
// structured completion entry per operation, mirroring what LoggingWrapper
// does for plain net/http handlers.
func HumaMiddleware(logger *logrus.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(logger)
		ctx = huma.WithValue(ctx, logDataContextKey{}, logData)

		endTimer := logData.AddTiming("duration")
		next(ctx)
		endTimer()

		logData.Log().WithFields(logrus.Fields{
			"operation": ctx.Operation().OperationID,
			"status":    ctx.Status(),
		}).Info("Handler.Complete")
	}
}
