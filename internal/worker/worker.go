// Package worker runs background jobs alongside the HTTP server.
package worker

import (
	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/service"
)

// StartNotificationWorker subscribes the audit trail to the dispatcher.
func StartNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker started")
	}
}
