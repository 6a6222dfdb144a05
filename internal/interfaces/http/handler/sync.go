package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncapp "github.com/ovnstore/backend/internal/application/sync"
	"github.com/ovnstore/backend/internal/domain/shared"
)

// SyncHandler exposes the document store synchronization admin endpoints
type SyncHandler struct {
	BaseHandler
	resync *syncapp.ResyncService
	logger *zap.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(resync *syncapp.ResyncService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{resync: resync, logger: logger}
}

// RegisterRoutes registers sync routes on the API group
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sync")
	group.GET("/status", h.Status)
	group.POST("/resync", h.Resync)
}

// Status reports whether a resync is running and the summary of the last run
func (h *SyncHandler) Status(c *gin.Context) {
	h.Success(c, h.resync.Status())
}

// Resync triggers a full rebuild of the document store. By default the
// rebuild runs in the background and the call returns immediately; pass
// wait=true to block until it finishes and receive the run summary.
func (h *SyncHandler) Resync(c *gin.Context) {
	if c.Query("wait") == "true" {
		summary, err := h.resync.Run(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, summary)
		return
	}

	if h.resync.Status().State == syncapp.ResyncStateRunning {
		h.HandleDomainError(c, shared.ErrResyncInProgress)
		return
	}

	// Detached from the request context so a client disconnect does not
	// abort the rebuild.
	go func() {
		summary, err := h.resync.Run(context.Background())
		if err != nil {
			h.logger.Error("Background resync failed", zap.Error(err))
			return
		}
		h.logger.Info("Background resync finished",
			zap.String("status", summary.Status),
			zap.Int64("synced", summary.TotalSynced()),
			zap.Int("errors", len(summary.Errors)))
	}()

	h.Accepted(c, gin.H{"message": "Resync started"})
}
