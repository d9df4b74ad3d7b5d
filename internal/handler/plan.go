package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/audit"
	"github.com/harvesthub/agrismart-backend/internal/metrics"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"github.com/harvesthub/agrismart-backend/pkg/model"
	"go.uber.org/zap"
)

// PlanHandler implements crop plan and farm task endpoints
type PlanHandler struct {
	profiles *service.ProfileService
	plans    *service.PlanService
	tasks    *service.TaskService
	audit    *audit.Logger
	logger   *zap.Logger
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(profiles *service.ProfileService, plans *service.PlanService, tasks *service.TaskService, auditLogger *audit.Logger, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		profiles: profiles,
		plans:    plans,
		tasks:    tasks,
		audit:    auditLogger,
		logger:   logger,
	}
}

// activeCrop resolves the farmer's selected crop, required by every plan endpoint
func (h *PlanHandler) activeCrop(c *gin.Context) (string, bool) {
	userID := currentUserID(c)

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get profile")
		return "", false
	}
	if profile.ActiveCrop == nil || *profile.ActiveCrop == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "NO_ACTIVE_CROP",
			Message: "Select a crop before viewing its plan",
		})
		return "", false
	}

	return *profile.ActiveCrop, true
}

// GetStages returns the plan timeline for the active crop
func (h *PlanHandler) GetStages(c *gin.Context) {
	crop, ok := h.activeCrop(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.plans.Stages(crop, time.Now()))
}

// GetTasks returns the task list for the active crop, generating it on first view.
// The optional view query parameter filters to "today" or "history".
func (h *PlanHandler) GetTasks(c *gin.Context) {
	userID := currentUserID(c)

	crop, ok := h.activeCrop(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.LoadOrGenerate(c.Request.Context(), userID, crop, time.Now())
	if err != nil {
		respondServiceError(c, err, "Failed to load tasks")
		return
	}

	switch c.Query("view") {
	case "today":
		tasks = service.TodayView(tasks)
	case "history":
		tasks = service.HistoryView(tasks)
	case "":
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "view must be today or history",
		})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

type updateTaskRequest struct {
	Status model.TaskStatus `json:"status" binding:"required"`
}

// UpdateTask moves one task to a new lifecycle status
func (h *PlanHandler) UpdateTask(c *gin.Context) {
	userID := currentUserID(c)
	taskID := c.Param("id")

	crop, ok := h.activeCrop(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	tasks, err := h.tasks.UpdateStatus(c.Request.Context(), userID, crop, taskID, req.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update task")
		return
	}

	metrics.TaskTransitions.WithLabelValues(string(req.Status)).Inc()

	if err := h.audit.LogUpdate(c.Request.Context(), userID, audit.ResourceFarmTask,
		taskID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		h.logger.Warn("failed to write audit log", zap.Error(err))
	}

	h.logger.Info("task updated",
		zap.String("user_id", userID),
		zap.String("task_id", taskID),
		zap.String("status", string(req.Status)),
	)

	c.JSON(http.StatusOK, tasks)
}
