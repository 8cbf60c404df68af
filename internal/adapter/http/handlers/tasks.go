package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tasktime/internal/adapter/http/dto"
	"tasktime/internal/adapter/http/mapper"
	"tasktime/internal/adapter/http/middleware"
	"tasktime/internal/adapter/http/validation"
	"tasktime/internal/core/domain"
	"tasktime/internal/core/ports"
	"tasktime/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService, now: time.Now}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingAccount, lang),
		)
		return
	}

	rows, err := h.taskService.List(c.Request.Context(), session, c.Query("client"), c.Query("search"))
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Uint64("account_id", session.AccountID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(rows, h.now()))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	h.saveTask(c, "", http.StatusCreated)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	publicID := strings.TrimSpace(c.Param("id"))
	if publicID == "" {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, middleware.GetLang(c)),
		)
		return
	}
	h.saveTask(c, publicID, http.StatusOK)
}

func (h *TaskHandler) saveTask(c *gin.Context, publicID string, successStatus int) {
	lang := middleware.GetLang(c)
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingAccount, lang),
		)
		return
	}

	var req dto.SaveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	payload, err := validation.BuildSavePayload(req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTimeLog, lang),
		)
		return
	}

	task, err := h.taskService.Save(c.Request.Context(), session, publicID, payload, nil)
	if err != nil {
		status, msgKey := saveErrorResponse(err)
		if status >= http.StatusInternalServerError {
			zap.L().Error("failed to save task", zap.String("public_id", publicID), zap.Error(err))
		}
		c.JSON(status, apierrors.CreateError(status, msgKey, lang))
		return
	}

	c.JSON(successStatus, mapper.ToTaskDetail(task, h.now()))
}

func saveErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, apierrors.MsgTaskNotFound
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusUnprocessableEntity, apierrors.MsgInvalidClientReference
	case errors.Is(err, domain.ErrMalformedInput):
		return http.StatusBadRequest, apierrors.MsgInvalidTimeLog
	default:
		return http.StatusInternalServerError, apierrors.MsgFailSaveTask
	}
}
