package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/schedule-api/internal/dto"
	apierrors "github.com/yukikurage/schedule-api/internal/errors"
	"github.com/yukikurage/schedule-api/internal/models"
	"github.com/yukikurage/schedule-api/internal/services"
	"github.com/yukikurage/schedule-api/internal/validation"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func taskInput(req dto.TaskRequest) services.TaskInput {
	return services.TaskInput{
		Title:             req.Title,
		Description:       req.Description,
		Status:            req.Status,
		Date:              req.Date,
		AssignedAccountID: req.AssignedAccountID.Value,
		AssociatedEventID: req.AssociatedEventID.Value,
	}
}

// ListTasks returns tasks, optionally filtered by status and account_id
func (h *TaskHandler) ListTasks(c *gin.Context) {
	query := services.TaskQuery{Pagination: pagination(c)}

	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		query.Status = &s
	}
	if accountID := c.Query("account_id"); accountID != "" {
		id, err := strconv.ParseUint(accountID, 10, 64)
		if err != nil || id == 0 {
			fail(c, apierrors.BadRequest("account_id invalid"))
			return
		}
		query.AccountID = &id
	}

	tasks, total, err := h.taskService.List(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}

	respondList(c, dto.ToTaskDTOs(tasks), query.Pagination, total)
}

// CreateTask stores a new task after resolving its references
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := validation.BindBody(c, &req); err != nil {
		fail(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), taskInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// SelectData returns the account and event pick lists
func (h *TaskHandler) SelectData(c *gin.Context) {
	data, err := h.taskService.SelectorData(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSelectorDataDTO(data.Accounts, data.Events))
}

// ListTasksByEvent returns the tasks associated with an event
func (h *TaskHandler) ListTasksByEvent(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("eventId"), 10, 64)

	tasks, err := h.taskService.ListByEvent(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListTasksByAccount returns the tasks assigned to an account
func (h *TaskHandler) ListTasksByAccount(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("accountId"), 10, 64)

	tasks, err := h.taskService.ListByAccount(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrTaskNotFound)
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask replaces a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrTaskNotFound)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := validation.BindBody(c, &req); err != nil {
		fail(c, err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), id, taskInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id", services.ErrTaskNotFound)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	deleted(c, "task deleted", id)
}
