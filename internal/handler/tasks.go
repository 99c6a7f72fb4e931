package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/service"
	"github.com/maxviazov/subnets-service/pkg/response"
)

type TaskHandler struct {
	svc   service.TaskService
	links LinkBuilder
}

func NewTaskHandler(svc service.TaskService, links LinkBuilder) *TaskHandler {
	return &TaskHandler{svc: svc, links: links}
}

func (h *TaskHandler) Register(r *gin.RouterGroup) {
	r.GET(TasksPath+"/:task_id", h.getByID)
}

func (h *TaskHandler) getByID(c *gin.Context) {
	task, err := h.svc.GetTask(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	decorateTask(c, h.links, &task)
	response.WriteData(c, http.StatusOK, task)
}

func decorateTask(c *gin.Context, links LinkBuilder, t *model.Task) {
	t.SelfLink = links.Resource(c, TasksPath, t.ID)
	if t.Entity.Kind == model.KindSubnet {
		t.Entity.SelfLink = links.Resource(c, SubnetsPath, t.Entity.ID)
	}
}
