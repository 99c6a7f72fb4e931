package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/pagination"
	"github.com/maxviazov/subnets-service/internal/service"
	"github.com/maxviazov/subnets-service/pkg/response"
)

type SubnetHandler struct {
	svc   service.SubnetService
	links LinkBuilder
}

func NewSubnetHandler(svc service.SubnetService, links LinkBuilder) *SubnetHandler {
	return &SubnetHandler{svc: svc, links: links}
}

func (h *SubnetHandler) Register(r *gin.RouterGroup) {
	g := r.Group(SubnetsPath)
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:subnet_id", h.getByID)
		g.DELETE("/:subnet_id", h.delete)
	}
}

// optionalQuery treats a missing and an empty parameter alike.
func optionalQuery(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func parseListRequest(c *gin.Context) (pagination.Request, error) {
	req := pagination.Request{
		Name:     optionalQuery(c, "name"),
		PageLink: optionalQuery(c, "pageLink"),
	}
	if raw := optionalQuery(c, "pageSize"); raw != nil {
		size, err := strconv.Atoi(*raw)
		if err != nil {
			return pagination.Request{}, service.NewInvalidInputError([]service.FieldError{
				{Field: "pageSize", Message: "must be an integer"},
			})
		}
		req.PageSize = &size
	}
	return req, nil
}

func (h *SubnetHandler) list(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListSubnets(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	for i := range res.Items {
		h.decorateSubnet(c, &res.Items[i])
	}
	res.NextPageLink = PageLink(SubnetsPath, res.NextPageLink)
	res.PreviousPageLink = PageLink(SubnetsPath, res.PreviousPageLink)
	response.WriteData(c, http.StatusOK, res)
}

func (h *SubnetHandler) create(c *gin.Context) {
	var spec model.SubnetCreateSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		response.WriteError(c, fmt.Errorf("%w: %v", service.ErrInvalidJSON, err))
		return
	}
	task, err := h.svc.CreateSubnet(c.Request.Context(), spec)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	h.writeTask(c, task)
}

func (h *SubnetHandler) getByID(c *gin.Context) {
	subnet, err := h.svc.GetSubnet(c.Request.Context(), c.Param("subnet_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	h.decorateSubnet(c, &subnet)
	response.WriteData(c, http.StatusOK, subnet)
}

func (h *SubnetHandler) delete(c *gin.Context) {
	task, err := h.svc.DeleteSubnet(c.Request.Context(), c.Param("subnet_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	h.writeTask(c, task)
}

func (h *SubnetHandler) decorateSubnet(c *gin.Context, s *model.Subnet) {
	s.SelfLink = h.links.Resource(c, SubnetsPath, s.ID)
}

// writeTask answers 201 with the task and points Location at its status URI.
func (h *SubnetHandler) writeTask(c *gin.Context, task model.Task) {
	decorateTask(c, h.links, &task)
	c.Header("Location", task.SelfLink)
	response.WriteData(c, http.StatusCreated, task)
}
