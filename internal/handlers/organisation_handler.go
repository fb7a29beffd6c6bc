package handlers

import (
	"context"
	"net/http"

	"escape-portal/internal/middleware"
	"escape-portal/internal/service"

	"github.com/gin-gonic/gin"
)

type OrganisationHandler struct {
	Service *service.OrganisationService
}

func NewOrganisationHandler(s *service.OrganisationService) *OrganisationHandler {
	return &OrganisationHandler{Service: s}
}

func (h *OrganisationHandler) CreateOrganisation(c *gin.Context) {
	var in service.ProvisionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Provision(context.Background(), c.GetString(middleware.ContextRole), in)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to create organisation"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *OrganisationHandler) ListOrganisations(c *gin.Context) {
	orgs, err := h.Service.ListOrganisations(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orgs)
}

func (h *OrganisationHandler) GetOrganisation(c *gin.Context) {
	org, err := h.Service.GetOrganisation(context.Background(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organisation not found"})
		return
	}
	c.JSON(http.StatusOK, org)
}

type reassignAdminRequest struct {
	AdminUserID string `json:"admin_user_id" binding:"required"`
}

func (h *OrganisationHandler) ReassignAdmin(c *gin.Context) {
	var req reassignAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.Service.ReassignAdmin(context.Background(), c.GetString(middleware.ContextRole), c.Param("id"), req.AdminUserID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
