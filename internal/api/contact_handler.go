package api

import (
	"net/http"

	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/service"
	"github.com/blog-cms-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ContactHandler handles contact inquiry endpoints
type ContactHandler struct {
	contacts  service.ContactService
	validator *validation.Validator
	log       zerolog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		contacts:  services.Contact,
		validator: v,
		log:       log.With().Str("handler", "contact").Logger(),
	}
}

// Create godoc
// @Summary Submit a contact inquiry
// @Description The inquiry is stored before any mail is attempted; mail failures never fail the request.
// @Tags contacts
// @Accept json
// @Produce json
// @Param body body models.ContactCreateInput true "inquiry"
// @Success 201 {object} models.Contact
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var in models.ContactCreateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}
	contact, err := h.contacts.Create(c.Request.Context(), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// List godoc
// @Summary List contact inquiries
// @Tags admin-contacts
// @Produce json
// @Security SessionToken
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size (1-100)" default(10)
// @Param search query string false "company, name or email contains"
// @Success 200 {object} models.Page[models.Contact]
// @Router /api/admin/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	page, err := h.contacts.List(c.Request.Context(), listParams(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a contact inquiry
// @Tags admin-contacts
// @Produce json
// @Security SessionToken
// @Param id path string true "contact id"
// @Success 200 {object} models.Contact
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Update godoc
// @Summary Edit a contact inquiry
// @Tags admin-contacts
// @Accept json
// @Produce json
// @Security SessionToken
// @Param id path string true "contact id"
// @Param body body models.ContactUpdateInput true "fields to change"
// @Success 200 {object} models.Contact
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/contacts/{id} [put]
// @Router /api/admin/contacts/{id} [patch]
func (h *ContactHandler) Update(c *gin.Context) {
	var in models.ContactUpdateInput
	if !bind(c, h.validator, h.log, &in) {
		return
	}
	contact, err := h.contacts.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Delete godoc
// @Summary Soft-delete a contact inquiry
// @Tags admin-contacts
// @Produce json
// @Security SessionToken
// @Param id path string true "contact id"
// @Success 200 {object} models.DeleteResult
// @Router /api/admin/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	deleteOne(c, h.log, h.contacts.Delete)
}

// BulkDelete godoc
// @Summary Soft-delete several contact inquiries
// @Tags admin-contacts
// @Accept json
// @Produce json
// @Security SessionToken
// @Param body body models.BulkDeleteInput true "ids"
// @Success 200 {object} models.DeleteResult
// @Router /api/admin/contacts [delete]
func (h *ContactHandler) BulkDelete(c *gin.Context) {
	deleteMany(c, h.validator, h.log, h.contacts.Delete)
}
