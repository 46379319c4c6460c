package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mailforge/template-service/internal/api/metrics"
	"github.com/mailforge/template-service/internal/core/ports"
)

// TemplateHandler handles HTTP requests for template operations. Every
// handler resolves the caller from the context and passes it as the owner;
// the payload never carries an owner.
type TemplateHandler struct {
	service ports.TemplateService
}

func NewTemplateHandler(service ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// Create handles POST /template.
//
// @Summary      Create a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      templateRequest  true  "Template content"
// @Success      200   {object}  createTemplateResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /template [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), user.ID, req.Name, req.Subject, req.Body)
	if err != nil {
		return err
	}

	metrics.TemplateOpsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, createTemplateResponse{
		TemplateID: created.ID,
		Message:    "template created",
	})
}

// List handles GET /template.
//
// @Summary      List the caller's templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTemplatesResponse
// @Failure      401  {object}  map[string]string
// @Router       /template [get]
func (h *TemplateHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	templates, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	items := make([]templateItem, 0, len(templates))
	for _, t := range templates {
		items = append(items, toTemplateItem(t))
	}

	metrics.TemplateOpsTotal.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, listTemplatesResponse{Templates: items})
}

// Get handles GET /template/:id.
//
// @Summary      Get one of the caller's templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template id"
// @Success      200  {object}  getTemplateResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /template/{id} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	tpl, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.TemplateOpsTotal.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, getTemplateResponse{Template: toTemplateItem(*tpl)})
}

// Update handles PUT /template/:id.
//
// @Summary      Replace a template's content
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Template id"
// @Param        body  body      templateRequest  true  "New template content"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /template/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), req.Name, req.Subject, req.Body); err != nil {
		return err
	}

	metrics.TemplateOpsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "template updated successfully"})
}

// Delete handles DELETE /template/:id.
//
// @Summary      Delete a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /template/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}

	metrics.TemplateOpsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "template deleted successfully"})
}
