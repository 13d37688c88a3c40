package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/api/metrics"
	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// DepartmentHandler covers department CRUD, roster management, and case
// number minting.
type DepartmentHandler struct {
	departments ports.DepartmentService
}

func NewDepartmentHandler(departments ports.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

type createDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

type updateDepartmentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Description *string `json:"description"`
}

type addMemberRequest struct {
	UID  string `json:"uid" validate:"required"`
	Role string `json:"role" validate:"required,oneof=admin staff"`
}

type updateMemberRequest struct {
	Role string `json:"role" validate:"required,oneof=admin staff"`
}

type caseNumberResponse struct {
	CaseNumber string `json:"case_number"`
}

func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}

// Create registers a new department.
//
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDepartmentRequest  true  "Department details"
// @Success      201   {object}  domain.Department
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /departments [post]
func (h *DepartmentHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dept, err := h.departments.Create(c.Request().Context(), claims, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dept)
}

// Get returns one department.
//
// @Summary      Get a department
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department id"
// @Success      200  {object}  domain.Department
// @Failure      404  {object}  map[string]string
// @Router       /departments/{id} [get]
func (h *DepartmentHandler) Get(c echo.Context) error {
	dept, err := h.departments.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dept)
}

// List returns a page of departments.
//
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  ports.DepartmentPage
// @Router       /departments [get]
func (h *DepartmentHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.departments.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Update patches a department's name or description.
//
// @Summary      Update a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Department id"
// @Param        body  body      updateDepartmentRequest  true  "Fields to update"
// @Success      200   {object}  domain.Department
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /departments/{id} [patch]
func (h *DepartmentHandler) Update(c echo.Context) error {
	var req updateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dept, err := h.departments.Update(c.Request().Context(), c.Param("id"), ports.DepartmentPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dept)
}

// Delete removes a department.
//
// @Summary      Delete a department
// @Tags         departments
// @Security     BearerAuth
// @Param        id  path  string  true  "Department id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /departments/{id} [delete]
func (h *DepartmentHandler) Delete(c echo.Context) error {
	if err := h.departments.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddMember adds an identity to the department roster.
//
// @Summary      Add a department member
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Department id"
// @Param        body  body      addMemberRequest  true  "Member details"
// @Success      201   {object}  domain.DepartmentMember
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /departments/{id}/members [post]
func (h *DepartmentHandler) AddMember(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.departments.AddMember(c.Request().Context(), claims, c.Param("id"), req.UID, domain.MemberRole(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, member)
}

// UpdateMemberRole changes a member's department role.
//
// @Summary      Update a member's department role
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Department id"
// @Param        uid   path      string               true  "Member uid"
// @Param        body  body      updateMemberRequest  true  "New role"
// @Success      200   {object}  domain.DepartmentMember
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /departments/{id}/members/{uid} [patch]
func (h *DepartmentHandler) UpdateMemberRole(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.departments.UpdateMemberRole(c.Request().Context(), claims, c.Param("id"), c.Param("uid"), domain.MemberRole(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// RemoveMember removes an identity from the department roster.
//
// @Summary      Remove a department member
// @Tags         departments
// @Security     BearerAuth
// @Param        id   path  string  true  "Department id"
// @Param        uid  path  string  true  "Member uid"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /departments/{id}/members/{uid} [delete]
func (h *DepartmentHandler) RemoveMember(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.departments.RemoveMember(c.Request().Context(), claims, c.Param("id"), c.Param("uid")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMembers returns a page of the department roster.
//
// @Summary      List department members
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Department id"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  ports.MemberPage
// @Failure      404    {object}  map[string]string
// @Router       /departments/{id}/members [get]
func (h *DepartmentHandler) ListMembers(c echo.Context) error {
	page, limit := pageParams(c)
	result, err := h.departments.ListMembers(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// NextCaseNumber mints the department's next case identifier.
//
// @Summary      Mint the next case number
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Department id"
// @Success      200  {object}  caseNumberResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /departments/{id}/case-number [post]
func (h *DepartmentHandler) NextCaseNumber(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	number, err := h.departments.NextCaseNumber(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CaseNumbersMintedTotal.Inc()
	return c.JSON(http.StatusOK, caseNumberResponse{CaseNumber: number})
}
