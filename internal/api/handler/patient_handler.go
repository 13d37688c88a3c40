package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// PatientHandler serves the caller's self-service patient record.
type PatientHandler struct {
	patients ports.PatientService
}

func NewPatientHandler(patients ports.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

type patientRequest struct {
	FirstName        *string                  `json:"first_name"`
	LastName         *string                  `json:"last_name"`
	Bio              *domain.PatientBio       `json:"bio"`
	EmergencyContact *domain.EmergencyContact `json:"emergency_contact"`
}

func (r *patientRequest) patch() ports.PatientPatch {
	return ports.PatientPatch{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Bio:              r.Bio,
		EmergencyContact: r.EmergencyContact,
	}
}

// Upsert creates or replaces the caller's record.
//
// @Summary      Create or update the caller's patient record
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patientRequest  true  "Record fields"
// @Success      200   {object}  domain.PatientRecord
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /patients/me [put]
func (h *PatientHandler) Upsert(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	record, err := h.patients.CreateOrUpdate(c.Request().Context(), claims.UID, req.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// Get returns the caller's record.
//
// @Summary      Get the caller's patient record
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PatientRecord
// @Failure      404  {object}  map[string]string
// @Router       /patients/me [get]
func (h *PatientHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	record, err := h.patients.Get(c.Request().Context(), claims.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// Patch applies field-presence updates to the caller's record.
//
// @Summary      Patch the caller's patient record
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patientRequest  true  "Fields to update"
// @Success      200   {object}  domain.PatientRecord
// @Failure      404   {object}  map[string]string
// @Router       /patients/me [patch]
func (h *PatientHandler) Patch(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	record, err := h.patients.Patch(c.Request().Context(), claims.UID, req.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}
