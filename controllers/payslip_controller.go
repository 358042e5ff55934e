package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"soundwalk/applications/payslip"
	"soundwalk/logger"

	"github.com/labstack/echo/v4"
)

type payslipGenerator interface {
	Monthly(ctx context.Context, req payslip.MonthlyRequest) (*payslip.Document, error)
	Yearly(ctx context.Context, req payslip.YearlyRequest) (*payslip.Document, error)
}

type PayslipController struct {
	payslips payslipGenerator
}

func NewPayslipController(g payslipGenerator) *PayslipController {
	return &PayslipController{payslips: g}
}

func (h *PayslipController) MonthlyPayslipController(c echo.Context) error {
	req := payslip.MonthlyRequest{}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid payslip request")
	}
	doc, err := h.payslips.Monthly(c.Request().Context(), req)
	return sendPayslip(c, doc, err)
}

func (h *PayslipController) YearlyPayslipController(c echo.Context) error {
	req := payslip.YearlyRequest{}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid payslip request")
	}
	doc, err := h.payslips.Yearly(c.Request().Context(), req)
	return sendPayslip(c, doc, err)
}

func sendPayslip(c echo.Context, doc *payslip.Document, err error) error {
	switch {
	case errors.Is(err, payslip.ErrUnknownMember), errors.Is(err, payslip.ErrInvalidPeriod):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, payslip.ErrNoGigs):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case err != nil:
		logger.Log.Error(fmt.Sprintf("[payslip] Generation failed: %v", err))
		return errorJSON(c, http.StatusInternalServerError, "Failed to generate payslip")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, "application/pdf", doc.Content)
}
