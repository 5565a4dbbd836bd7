package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rapsplay/console-rental/internal/sheet"
)

// EnquiryBook records enquiry rows. Satisfied by *sheet.Book.
type EnquiryBook interface {
	Append(e sheet.Enquiry) error
}

// EnquiryHandler writes website enquiry forms into the spreadsheet.
type EnquiryHandler struct {
	Book EnquiryBook
}

func NewEnquiryHandler(b EnquiryBook) *EnquiryHandler {
	return &EnquiryHandler{Book: b}
}

// Create appends one enquiry row to the workbook.
func (h *EnquiryHandler) Create(c echo.Context) error {
	var e sheet.Enquiry
	if err := c.Bind(&e); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	if strings.TrimSpace(e.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "email required"})
	}
	if err := h.Book.Append(e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}
	c.Logger().Infof("enquiry saved: %s", e.Email)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
