package handler

import (
	"net/http"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/collegeabroad/backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// InquiryHandler accepts public contact-form submissions.
type InquiryHandler struct {
	inquiries *service.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(inquiries *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

// Submit godoc
// POST /api/inquiry
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req model.InquiryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.inquiries.Submit(c.Request.Context(), &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrMailDelivery)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
