package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/collegeabroad/backend/internal/service"
	"github.com/collegeabroad/backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles staff (admin and superadmin) account management.
// The route group fixes which role a handler instance manages.
type AccountHandler struct {
	accounts *service.AccountService
	role     model.Role
}

// NewAccountHandler creates an AccountHandler scoped to one staff role.
func NewAccountHandler(accounts *service.AccountService, role model.Role) *AccountHandler {
	return &AccountHandler{accounts: accounts, role: role}
}

// Register godoc
// POST /api/{admin|superadmin}/register (superadmin)
func (h *AccountHandler) Register(c *gin.Context) {
	var req model.CreateAccountRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	p, err := h.accounts.Create(c.Request.Context(), h.role, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateName):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": p})
}

// List godoc
// GET /api/{admin|superadmin}/ (staff)
func (h *AccountHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	accounts, pagination, err := h.accounts.List(c.Request.Context(), h.role, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": accounts}, pagination)
}

// GetByID godoc
// GET /api/{admin|superadmin}/:id (staff)
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	p, err := h.accounts.GetByID(c.Request.Context(), h.role, id)
	if err != nil {
		if errors.Is(err, service.ErrPrincipalNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": p})
}

// Update godoc
// PUT /api/{admin|superadmin}/:id (superadmin)
func (h *AccountHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateAccountRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	p, err := h.accounts.Update(c.Request.Context(), h.role, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPrincipalNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
		case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateName):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": p})
}

// Delete godoc
// DELETE /api/{admin|superadmin}/:id (superadmin)
// Deleting an unknown id reports 404.
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), h.role, id); err != nil {
		if errors.Is(err, service.ErrPrincipalNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
