package customer

import (
	"github.com/gin-gonic/gin"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/service/customer"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/httputil"
)

type Handler struct {
	service customer.CustomerService
}

func NewHandler(service customer.CustomerService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetProfile)
	rg.PATCH("/me", h.UpdateProfile)
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newCustomerView(*profile))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid request body", err))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newCustomerView(*profile))
}

type customerView struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	CPF          string `json:"cpf"`
	FormattedCPF string `json:"formatted_cpf,omitempty"`
	Phone        string `json:"phone"`
	PhoneLabel   string `json:"phone_label"`
	Address      string `json:"address"`
}

func newCustomerView(c model.Customer) customerView {
	view := customerView{
		ID:         c.ID,
		Username:   c.User.Username,
		FullName:   c.FullName(),
		Email:      c.Email(),
		CPF:        c.CPF,
		Phone:      c.Phone,
		PhoneLabel: c.FormatPhone(),
		Address:    c.Address,
	}
	if cpf, err := model.NewCPF(c.CPF); err == nil {
		view.FormattedCPF = cpf.Format()
	}
	return view
}
