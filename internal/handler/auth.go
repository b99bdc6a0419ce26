package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/revolck-lab/api-advancemais-sub001/internal/service"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/middleware"
	"github.com/revolck-lab/api-advancemais-sub001/pkg/validator"
)

const birthDateLayout = "2006-01-02"

// AuthHandler serves login, registration and account endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IsCompany bool   `json:"is_company"`
}

type addressRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required,len=2"`
	CEP     string `json:"cep" validate:"required,len=8"`
	Number  int    `json:"number" validate:"required,gte=1"`
}

type registerUserRequest struct {
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	Name        string         `json:"name" validate:"required,min=2"`
	CPF         string         `json:"cpf" validate:"required,cpf"`
	BirthDate   string         `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Phone       string         `json:"phone_user" validate:"required"`
	GenderID    int            `json:"gender_id" validate:"required"`
	EducationID int            `json:"education_id" validate:"required"`
	Address     addressRequest `json:"address" validate:"required"`
}

type registerCompanyRequest struct {
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	TradeName   string         `json:"trade_name" validate:"required,min=2"`
	CNPJ        string         `json:"cnpj" validate:"required,cnpj"`
	ContactName string         `json:"responsible_name" validate:"required"`
	Phone       string         `json:"phone_enterprises" validate:"required"`
	WhatsApp    string         `json:"whatsapp"`
	Address     addressRequest `json:"address" validate:"required"`
}

type createUserRequest struct {
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	Name        string         `json:"name" validate:"required,min=2"`
	CPF         string         `json:"cpf" validate:"required,cpf"`
	BirthDate   string         `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Phone       string         `json:"phone_user" validate:"required"`
	GenderID    int            `json:"gender_id" validate:"required"`
	EducationID int            `json:"education_id" validate:"required"`
	RoleID      int            `json:"role_id" validate:"required,gte=1"`
	Status      int            `json:"status" validate:"gte=0,lte=1"`
	Address     addressRequest `json:"address" validate:"required"`
}

// Login authenticates a user or company and returns a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IsCompany: req.IsCompany,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// RegisterUser self-registers a student account.
func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	// The datetime rule already validated the format.
	birthDate, _ := time.Parse(birthDateLayout, req.BirthDate)

	result, err := h.auth.RegisterUser(r.Context(), service.RegisterUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		CPF:         req.CPF,
		BirthDate:   birthDate,
		Phone:       req.Phone,
		GenderID:    req.GenderID,
		EducationID: req.EducationID,
		Address:     addressInput(req.Address),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, result)
}

// RegisterCompany self-registers an employer account.
func (h *AuthHandler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req registerCompanyRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	result, err := h.auth.RegisterCompany(r.Context(), service.RegisterCompanyInput{
		Email:       req.Email,
		Password:    req.Password,
		TradeName:   req.TradeName,
		CNPJ:        req.CNPJ,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		WhatsApp:    req.WhatsApp,
		Address:     addressInput(req.Address),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, result)
}

// CreateUser creates an account with an arbitrary role. Administrators only.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decode(w, r, &req); err != nil {
		return
	}

	birthDate, _ := time.Parse(birthDateLayout, req.BirthDate)

	user, err := h.auth.CreateUser(r.Context(), service.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		CPF:         req.CPF,
		BirthDate:   birthDate,
		Phone:       req.Phone,
		GenderID:    req.GenderID,
		EducationID: req.EducationID,
		RoleID:      req.RoleID,
		Status:      req.Status,
		Address:     addressInput(req.Address),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, user)
}

// Me returns the authenticated principal's account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, response{Error: &errorBody{Code: "UNAUTHORIZED", Message: "missing credentials"}})
		return
	}

	if claims.IsCompany {
		company, err := h.auth.GetCompany(r.Context(), claims.PrincipalID)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeData(w, http.StatusOK, company)
		return
	}

	user, err := h.auth.GetUser(r.Context(), claims.PrincipalID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// decode reads and validates the request body, writing the error response on
// failure. A non-nil return means the response is already written.
func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	err := validator.DecodeAndValidate(r, dst)
	if err == nil {
		return nil
	}

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, r, h.logger, err)
	} else {
		writeBadRequest(w, "invalid request body")
	}
	return err
}

func addressInput(req addressRequest) service.AddressInput {
	return service.AddressInput{
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		CEP:     req.CEP,
		Number:  req.Number,
	}
}
