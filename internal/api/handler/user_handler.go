package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront-api/internal/core/ports"
)

// UserHandler handles HTTP requests for accounts, sessions and the address
// book.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /users/register.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	return respond(c, h.service.Register(c.Request().Context(), ports.RegisterInput{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Avatar:       req.Avatar,
		Password:     req.Password,
	}))
}

// Login handles POST /users/login.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	return respond(c, h.service.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}))
}

// Logout handles POST /users/logout.
func (h *UserHandler) Logout(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, h.service.Logout(c.Request().Context(), id, ctxToken(c)))
}

// FindAll handles GET /users.
func (h *UserHandler) FindAll(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, h.service.FindAll(c.Request().Context(), id))
}

// FindByID handles GET /users/:id.
func (h *UserHandler) FindByID(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return respond(c, h.service.FindByID(c.Request().Context(), userID))
}

// AddAddress handles POST /users/addresses.
func (h *UserHandler) AddAddress(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	return respond(c, h.service.AddAddress(c.Request().Context(), id, ports.AddressInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Zipcode:   req.Zipcode,
		Country:   req.Country,
		Phone:     req.Phone,
	}))
}

// ListAddresses handles GET /users/addresses.
func (h *UserHandler) ListAddresses(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, h.service.ListAddresses(c.Request().Context(), id))
}
