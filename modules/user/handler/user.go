package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"libreria/modules/user/dto"
	"libreria/modules/user/service"
	"libreria/util/errs"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return errs.InputValidationError(err.Error())
	}

	if err := req.Validate(); err != nil {
		return errs.InputValidationError(err.Error())
	}

	resp, err := h.userSvc.CreateUser(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *UserHandler) GetUserByID(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid user id")
	}

	resp, err := h.userSvc.GetUserByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	resp, err := h.userSvc.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
