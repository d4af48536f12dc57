package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"libreria/modules/reservation/dto"
	"libreria/modules/reservation/service"
	"libreria/util/errs"
)

type ReservationHandler struct {
	resvSvc service.ReservationService
}

func NewReservationHandler(resvSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{resvSvc: resvSvc}
}

func (h *ReservationHandler) CreateReservation(c fiber.Ctx) error {
	var req dto.ReservationRequest
	if err := c.Bind().Body(&req); err != nil {
		return errs.InputValidationError(err.Error())
	}

	if err := req.Validate(); err != nil {
		return errs.InputValidationError(err.Error())
	}

	resp, err := h.resvSvc.CreateReservation(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ReservationHandler) ReturnBook(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid reservation id")
	}

	var req dto.ReturnBookRequest
	if err := c.Bind().Body(&req); err != nil {
		return errs.InputValidationError(err.Error())
	}

	if err := req.Validate(); err != nil {
		return errs.InputValidationError(err.Error())
	}

	resp, err := h.resvSvc.ReturnBook(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *ReservationHandler) GetReservationByID(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid reservation id")
	}

	resp, err := h.resvSvc.GetReservationByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *ReservationHandler) ListReservations(c fiber.Ctx) error {
	resp, err := h.resvSvc.ListReservations(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *ReservationHandler) ListReservationsByUser(c fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid user id")
	}

	resp, err := h.resvSvc.ListReservationsByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *ReservationHandler) ListActiveReservations(c fiber.Ctx) error {
	resp, err := h.resvSvc.ListActiveReservations(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *ReservationHandler) ListOverdueReservations(c fiber.Ctx) error {
	resp, err := h.resvSvc.ListOverdueReservations(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *ReservationHandler) GetUserPendingLateFees(c fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid user id")
	}

	total, err := h.resvSvc.GetUserPendingLateFees(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.PendingLateFeesResponse{UserID: userID, PendingLateFees: total})
}

func (h *ReservationHandler) IsBookAvailable(c fiber.Ctx) error {
	bookExternalID, err := strconv.ParseInt(c.Params("bookExternalId"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid book external id")
	}

	available, err := h.resvSvc.IsBookAvailable(c.Context(), bookExternalID)
	if err != nil {
		return err
	}
	return c.JSON(dto.AvailabilityResponse{BookExternalID: bookExternalID, Available: available})
}

func (h *ReservationHandler) GetFinalTotal(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid reservation id")
	}

	total, err := h.resvSvc.FinalTotal(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FinalTotalResponse{ReservationID: id, FinalTotal: total})
}
