package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"libreria/modules/catalog/service"
	"libreria/util/errs"
)

type BookHandler struct {
	bookSvc service.BookService
}

func NewBookHandler(bookSvc service.BookService) *BookHandler {
	return &BookHandler{bookSvc: bookSvc}
}

func (h *BookHandler) SyncBooks(c fiber.Ctx) error {
	synced, err := h.bookSvc.SyncFromExternalAPI(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Libros sincronizados exitosamente desde la API externa",
		"synced":  synced,
	})
}

func (h *BookHandler) GetAllBooks(c fiber.Ctx) error {
	books, err := h.bookSvc.ListBooks(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(books)
}

func (h *BookHandler) GetBookByExternalID(c fiber.Ctx) error {
	externalID, err := strconv.ParseInt(c.Params("externalId"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid external id")
	}

	book, err := h.bookSvc.GetByExternalID(c.Context(), externalID)
	if err != nil {
		return err
	}
	return c.JSON(book)
}

func (h *BookHandler) UpdateStock(c fiber.Ctx) error {
	externalID, err := strconv.ParseInt(c.Params("externalId"), 10, 64)
	if err != nil {
		return errs.InputValidationError("invalid external id")
	}

	stockQuantity, err := strconv.Atoi(c.Query("stockQuantity"))
	if err != nil {
		return errs.InputValidationError("stockQuantity is required and must be an integer")
	}

	book, err := h.bookSvc.UpdateStock(c.Context(), externalID, stockQuantity)
	if err != nil {
		return err
	}
	return c.JSON(book)
}

func (h *BookHandler) CheckExternalAPIAvailability(c fiber.Ctx) error {
	available := h.bookSvc.IsExternalAPIAvailable(c.Context())

	message := "API externa disponible"
	if !available {
		message = "API externa no disponible"
	}

	return c.JSON(fiber.Map{
		"available": available,
		"timestamp": time.Now(),
		"message":   message,
	})
}
