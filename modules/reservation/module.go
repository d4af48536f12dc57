package reservation

import (
	"github.com/gofiber/fiber/v3"

	bookRepo "libreria/modules/catalog/repository"
	"libreria/modules/reservation/handler"
	"libreria/modules/reservation/repository"
	"libreria/modules/reservation/service"
	"libreria/util/module"
)

func NewModule(mCtx *module.ModuleContext, books bookRepo.BookRepository, users service.UserDirectory) *Module {
	repo := repository.NewReservationRepository(mCtx.DBCtx)
	svc := service.NewReservationService(mCtx.Transactor, repo, books, users)
	return &Module{
		handler: handler.NewReservationHandler(svc),
	}
}

type Module struct {
	handler *handler.ReservationHandler
}

func (m *Module) APIVersion() string {
	return "v1"
}

func (m *Module) RegisterRoutes(router fiber.Router) {
	reservations := router.Group("/reservations")
	reservations.Post("/", m.handler.CreateReservation)
	reservations.Get("/", m.handler.ListReservations)
	reservations.Get("/active", m.handler.ListActiveReservations)
	reservations.Get("/overdue", m.handler.ListOverdueReservations)
	reservations.Get("/availability/:bookExternalId", m.handler.IsBookAvailable)
	reservations.Get("/user/:userId/pending-fees", m.handler.GetUserPendingLateFees)
	reservations.Get("/user/:userId", m.handler.ListReservationsByUser)
	reservations.Put("/:id/return", m.handler.ReturnBook)
	reservations.Get("/:id/total", m.handler.GetFinalTotal)
	reservations.Get("/:id", m.handler.GetReservationByID)
}
