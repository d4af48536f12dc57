package catalog

import (
	"github.com/gofiber/fiber/v3"

	"libreria/modules/catalog/external"
	"libreria/modules/catalog/handler"
	"libreria/modules/catalog/repository"
	"libreria/modules/catalog/service"
	"libreria/util/module"
)

func NewModule(mCtx *module.ModuleContext, catalogAPI external.Client) *Module {
	repo := repository.NewBookRepository(mCtx.DBCtx)
	svc := service.NewBookService(mCtx.Transactor, repo, catalogAPI)
	return &Module{
		bookRepo: repo,
		bookSvc:  svc,
		handler:  handler.NewBookHandler(svc),
	}
}

type Module struct {
	bookRepo repository.BookRepository
	bookSvc  service.BookService
	handler  *handler.BookHandler
}

func (m *Module) APIVersion() string {
	return "v1"
}

// BookRepository exposes the book store port for the reservation module.
func (m *Module) BookRepository() repository.BookRepository {
	return m.bookRepo
}

func (m *Module) RegisterRoutes(router fiber.Router) {
	books := router.Group("/books")
	books.Post("/sync", m.handler.SyncBooks)
	books.Get("/", m.handler.GetAllBooks)
	books.Get("/external/availability", m.handler.CheckExternalAPIAvailability)
	books.Get("/:externalId", m.handler.GetBookByExternalID)
	books.Put("/:externalId/stock", m.handler.UpdateStock)
}
