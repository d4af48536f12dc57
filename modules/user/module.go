package user

import (
	"github.com/gofiber/fiber/v3"

	"libreria/modules/user/handler"
	"libreria/modules/user/repository"
	"libreria/modules/user/service"
	"libreria/util/module"
)

func NewModule(mCtx *module.ModuleContext) *Module {
	repo := repository.NewUserRepository(mCtx.DBCtx)
	svc := service.NewUserService(repo)
	return &Module{
		userRepo: repo,
		handler:  handler.NewUserHandler(svc),
	}
}

type Module struct {
	userRepo repository.UserRepository
	handler  *handler.UserHandler
}

func (m *Module) APIVersion() string {
	return "v1"
}

// UserRepository exposes the user directory port for the reservation module.
func (m *Module) UserRepository() repository.UserRepository {
	return m.userRepo
}

func (m *Module) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Post("/", m.handler.CreateUser)
	users.Get("/", m.handler.ListUsers)
	users.Get("/:id", m.handler.GetUserByID)
}
