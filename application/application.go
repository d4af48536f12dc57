package application

import (
	"fmt"

	"libreria/config"
	"libreria/util/logger"
	"libreria/util/module"
)

type Application struct {
	config     config.Config
	httpServer HTTPServer
}

func New(config config.Config) *Application {
	return &Application{
		config:     config,
		httpServer: newHTTPServer(config),
	}
}

func (app *Application) Run() error {
	app.httpServer.Start()

	return nil
}

func (app *Application) Shutdown() error {
	logger.Log.Info("Shutting down server")
	if err := app.httpServer.Shutdown(); err != nil {
		logger.Log.Fatal(fmt.Sprintf("Error shutting down server: %v", err))
	}
	logger.Log.Info("Server stopped")

	return nil
}

func (app *Application) RegisterModules(modules ...module.Module) {
	for _, m := range modules {
		group := app.httpServer.Group(fmt.Sprintf("/api/%s", m.APIVersion()))
		m.RegisterRoutes(group)
	}
}
