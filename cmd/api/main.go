package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"libreria/application"
	"libreria/config"
	"libreria/modules/catalog"
	"libreria/modules/catalog/external"
	"libreria/modules/reservation"
	"libreria/modules/user"
	"libreria/util/logger"
	"libreria/util/module"
	"libreria/util/storage/sqldb"
	"libreria/util/storage/sqldb/transactor"
)

func main() {
	closeLog, err := logger.Init()
	if err != nil {
		panic(err.Error())
	}
	defer closeLog()

	config, err := config.Load()
	if err != nil {
		log.Panic(err)
	}

	dbCtx, closeDB, err := sqldb.NewDBContext(config.DSN)
	if err != nil {
		logger.Log.Fatal(err.Error())
	}
	defer func() {
		if err := closeDB(); err != nil {
			logger.Log.Error(fmt.Sprintf("Error closing database: %v", err))
		}
	}()

	app := application.New(*config)

	tx, dbtxCtx := transactor.New(dbCtx.DB(),
		transactor.WithNestedTransactionStrategy(transactor.NestedTransactionsSavepoints))
	mCtx := module.NewModuleContext(tx, dbtxCtx)

	catalogAPI := external.NewClient(config.ExternalAPIURL, config.ExternalAPITimeout)

	catalogModule := catalog.NewModule(mCtx, catalogAPI)
	userModule := user.NewModule(mCtx)
	reservationModule := reservation.NewModule(mCtx, catalogModule.BookRepository(), userModule.UserRepository())

	app.RegisterModules(
		catalogModule,
		userModule,
		reservationModule,
	)

	app.Run()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down...")

	app.Shutdown()

	logger.Log.Info("Shutdown complete.")
}
