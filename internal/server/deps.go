package server

import (
	"zapshift/internal/config"
	"zapshift/internal/handler"
	"zapshift/internal/repository"
	"zapshift/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories holds every persistence handle
type Repositories struct {
	Users    repository.IUserRepository
	Parcels  repository.IParcelRepository
	Riders   repository.IRiderRepository
	Tracking repository.ITrackingRepository
	Txn      repository.TxnRunner
}

// Services holds every business service
type Services struct {
	Users    *service.UserService
	Parcels  *service.ParcelService
	Riders   *service.RiderService
	Tracking *service.TrackingService
	Earnings *service.EarningsService
	Cashout  *service.CashoutService
}

// Handlers holds every HTTP handler
type Handlers struct {
	Users    *handler.UserHandler
	Parcels  *handler.ParcelHandler
	Riders   *handler.RiderHandler
	Tracking *handler.TrackingHandler
}

func InitRepositories(cfg *config.Config, client *mongo.Client, db *mongo.Database) *Repositories {
	return &Repositories{
		Users:    repository.NewUserRepository(cfg, db),
		Parcels:  repository.NewParcelRepository(cfg, db),
		Riders:   repository.NewRiderRepository(cfg, db),
		Tracking: repository.NewTrackingRepository(cfg, db),
		Txn:      repository.NewMongoTxnRunner(client),
	}
}

func InitServices(cfg *config.Config, repos *Repositories) *Services {
	tracking := service.NewTrackingService(repos.Tracking)
	return &Services{
		Users:    service.NewUserService(cfg, repos.Users),
		Parcels:  service.NewParcelService(cfg, repos.Parcels, repos.Riders, tracking),
		Riders:   service.NewRiderService(cfg, repos.Riders, repos.Users),
		Tracking: tracking,
		Earnings: service.NewEarningsService(repos.Parcels, repos.Riders),
		Cashout:  service.NewCashoutService(repos.Parcels, repos.Riders, repos.Txn),
	}
}

func InitHandlers(services *Services) *Handlers {
	return &Handlers{
		Users:    handler.NewUserHandler(services.Users),
		Parcels:  handler.NewParcelHandler(services.Parcels),
		Riders:   handler.NewRiderHandler(services.Riders, services.Earnings, services.Cashout),
		Tracking: handler.NewTrackingHandler(services.Tracking),
	}
}
