package main

import (
	reservationsrepo "roomly/internal/reservations/repository"
	"roomly/internal/rooms/handler"
	"roomly/internal/rooms/repository"
	"roomly/internal/rooms/service"
	"roomly/internal/rooms/validator"
	"roomly/pkg/app"
	"roomly/pkg/cache"
	"roomly/pkg/config"
)

const ServiceName = "rooms"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Rooms service")
	cfg.SetMongo()
	if cfg.CacheEnabled {
		cfg.SetRedis()
	}
	defer cfg.GracefulShutdown()

	roomService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewRoomHandler(roomService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.RoomService {
	roomValidator := validator.NewRoomValidator(cfg.Log)
	roomRepo := repository.NewMongoRoomRepository(cfg)

	// Availability and suggestions read the reservations store directly;
	// both collections live in the same database.
	reservationRepo := reservationsrepo.NewMongoReservationRepository(cfg)

	responseCache := cache.New(cfg.Client.Redis, cfg.CacheTTL, cfg.Log)

	roomService := service.NewRoomService(
		roomRepo,
		reservationRepo,
		roomValidator,
		responseCache,
		cfg,
	)

	cfg.Log.Info("Room service initialized",
		"database", cfg.MongoDatabaseName,
		"cache_enabled", responseCache.Enabled(),
	)
	return roomService
}
