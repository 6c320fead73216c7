package main

import (
	bookinghandler "roombook/internal/bookings/handler"
	bookingrepo "roombook/internal/bookings/repository"
	bookingservice "roombook/internal/bookings/service"
	bookingvalidator "roombook/internal/bookings/validator"
	"roombook/internal/events"
	roomhandler "roombook/internal/rooms/handler"
	roomrepo "roombook/internal/rooms/repository"
	roomservice "roombook/internal/rooms/service"
	roomvalidator "roombook/internal/rooms/validator"
	userhandler "roombook/internal/users/handler"
	userrepo "roombook/internal/users/repository"
	userservice "roombook/internal/users/service"
	"roombook/pkg/app"
	"roombook/pkg/config"
	"roombook/pkg/kafka"
	kafkaconfig "roombook/pkg/kafka/config"
	kafkamiddleware "roombook/pkg/kafka/middleware"
)

const ServiceName = "roombook"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting roombook service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	}()

	roomHandler, bookingHandler, userHandler := initServices(cfg, publisher)
	healthHandler := roomhandler.NewHealthHandler(cfg.Client.Mongo, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(healthHandler, roomHandler, bookingHandler, userHandler)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) (*roomhandler.RoomHandler, *bookinghandler.BookingHandler, *userhandler.UserHandler) {
	roomRepo := roomrepo.NewMongoRoomRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepo.NewBookingLockRepository(cfg)
	userRepo := userrepo.NewMongoUserRepository(cfg)

	roomService := roomservice.NewRoomService(
		roomRepo,
		bookingRepo,
		roomvalidator.NewRoomValidator(cfg.Log),
		cfg,
	)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		roomRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	userService := userservice.NewUserService(userRepo, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return roomhandler.NewRoomHandler(roomService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		userhandler.NewUserHandler(userService, cfg.Log)
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled; booking events will not be published")
		return events.NewNopPublisher()
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Kafka event publisher initialized", "topic", kafkaCfg.Topic)
	return events.NewKafkaPublisher(producer, cfg.Log, ServiceName)
}
