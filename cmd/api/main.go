package main

import (
	"carental/internal/auth"
	bookingshandler "carental/internal/bookings/handler"
	bookingsrepository "carental/internal/bookings/repository"
	bookingsservice "carental/internal/bookings/service"
	bookingsvalidator "carental/internal/bookings/validator"
	carshandler "carental/internal/cars/handler"
	carsrepository "carental/internal/cars/repository"
	carsservice "carental/internal/cars/service"
	carsvalidator "carental/internal/cars/validator"
	"carental/internal/events"
	usershandler "carental/internal/users/handler"
	usersrepository "carental/internal/users/repository"
	usersservice "carental/internal/users/service"
	usersvalidator "carental/internal/users/validator"
	"carental/pkg/app"
	"carental/pkg/config"
	kafka_config "carental/pkg/kafka/config"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	publisher, err := events.NewPublisher(kafka_config.Load(), ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	cfg.Log.Info("Starting API service")

	userRepo := usersrepository.NewMongoUserRepository(cfg)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTokenTTL)
	guard := auth.NewGuard(tokens, userRepo, cfg.Log)

	userService := usersservice.NewUserService(cfg, userRepo, usersvalidator.NewUserValidator(), tokens)

	carRepo := carsrepository.NewMongoCarRepository(cfg)
	carService := carsservice.NewCarService(cfg, carRepo, userRepo, carsvalidator.NewCarValidator(cfg.Log))

	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepository.NewBookingLockRepository(cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		carRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Domain services initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		usershandler.NewUserHandler(userService, guard, cfg.Log),
		carshandler.NewCarHandler(carService, guard, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, guard, cfg.Log),
	)
	serverApp.Run()
}
