package main

import (
	bookinghandler "campusbook/internal/bookings/handler"
	bookingrepo "campusbook/internal/bookings/repository"
	bookingservice "campusbook/internal/bookings/service"
	bookingvalidator "campusbook/internal/bookings/validator"
	"campusbook/internal/events"
	facilityhandler "campusbook/internal/facilities/handler"
	facilityrepo "campusbook/internal/facilities/repository"
	facilityservice "campusbook/internal/facilities/service"
	facilityvalidator "campusbook/internal/facilities/validator"
	userrepo "campusbook/internal/users/repository"
	"campusbook/pkg/app"
	"campusbook/pkg/config"
)

const ServiceName = "campusbook-server"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting reservation server")

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}
	defer publisher.Close()

	facilityService, bookingService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		facilityhandler.NewFacilityHandler(facilityService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) (facilityservice.FacilityService, bookingservice.BookingService) {
	facilities := facilityrepo.NewMongoFacilityRepository(cfg)
	users := userrepo.NewMongoUserRepository(cfg)

	facilityService := facilityservice.NewFacilityService(
		facilities,
		facilityvalidator.NewFacilityValidator(cfg.Log),
		cfg,
	)

	bookingService := bookingservice.NewBookingService(
		bookingrepo.NewMongoBookingRepository(cfg),
		bookingrepo.NewBookingLockRepository(cfg),
		facilities,
		users,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return facilityService, bookingService
}
