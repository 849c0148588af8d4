package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/room-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/room-booking-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Rooms          *handlers.RoomsHandler
	Users          *handlers.UsersHandler
	Feedbacks      *handlers.FeedbacksHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/request-otp", cfg.Auth.RequestOTP)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOTP)

	rooms := api.Group("/rooms", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	rooms.Get("/", cfg.Rooms.ListRooms)
	rooms.Get("/available", cfg.Rooms.ListAvailable)
	rooms.Get("/location/:location", cfg.Rooms.ListByLocation)
	rooms.Get("/capacity/:minCapacity", cfg.Rooms.ListByCapacity)
	rooms.Get("/:id", cfg.Rooms.GetRoom)
	rooms.Get("/:id/schedule", cfg.Rooms.RoomSchedule)

	users := api.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	users.Get("/profile", cfg.Users.Profile)
	users.Put("/profile", cfg.Users.UpdateProfile)
	users.Get("/my_reservations", cfg.Users.MyReservations)
	users.Get("/reservations", cfg.Users.ListReservations)
	users.Post("/reservations", cfg.Users.CreateReservation)
	users.Put("/reservations/:id", cfg.Users.UpdateReservation)
	users.Delete("/reservations/:id", cfg.Users.CancelReservation)

	feedbacks := api.Group("/feedbacks", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	feedbacks.Post("/", cfg.Feedbacks.Create)
	feedbacks.Get("/room/:roomId", cfg.Feedbacks.ListByRoom)
	feedbacks.Get("/user", cfg.Feedbacks.ListOwn)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:id", cfg.Admin.GetUser)
	admin.Put("/users/:id/role", cfg.Admin.UpdateUserRole)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)

	admin.Get("/rooms", cfg.Admin.ListRooms)
	admin.Post("/rooms", cfg.Admin.CreateRoom)
	admin.Put("/rooms/:id", cfg.Admin.UpdateRoom)
	admin.Put("/rooms/:id/description", cfg.Admin.AddRoomDescription)
	admin.Delete("/rooms/:id", cfg.Admin.DeleteRoom)

	admin.Get("/reservations", cfg.Admin.ListReservations)
	admin.Get("/reservations/room/:roomId", cfg.Admin.ListReservationsByRoom)
	admin.Put("/reservations/:id/status", cfg.Admin.SetReservationStatus)

	admin.Get("/feedbacks", cfg.Admin.ListFeedbacks)
	admin.Delete("/feedback/:id", cfg.Admin.DeleteFeedback)
}
