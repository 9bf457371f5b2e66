package router

import (
	boathandler "seaboo-server/internal/module/boat/handler"
	bookinghandler "seaboo-server/internal/module/booking/handler"
	userhandler "seaboo-server/internal/module/user/handler"
	"seaboo-server/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(app *fiber.App, handlerUser *userhandler.UserHandler, handlerBoat *boathandler.BoatHandler, handlerBooking *bookinghandler.BookingHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	api := app.Group("/api")

	// auth
	api.Post("/register", handlerUser.Register)
	api.Post("/login", handlerUser.Login)
	api.Post("/logout", handlerUser.Logout)
	api.Get("/user", m.OptionalAuth, handlerUser.CurrentUser)
	api.Post("/auth/apple", handlerUser.AppleSignIn)
	api.Post("/create-demo-account", handlerUser.CreateDemoAccount)
	api.Get("/profile", m.RequireAuth, handlerUser.Profile)

	// boats
	api.Get("/boats", handlerBoat.ListBoats)
	api.Get("/owner/boats", m.RequireAuth, m.RequireOwner, handlerBoat.ListOwnerBoats)
	api.Post("/boats", m.RequireAuth, m.RequireOwner, handlerBoat.CreateBoat)
	api.Put("/boats/:id", m.RequireAuth, m.RequireOwner, handlerBoat.UpdateBoat)
	api.Delete("/boats/:id", m.RequireAuth, m.RequireOwner, handlerBoat.DeleteBoat)

	// bookings & payments
	api.Get("/bookings", m.RequireAuth, handlerBooking.ShowBookings)
	api.Post("/bookings", m.RequireAuth, handlerBooking.BookBoat)
	api.Get("/owner/bookings", m.RequireAuth, m.RequireOwner, handlerBooking.OwnerBookings)
	api.Post("/verify-purchase", m.OptionalAuth, handlerBooking.VerifyPurchase)
	api.Post("/create-payment-intent", m.RequireAuth, handlerBooking.CreatePaymentIntent)
	api.Post("/stripe/webhook", handlerBooking.StripeWebhook)

	// uploaded boat images
	app.Static("/uploads", "./uploads")

	return app
}
