package router

import (
	"restaurant_manager/handler"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/customer/login", handler.CustomerLogin)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)

	account := v1.Group("/account", logger.New())
	account.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetAccounts)
	account.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateAccount(), handler.CreateAccount)
	account.Post("/change-password", middleware.Protected(), middleware.AdminOnly(), handler.AdminChangePasswordAccount)
	account.Patch("/:accountId/active", middleware.Protected(), middleware.AdminOnly(), validate.GetById("accountId"), handler.ToggleAccountActive)
	account.Delete("/", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), handler.DeleteAccount)

	customer := v1.Group("/customer", logger.New())
	customer.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	customer.Get("/me", middleware.Protected(), handler.GetCurrentCustomer)
	customer.Post("/change-password", middleware.Protected(), validate.ChangePasswordCustomer(), handler.ChangePasswordCustomer)
	customer.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	customer.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	menu := v1.Group("/menu", logger.New())
	menu.Get("/categories", handler.GetCategories)
	menu.Post("/categories", middleware.Protected(), middleware.AdminOnly(), handler.CreateCategory)
	menu.Get("/", handler.GetMenuItems)
	menu.Get("/:slug", handler.GetMenuItemBySlug)
	menu.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Put("/:menuItemId", middleware.Protected(), middleware.AdminOnly(), validate.EditMenuItem("menuItemId"), handler.EditMenuItem)
	menu.Delete("/", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), handler.DeleteMenuItem)
	menu.Post("/:menuItemId/image", middleware.Protected(), middleware.AdminOnly(), validate.GetById("menuItemId"), handler.UploadMenuImage)

	cart := v1.Group("/cart", logger.New())
	cart.Get("/", middleware.Protected(), handler.GetCart)
	cart.Post("/", middleware.Protected(), validate.AddToCart(), handler.AddToCart)
	cart.Put("/", middleware.Protected(), validate.UpdateCartQty(), handler.UpdateCartQty)
	cart.Delete("/item", middleware.Protected(), validate.RemoveCartItem(), handler.RemoveCartItem)
	cart.Delete("/", middleware.Protected(), handler.ClearCart)

	order := v1.Group("/order", logger.New())
	order.Post("/checkout", middleware.Protected(), validate.Checkout(), handler.Checkout)
	order.Get("/my", middleware.Protected(), handler.GetMyOrders)
	order.Get("/", middleware.Protected(), middleware.StaffOnly(), handler.GetOrders)
	order.Get("/:code", middleware.OptionalAuth(), handler.GetOrderDetail)
	order.Patch("/:orderId/status", middleware.Protected(), middleware.StaffOnly(), validate.GetById("orderId"), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)

	reservation := v1.Group("/reservation", logger.New())
	reservation.Post("/availability", validate.Availability(), handler.GetAvailability)
	reservation.Post("/", middleware.OptionalAuth(), validate.CreateReservation(), handler.CreateReservation)
	reservation.Get("/my", middleware.Protected(), handler.GetMyReservations)
	reservation.Patch("/:reservationId/cancel", middleware.Protected(), validate.GetById("reservationId"), handler.CancelReservation)
	reservation.Get("/", middleware.Protected(), middleware.StaffOnly(), handler.GetReservations)
	reservation.Patch("/:reservationId/status", middleware.Protected(), middleware.StaffOnly(), validate.GetById("reservationId"), validate.UpdateReservationStatus(), handler.UpdateReservationStatus)

	reservation.Get("/ws", websocket.New(handler.AvailabilityWS))

	contact := v1.Group("/contact", logger.New())
	contact.Post("/", validate.CreateContact(), handler.CreateContact)
	contact.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetContacts)
	contact.Patch("/:contactId/read", middleware.Protected(), middleware.AdminOnly(), validate.GetById("contactId"), handler.MarkContactRead)
}
