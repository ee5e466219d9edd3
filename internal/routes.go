package internal

import (
	"net/http"

	"streakd/internal/controllers"
	"streakd/internal/providers"
	"streakd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/message", http.HandlerFunc(apiController.Message))
	routers.Post("/mutation", http.HandlerFunc(apiController.Mutation))
	routers.Post("/notification/click", http.HandlerFunc(apiController.NotificationClick))
	routers.Get("/status", http.HandlerFunc(apiController.Status))
	routers.Get("/problems", http.HandlerFunc(apiController.Problems))
	routers.Post("/problems/complete", http.HandlerFunc(apiController.CompleteProblem))
	return routers
}
