package internal

import (
	"livevote/internal/controllers"
	"livevote/internal/providers"
)

func InitRoutes(ballot *controllers.BallotController, admin *controllers.AdminController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/ballot", ballot.Ballot)
	routers.Post("/ballot/select", ballot.Select)
	routers.Post("/ballot/confirm", ballot.Confirm)
	routers.Post("/ballot/cancel", ballot.Cancel)

	routers.Get("/admin/candidates", admin.Candidates)
	routers.Get("/admin/candidates/{id}", admin.Candidate)
	routers.Post("/admin/candidates", admin.Create)
	routers.Put("/admin/candidates/{id}", admin.Update)
	routers.Delete("/admin/candidates/{id}", admin.Delete)
	routers.Get("/admin/results", admin.Results)
	routers.Get("/admin/votes", admin.Votes)
	routers.Post("/admin/export", admin.Export)
	return routers
}
