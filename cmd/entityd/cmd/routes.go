package cmd

import (
	"github.com/labstack/echo/v4"

	"github.com/moonstream-to/entity/pkg/entity/webapi"
	"github.com/moonstream-to/entity/pkg/journal"
	"github.com/moonstream-to/entity/pkg/reporter"
)

type RouteOpts struct {
	Client   journal.ClientAPI
	Reporter reporter.Reporter
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	statusController := webapi.NewStatusController()
	e.GET("/ping", statusController.Ping)
	e.GET("/now", statusController.Now)
	e.GET("/version", statusController.Version)

	collectionsController := webapi.NewCollectionsController(opts.Client)
	e.POST("/collections", collectionsController.AddCollection)
	e.GET("/collections", collectionsController.ListCollections)
	e.DELETE("/collections/:collection_id", collectionsController.DeleteCollection)

	g := e.Group("/collections/:collection_id")

	entitiesController := webapi.NewEntitiesController(opts.Client, opts.Reporter)
	g.POST("/entities", entitiesController.AddEntity)
	g.POST("/bulk", entitiesController.AddEntitiesBulk)
	g.GET("/entities", entitiesController.ListEntities)
	g.GET("/entities/:entity_id", entitiesController.GetEntity)
	g.PUT("/entities/:entity_id", entitiesController.UpdateEntity)
	g.DELETE("/entities/:entity_id", entitiesController.DeleteEntity)

	permissionsController := webapi.NewPermissionsController(opts.Client)
	g.GET("/permissions", permissionsController.GetPermissions)
	g.PUT("/permissions", permissionsController.UpdatePermissions)
	g.DELETE("/permissions", permissionsController.DeletePermissions)

	searchController := webapi.NewSearchController(opts.Client)
	g.GET("/search", searchController.SearchEntities)

	public := e.Group("/public")
	public.GET("/collections", collectionsController.ListPublicCollections)
	public.GET("/collections/:collection_id/search", searchController.SearchPublicEntities)
}
