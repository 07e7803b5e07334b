package api

import (
	"weddingdesk/cmd/middleware"
	"weddingdesk/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"
)

type Routers struct {
	Service    service.Service
	AdminToken string
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.GET("/seating", r.Service.GetSeatingChart)
	apiGroup.GET("/guests", r.Service.ListGuests)
	apiGroup.GET("/products", r.Service.ListProducts)
	apiGroup.GET("/export/alphabetical", r.Service.ExportAlphabetical)
	apiGroup.GET("/export/tables", r.Service.ExportByTable)
	apiGroup.POST("/products/:id/contributions", r.Service.CreateContribution)
	apiGroup.POST("/contributions/confirm", r.Service.ConfirmContribution)

	// All mutating chart and roster routes sit behind the admin token; the
	// engines themselves assume calls are pre-authorized.
	admin := apiGroup.Group("", middleware.AdminAuth(r.AdminToken))

	admin.POST("/seating/assignments", r.Service.AssignSeat)
	admin.POST("/seating/move", r.Service.MoveAssignment)
	admin.POST("/seating/swap", r.Service.SwapAssignments)
	admin.DELETE("/seating/assignments/:id", r.Service.DeleteAssignment)
	admin.PATCH("/tables/:number", r.Service.UpdateCapacity)
	admin.POST("/tables/reorder", r.Service.ReorderTables)

	admin.POST("/guests", r.Service.CreateGuest)
	admin.PUT("/guests/:id", r.Service.UpdateGuest)
	admin.PUT("/guests/:id/rsvp", r.Service.UpdateRSVP)
	admin.DELETE("/guests/:id", r.Service.DeleteGuest)

	admin.POST("/products", r.Service.CreateProduct)

	app.GET("/", func(c *ginext.Context) {
		c.File("./frontend/index.html")
	})
	app.GET("/adm", func(c *ginext.Context) {
		c.File("./frontend/adm.html")
	})
	app.Static("/frontend", "./frontend")

	return app
}
