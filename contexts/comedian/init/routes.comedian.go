package init

func registerComedianRoutes(di *ComedianContext) {
	comedians := di.globalContainer.WebRouter.Group("/Comedian")

	comedians.GET("", di.comedianController.Index()).Name = "comedian.index"
	comedians.GET("/Index", di.comedianController.Index()).Name = "comedian.index.alias"
	comedians.GET("/Create", di.comedianController.Create()).Name = "comedian.create"
	comedians.POST("/Create", di.comedianController.Store()).Name = "comedian.store"
	comedians.GET("/Details/:id", di.comedianController.Show()).Name = "comedian.show"
	comedians.GET("/Edit/:id", di.comedianController.Edit()).Name = "comedian.edit"
	comedians.POST("/Edit/:id", di.comedianController.Update()).Name = "comedian.update"
	comedians.GET("/Delete/:id", di.comedianController.Delete()).Name = "comedian.delete"
	comedians.POST("/Delete/:id", di.comedianController.Destroy()).Name = "comedian.destroy"
}
