package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/properties", handler.GetProperties)
		api.GET("/properties/:id", handler.GetPropertyByID)
		api.GET("/properties/:id/enquiries", handler.ListEnquiries)
		api.GET("/search", handler.SearchProperties)
		api.GET("/stats", handler.GetStats)

		api.GET("/favorites", handler.GetFavorites)
		api.GET("/favorites/count", handler.GetFavoriteCount)
		api.POST("/favorites", handler.CreateFavorite)
		api.DELETE("/favorites/:propertyId", handler.DeleteFavorite)
		api.DELETE("/favorites", handler.ClearFavorites)

		api.GET("/compare", handler.CompareByIDs)
		api.GET("/compare/listings", handler.GetComparisonListings)
		api.POST("/compare/:id", handler.AddToComparison)
		api.DELETE("/compare/:id", handler.RemoveFromComparison)
		api.DELETE("/compare", handler.ClearComparison)

		api.GET("/map/viewport", handler.GetMapViewport)

		api.POST("/contact", handler.SubmitContact)
	}
}
