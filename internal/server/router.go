package server

import (
	handler "procurehub/services/procurement/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(tenderService handler.TenderServiceInterface, bidService handler.BidServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(ActorMiddleware)         // caller identity from gateway headers

	procurementHandler := handler.NewProcurementHandler(tenderService, bidService)

	tenders := router.Group("/tenders")
	{
		tenders.POST("", procurementHandler.CreateTenderHandler)
		tenders.GET("", procurementHandler.ListTendersHandler)
		tenders.POST("/sweep", procurementHandler.SweepExpiredHandler)
		tenders.GET("/:tender_id", procurementHandler.GetTenderHandler)
		tenders.PUT("/:tender_id", procurementHandler.UpdateTenderHandler)
		tenders.DELETE("/:tender_id", procurementHandler.RemoveTenderHandler)
		tenders.POST("/:tender_id/publish", procurementHandler.PublishTenderHandler)
		tenders.GET("/:tender_id/bids", procurementHandler.ListTenderBidsHandler)
		tenders.POST("/:tender_id/award", procurementHandler.AwardTenderHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", procurementHandler.SubmitBidHandler)
		bids.GET("/my", procurementHandler.ListMyBidsHandler)
		bids.GET("/:bid_id", procurementHandler.GetBidHandler)
		bids.PUT("/:bid_id", procurementHandler.AmendBidHandler)
		bids.DELETE("/:bid_id", procurementHandler.CancelBidHandler)
	}

	router.GET("/categories", procurementHandler.ListCategoriesHandler)

	return router
}
