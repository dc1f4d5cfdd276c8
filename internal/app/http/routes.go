package httpEngine

import (
	"net/http"

	"register-server/configs"
	"register-server/internal/controllers"
	"register-server/internal/logics"
	"register-server/internal/notifier"
	"register-server/internal/registry"
	"register-server/internal/repositories"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers every route of the server.
func RegisterRoutes(e *echo.Echo, dispatcher *notifier.Dispatcher) {
	// Health check endpoint.
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, from Register Server!")
	})

	db := repositories.DBS.Postgres
	teams := configs.Configs.Register.Teams

	sequenceService := registry.NewSequenceService()

	inwardService := logics.NewInwardService(db, sequenceService, dispatcher, configs.Logger, teams)
	outwardService := logics.NewOutwardService(db, sequenceService, configs.Logger)
	dashboardService := logics.NewDashboardService(db, teams)
	chatService := logics.NewChatService(db, configs.Logger)
	attachmentService := logics.NewAttachmentService(repositories.DBS.S3, configs.Configs.S3.BucketName, db)

	inwardController := controllers.NewInwardController(inwardService)
	outwardController := controllers.NewOutwardController(outwardService)
	dashboardController := controllers.NewDashboardController(dashboardService)
	chatController := controllers.NewChatController(chatService)
	attachmentController := controllers.NewAttachmentController(attachmentService)

	api := e.Group("/api")

	api.POST("/inward", inwardController.CreateInward)
	api.GET("/inward", inwardController.ListInward)
	api.GET("/inward/:id", inwardController.GetInward)
	api.PUT("/inward/:id/assign", inwardController.AssignInward)
	api.PUT("/inward/:id/status", inwardController.UpdateInwardStatus)

	api.POST("/inward/:id/attachments", attachmentController.UploadAttachment)
	api.GET("/inward/:id/attachments", attachmentController.ListAttachments)
	api.GET("/inward/:id/attachments/:attachmentId/link", attachmentController.GetDownloadLink)
	api.DELETE("/inward/:id/attachments/:attachmentId", attachmentController.DeleteAttachment)

	api.POST("/outward", outwardController.CreateOutward)
	api.GET("/outward", outwardController.ListOutward)
	api.GET("/outward/:id", outwardController.GetOutward)
	api.PUT("/outward/:id/close", outwardController.CloseCase)

	api.GET("/dashboard/stats", dashboardController.GetStats)
	api.GET("/dashboard/team/:team", dashboardController.GetTeamStats)
	api.GET("/dashboard/teams", dashboardController.GetTeamsSummary)

	api.POST("/ai/chat", chatController.Chat)
}
