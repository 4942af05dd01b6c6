package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	cycleData := app.Group("/api/cycle-data")
	cycleData.Get("/", handler.GetCycleData)
	cycleData.Post("/log-period", handler.LogPeriod)
	cycleData.Post("/log-symptoms", handler.LogSymptoms)
	cycleData.Post("/update-cycle-length", handler.UpdateCycleLength)
	cycleData.Delete("/period-logs", handler.ClearPeriodLogs)
	cycleData.Get("/history", handler.GetHistory)
	cycleData.Get("/symptom-types", handler.GetSymptomTypes)
	cycleData.Get("/analysis", handler.GetAnalysis)
	cycleData.Get("/phases", handler.GetPhases)
}
