package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	if handler.metrics != nil {
		app.Get("/metrics", handler.metrics.Handler())
	}

	api := app.Group("/api", handler.LanguageMiddleware)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.CurrentUser)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	api.Get("/symptoms", handler.AuthRequired, handler.SymptomCatalog)

	cycle := api.Group("/cycle", handler.AuthRequired)
	cycle.Get("/days", handler.ListCycleDays)
	cycle.Get("/days/:date", handler.GetCycleDay)
	cycle.Put("/days/:date", handler.SaveCycleDay)
	cycle.Delete("/days/:date", handler.DeleteCycleDay)
	cycle.Delete("/months/:month", handler.DeleteCycleMonth)
	cycle.Get("/starts", handler.ListPeriodStarts)
	cycle.Get("/stats", handler.GetCycleStats)
	cycle.Get("/symptoms/top", handler.TopCycleSymptoms)

	pregnancy := api.Group("/pregnancy", handler.AuthRequired)
	pregnancy.Get("/days", handler.ListPregnancyDays)
	pregnancy.Get("/days/:date", handler.GetPregnancyDay)
	pregnancy.Put("/days/:date", handler.SavePregnancyDay)
	pregnancy.Delete("/days/:date", handler.DeletePregnancyDay)
	pregnancy.Delete("/months/:month", handler.DeletePregnancyMonth)
	pregnancy.Get("/status", handler.GetPregnancyStatus)
	pregnancy.Get("/symptoms/top", handler.TopPregnancySymptoms)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("", handler.GetSettings)
	settings.Patch("", handler.PatchSettings)

	api.Post("/sentiment", handler.AuthRequired, handler.AnalyzeSentiment)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/cycle.csv", handler.ExportCycleCSV)
	export.Get("/cycle.xlsx", handler.ExportCycleXLSX)

	api.Use(handler.NotFound)
}
