package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the API under r. health may be nil.
func RegisterRoutes(r chi.Router, health *HealthHandler, properties *PropertyHandler, calculations *CalculationHandler) {
	if health != nil {
		r.Get("/health", health.HandleHealth)
	}

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", properties.HandleListProperties)
		r.Post("/", properties.HandleCreateProperty)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", properties.HandleGetProperty)
			r.Put("/", properties.HandleUpdateProperty)
			r.Delete("/", properties.HandleDeleteProperty)

			r.Get("/acquisition", properties.HandleGetAcquisition)
			r.Put("/acquisition", properties.HandleUpdateAcquisition)
			r.Get("/financing", properties.HandleGetFinancing)
			r.Put("/financing", properties.HandleUpdateFinancing)
			r.Get("/income", properties.HandleGetIncome)
			r.Put("/income", properties.HandleUpdateIncome)

			r.Get("/expenses", properties.HandleListExpenses)
			r.Post("/expenses", properties.HandleCreateExpense)
			r.Put("/expenses/{expenseID}", properties.HandleUpdateExpense)
			r.Delete("/expenses/{expenseID}", properties.HandleDeleteExpense)

			r.Get("/calculations", calculations.HandleGetCalculations)
			r.Get("/alos", calculations.HandleGetAlos)
		})
	})

	r.Post("/compare", calculations.HandleCompare)
	r.Get("/dashboard", calculations.HandleDashboard)
	r.Post("/calculate", calculations.HandleCalculate)
	r.Post("/mortgage", calculations.HandleMortgage)
}
