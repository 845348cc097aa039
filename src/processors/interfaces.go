// backend/src/processors/interfaces.go
package processors

import "github.com/strscout/backend/src/models"

// MetricsProcessor runs the investment calculations for one property.
// Implementations are pure and safe for concurrent use.
type MetricsProcessor interface {
	Calculate(input models.CalculationInput) models.CalculationResult
	AnalyzeAlos(input models.CalculationInput, result models.CalculationResult, alosRange models.AlosRange) models.AlosAnalysis
}
