// backend/src/handlers/financials_handler.go
package handlers

import (
	"net/http"

	"github.com/strscout/backend/src/models"
	"github.com/strscout/backend/src/security/validation"
	"github.com/strscout/backend/src/utils"
)

const (
	msgFinancialsNotFound = "Financial data not found"
	msgExpenseNotFound    = "Expense not found"
)

// Acquisition, financing and income share one shape: read the row, or
// apply a partial update to it.

func (h *PropertyHandler) HandleGetAcquisition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := h.properties.GetAcquisitionCosts(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, err, msgFinancialsNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (h *PropertyHandler) HandleUpdateAcquisition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var u models.AcquisitionCostsUpdate
	if !decodeAndValidate(w, r, &u) {
		return
	}
	rec, err := h.properties.UpdateAcquisitionCosts(r.Context(), id, u)
	if err != nil {
		sendServiceError(w, r, err, msgFinancialsNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (h *PropertyHandler) HandleGetFinancing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := h.properties.GetFinancing(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, err, msgFinancialsNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (h *PropertyHandler) HandleUpdateFinancing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var u models.FinancingUpdate
	if !decodeAndValidate(w, r, &u) {
		return
	}
	rec, err := h.properties.UpdateFinancing(r.Context(), id, u)
	if err != nil {
		sendServiceError(w, r, err, msgFinancialsNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (h *PropertyHandler) HandleGetIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := h.properties.GetRentalIncome(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, err, msgFinancialsNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (h *PropertyHandler) HandleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var u models.RentalIncomeUpdate
	if !decodeAndValidate(w, r, &u) {
		return
	}
	rec, err := h.properties.UpdateRentalIncome(r.Context(), id, u)
	if err != nil {
		sendServiceError(w, r, err, msgFinancialsNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rec)
}

func (h *PropertyHandler) HandleListExpenses(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	expenses, err := h.properties.ListExpenses(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, expenses)
}

func (h *PropertyHandler) HandleCreateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var e models.OperatingExpense
	if err := decodeJSON(r, &e); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	e.Category = validation.CleanText(e.Category)
	e.Label = validation.CleanText(e.Label)
	if err := validation.ValidateStruct(e); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	e.ID = 0
	e.PropertyID = id

	if err := h.properties.CreateExpense(r.Context(), &e); err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, e)
}

func (h *PropertyHandler) HandleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	expenseID, err := pathID(r, "expenseID")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var u models.OperatingExpenseUpdate
	if err := decodeJSON(r, &u); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	u.Category = validation.CleanTextPtr(u.Category)
	u.Label = validation.CleanTextPtr(u.Label)
	if err := validation.ValidateStruct(u); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.properties.UpdateExpense(r.Context(), id, expenseID, u)
	if err != nil {
		sendServiceError(w, r, err, msgExpenseNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, e)
}

func (h *PropertyHandler) HandleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	expenseID, err := pathID(r, "expenseID")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.properties.DeleteExpense(r.Context(), id, expenseID); err != nil {
		sendServiceError(w, r, err, msgExpenseNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
