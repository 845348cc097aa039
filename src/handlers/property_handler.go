// backend/src/handlers/property_handler.go
package handlers

import (
	"net/http"

	"github.com/strscout/backend/src/logger"
	"github.com/strscout/backend/src/models"
	"github.com/strscout/backend/src/security/validation"
	"github.com/strscout/backend/src/services"
	"github.com/strscout/backend/src/utils"
)

const msgPropertyNotFound = "Property not found"

type PropertyHandler struct {
	properties services.PropertyService
}

func NewPropertyHandler(properties services.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

func cleanProperty(p *models.Property) {
	p.Name = validation.CleanText(p.Name)
	p.Address = validation.CleanText(p.Address)
	p.City = validation.CleanText(p.City)
	p.State = validation.CleanText(p.State)
	p.Zip = validation.CleanText(p.Zip)
	p.PropertyType = validation.CleanText(p.PropertyType)
	p.Status = validation.CleanText(p.Status)
	p.Notes = validation.CleanText(p.Notes)
}

func cleanPropertyUpdate(u *models.PropertyUpdate) {
	u.Name = validation.CleanTextPtr(u.Name)
	u.Address = validation.CleanTextPtr(u.Address)
	u.City = validation.CleanTextPtr(u.City)
	u.State = validation.CleanTextPtr(u.State)
	u.Zip = validation.CleanTextPtr(u.Zip)
	u.PropertyType = validation.CleanTextPtr(u.PropertyType)
	u.Status = validation.CleanTextPtr(u.Status)
	u.Notes = validation.CleanTextPtr(u.Notes)
}

func (h *PropertyHandler) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.properties.ListProperties(r.Context())
	if err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) HandleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var p models.Property
	if err := decodeJSON(r, &p); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	cleanProperty(&p)
	if err := validation.ValidateStruct(p); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	p.ID = 0

	if err := h.properties.CreateProperty(r.Context(), &p); err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) HandleGetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.properties.GetProperty(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) HandleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var u models.PropertyUpdate
	if err := decodeJSON(r, &u); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	cleanPropertyUpdate(&u)
	if err := validation.ValidateStruct(u); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.properties.UpdateProperty(r.Context(), id, u)
	if err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) HandleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.properties.DeleteProperty(r.Context(), id); err != nil {
		sendServiceError(w, r, err, msgPropertyNotFound)
		return
	}
	logger.FromContext(r.Context()).Info("Property removed via API", "propertyID", id)
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
