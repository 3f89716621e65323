package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/models"
	"github.com/username/galfin/src/services"
	"github.com/username/galfin/src/utils"
)

type ParameterHandler struct {
	parameterService *services.ParameterService
}

func NewParameterHandler(service *services.ParameterService) *ParameterHandler {
	return &ParameterHandler{parameterService: service}
}

func (h *ParameterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params, err := h.parameterService.GetAll()
	if err != nil {
		logger.L.Error("Failed to list parameters", "error", err)
		utils.SendJSONError(w, "Failed to retrieve parameters", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, params, http.StatusOK)
}

func (h *ParameterHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var params []models.Parameter
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.parameterService.Upsert(params)
	if err != nil {
		logger.L.Error("Failed to upsert parameters", "error", err)
		utils.SendJSONError(w, "Failed to save parameters", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, map[string]int{"updated": updated}, http.StatusOK)
}
