package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/models"
	"github.com/username/galfin/src/services"
	"github.com/username/galfin/src/utils"
)

type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: service}
}

func (h *AccountHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.List()
	if err != nil {
		logger.L.Error("Failed to list accounts", "error", err)
		utils.SendJSONError(w, "Failed to retrieve accounts", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, accounts, http.StatusOK)
}

func (h *AccountHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	account, err := h.accountService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			utils.SendJSONError(w, "Account not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to get account", "accountID", id, "error", err)
		utils.SendJSONError(w, "Failed to retrieve account", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, account, http.StatusOK)
}

// HandleUpsert creates or replaces an account row. Accounts auto-created by
// an import carry only their number; this is how they get a name.
func (h *AccountHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	account.AccountID = strings.TrimSpace(account.AccountID)
	if account.AccountID == "" {
		utils.SendJSONError(w, "account_id is required", http.StatusBadRequest)
		return
	}

	if err := h.accountService.Upsert(account); err != nil {
		logger.L.Error("Failed to upsert account", "accountID", account.AccountID, "error", err)
		utils.SendJSONError(w, "Failed to save account", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, account, http.StatusOK)
}

func (h *AccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.accountService.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			utils.SendJSONError(w, "Account not found", http.StatusNotFound)
		case errors.Is(err, services.ErrAccountInUse):
			utils.SendJSONError(w, "Account still has transactions and cannot be deleted", http.StatusConflict)
		default:
			logger.L.Error("Failed to delete account", "accountID", id, "error", err)
			utils.SendJSONError(w, "Failed to delete account", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
