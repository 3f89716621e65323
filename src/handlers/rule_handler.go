package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/username/galfin/src/categorization"
	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/models"
	"github.com/username/galfin/src/utils"
)

// RuleHandler manages the categorization rule file. The file is the source
// of truth; there is no rules table.
type RuleHandler struct {
	rulesPath string
}

func NewRuleHandler(rulesPath string) *RuleHandler {
	return &RuleHandler{rulesPath: rulesPath}
}

func (h *RuleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rules, err := categorization.LoadRules(h.rulesPath)
	if err != nil {
		if errors.Is(err, categorization.ErrRulesFileInvalid) {
			logger.L.Error("Rules file is invalid", "path", h.rulesPath, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		logger.L.Error("Failed to load rules", "path", h.rulesPath, "error", err)
		utils.SendJSONError(w, "Failed to load categorization rules", http.StatusInternalServerError)
		return
	}
	if rules == nil {
		rules = []models.CategoryRule{}
	}
	utils.SendJSON(w, rules, http.StatusOK)
}

// HandleAppend adds one rule at the end of the file. Appending keeps every
// existing rule's priority, earlier rules still win.
func (h *RuleHandler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	var rule models.CategoryRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := categorization.AppendRule(h.rulesPath, rule); err != nil {
		if errors.Is(err, categorization.ErrRulesFileInvalid) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.L.Error("Failed to append rule", "path", h.rulesPath, "error", err)
		utils.SendJSONError(w, "Failed to save rule", http.StatusInternalServerError)
		return
	}
	logger.L.Info("Rule appended", "match", rule.Match, "category", rule.Category)
	w.WriteHeader(http.StatusCreated)
}

// HandleReplace rewrites the whole rule file, for reordering or bulk edits
// from the UI.
func (h *RuleHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	var rules []models.CategoryRule
	if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := categorization.SaveRules(h.rulesPath, rules); err != nil {
		logger.L.Error("Failed to save rules", "path", h.rulesPath, "error", err)
		utils.SendJSONError(w, "Failed to save rules", http.StatusInternalServerError)
		return
	}
	logger.L.Info("Rules file replaced", "count", len(rules))
	w.WriteHeader(http.StatusNoContent)
}
