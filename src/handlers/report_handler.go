package handlers

import (
	"net/http"

	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/services"
	"github.com/username/galfin/src/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: service}
}

func reportFilterFromQuery(r *http.Request) services.ReportFilter {
	q := r.URL.Query()
	return services.ReportFilter{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		AccountID: q.Get("account_id"),
	}
}

// sendWithETag writes data as JSON with an ETag, answering 304 when the
// client already holds the current version.
func sendWithETag(w http.ResponseWriter, r *http.Request, data interface{}) {
	etag, err := utils.GenerateETag(data)
	if err == nil {
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	utils.SendJSON(w, data, http.StatusOK)
}

func (h *ReportHandler) HandleExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.ExpensesByCategory(reportFilterFromQuery(r))
	if err != nil {
		logger.L.Error("Failed to build expenses-by-category report", "error", err)
		utils.SendJSONError(w, "Failed to build report", http.StatusInternalServerError)
		return
	}
	sendWithETag(w, r, report)
}

func (h *ReportHandler) HandleIncomeVsExpenseByMonth(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.IncomeVsExpenseByMonth(reportFilterFromQuery(r))
	if err != nil {
		logger.L.Error("Failed to build income-vs-expense report", "error", err)
		utils.SendJSONError(w, "Failed to build report", http.StatusInternalServerError)
		return
	}
	sendWithETag(w, r, report)
}
