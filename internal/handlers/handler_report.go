package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/contai-app/contai_backend/internal/dto"
	"github.com/contai-app/contai_backend/internal/middleware"
	"github.com/contai-app/contai_backend/internal/utils/accounting"

	"github.com/gin-gonic/gin"
)

// exportMonthStatement streams a CSV statement for one month: the launches
// ordered by date ascending, followed by the credit/debit totals and the
// balance computed over exactly the rows exported.
func (h *launchHandler) exportMonthStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for statement request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year and month are required"})
		return
	}

	launches, err := h.launchService.ListLaunchesByMonth(c.Request.Context(), params.Year, params.Month)
	if err != nil {
		logger.Error("Failed to list launches for statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		return
	}

	summary, err := accounting.SummarizeLaunches(launches)
	if err != nil {
		logger.Error("Failed to summarize launches for statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		return
	}

	filename := fmt.Sprintf("statement-%d-%02d.csv", params.Year, params.Month)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	records := [][]string{
		{"id", "description", "amount", "type", "date"},
	}
	for i := range launches {
		resp := dto.ToLaunchResponse(&launches[i])
		records = append(records, []string{
			strconv.FormatInt(resp.ID, 10),
			resp.Description,
			resp.Amount,
			string(resp.Type),
			resp.Date,
		})
	}
	records = append(records,
		[]string{"", "total_creditos", summary.TotalCredits.StringFixed(2), "", ""},
		[]string{"", "total_debitos", summary.TotalDebits.StringFixed(2), "", ""},
		[]string{"", "saldo", summary.Balance().StringFixed(2), "", ""},
	)

	if err := w.WriteAll(records); err != nil {
		logger.Error("Failed to write statement CSV", slog.String("error", err.Error()))
	}
}
