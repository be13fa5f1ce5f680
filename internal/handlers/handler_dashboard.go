package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/contai-app/contai_backend/internal/apperrors"
	"github.com/contai-app/contai_backend/internal/core/domain"
	portssvc "github.com/contai-app/contai_backend/internal/core/ports/services"
	"github.com/contai-app/contai_backend/internal/dto"
	"github.com/contai-app/contai_backend/internal/middleware"
	"github.com/contai-app/contai_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// monthNames holds pt-BR month names indexed by month number minus one.
var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// dashboardHandler renders the server-side ledger UI.
type dashboardHandler struct {
	launchService portssvc.LaunchSvcFacade
}

func newDashboardHandler(ls portssvc.LaunchSvcFacade) *dashboardHandler {
	return &dashboardHandler{launchService: ls}
}

// registerDashboardRoutes registers the HTML dashboard and its form actions.
func registerDashboardRoutes(r *gin.Engine, launchService portssvc.LaunchSvcFacade) {
	h := newDashboardHandler(launchService)

	r.GET("/", h.showDashboard)
	ui := r.Group("/ui/launches")
	{
		ui.POST("", h.createFromForm)
		ui.POST("/:id", h.updateFromForm)
		ui.POST("/:id/delete", h.deleteFromForm)
	}
}

type yearOption struct {
	Value    int
	Selected bool
}

type monthOption struct {
	Value    int
	Name     string
	Selected bool
}

type launchRow struct {
	ID          int64
	Description string
	Amount      string
	Type        domain.LaunchType
	IsCredit    bool
	Date        string
}

type launchFormView struct {
	Action      string
	Description string
	Amount      string
	Type        string
	Date        string
	Editing     bool
	CancelURL   string
}

type dashboardView struct {
	Years         []yearOption
	Months        []monthOption
	SelectedYear  int
	SelectedMonth int
	Launches      []launchRow
	TotalCredits  string
	TotalDebits   string
	Balance       string
	Form          launchFormView
	Error         string
	StatementURL  string
}

// selectedPeriod resolves the year/month filter, defaulting to the current
// UTC month so the write and read paths agree on calendar fields.
func selectedPeriod(c *gin.Context) (int, int) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		year = y
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	return year, month
}

func dashboardURL(year, month int, errMsg string) string {
	u := fmt.Sprintf("/?year=%d&month=%d", year, month)
	if errMsg != "" {
		u += "&err=" + url.QueryEscape(errMsg)
	}
	return u
}

func (h *dashboardHandler) showDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month := selectedPeriod(c)

	launches, err := h.launchService.ListLaunchesByMonth(c.Request.Context(), year, month)
	if err != nil {
		logger.Error("Failed to load launches for dashboard", slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "Falha ao carregar os lançamentos")
		return
	}
	summary, err := h.launchService.GetMonthSummary(c.Request.Context(), year, month)
	if err != nil {
		logger.Error("Failed to load summary for dashboard", slog.String("error", err.Error()))
		c.String(http.StatusInternalServerError, "Falha ao carregar o resumo")
		return
	}

	// Newest entries first in the table; the API contract stays ascending.
	rows := make([]launchRow, 0, len(launches))
	sorted := make([]domain.Launch, len(launches))
	copy(sorted, launches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	for i := range sorted {
		launch := &sorted[i]
		rows = append(rows, launchRow{
			ID:          launch.ID,
			Description: launch.Description,
			Amount:      utils.FormatBRL(launch.Amount),
			Type:        launch.Type,
			IsCredit:    launch.Type == domain.Credit,
			Date:        launch.Date.UTC().Format("02/01/2006"),
		})
	}

	form := launchFormView{
		Action: "/ui/launches",
		Type:   string(domain.Debit),
		Date:   time.Now().UTC().Format("2006-01-02"),
	}
	if editParam := c.Query("edit"); editParam != "" {
		if editID, err := strconv.ParseInt(editParam, 10, 64); err == nil {
			editing, err := h.launchService.GetLaunchByID(c.Request.Context(), editID)
			if err == nil {
				form = launchFormView{
					Action:      fmt.Sprintf("/ui/launches/%d", editing.ID),
					Description: editing.Description,
					Amount:      editing.Amount.StringFixed(2),
					Type:        string(editing.Type),
					Date:        editing.Date.UTC().Format("2006-01-02"),
					Editing:     true,
					CancelURL:   dashboardURL(year, month, ""),
				}
			} else if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Failed to load launch for editing", slog.String("error", err.Error()))
			}
		}
	}

	view := dashboardView{
		SelectedYear:  year,
		SelectedMonth: month,
		Launches:      rows,
		TotalCredits:  utils.FormatBRL(summary.TotalCredits),
		TotalDebits:   utils.FormatBRL(summary.TotalDebits),
		Balance:       utils.FormatBRL(summary.Balance()),
		Form:          form,
		Error:         c.Query("err"),
		StatementURL:  fmt.Sprintf("/launches/statement.csv?year=%d&month=%d", year, month),
	}
	currentYear := time.Now().UTC().Year()
	for offset := 0; offset < 5; offset++ {
		y := currentYear - offset
		view.Years = append(view.Years, yearOption{Value: y, Selected: y == year})
	}
	for m := 1; m <= 12; m++ {
		view.Months = append(view.Months, monthOption{Value: m, Name: monthNames[m-1], Selected: m == month})
	}

	c.HTML(http.StatusOK, "dashboard.html", view)
}

// formRedirectPeriod keeps the user on the month they were looking at after
// a form action.
func formRedirectPeriod(c *gin.Context) (int, int) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if y, err := strconv.Atoi(c.PostForm("year")); err == nil && y > 0 {
		year = y
	}
	if m, err := strconv.Atoi(c.PostForm("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	return year, month
}

func (h *dashboardHandler) createFromForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month := formRedirectPeriod(c)

	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Valor inválido"))
		return
	}
	req := dto.CreateLaunchRequest{
		Description: c.PostForm("description"),
		Amount:      amount,
		Type:        domain.LaunchType(c.PostForm("type")),
		Date:        c.PostForm("date"),
	}

	if _, err := h.launchService.CreateLaunch(c.Request.Context(), req); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Todos os campos são obrigatórios"))
			return
		}
		logger.Error("Failed to create launch from form", slog.String("error", err.Error()))
		c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Não foi possível salvar o lançamento"))
		return
	}

	c.Redirect(http.StatusSeeOther, dashboardURL(year, month, ""))
}

func (h *dashboardHandler) updateFromForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month := formRedirectPeriod(c)

	launchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Lançamento inválido"))
		return
	}
	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Valor inválido"))
		return
	}

	// The edit form always posts every field, so the patch carries them all.
	description := c.PostForm("description")
	launchType := domain.LaunchType(c.PostForm("type"))
	date := c.PostForm("date")
	req := dto.UpdateLaunchRequest{
		Description: &description,
		Amount:      &amount,
		Type:        &launchType,
		Date:        &date,
	}

	if _, err := h.launchService.UpdateLaunch(c.Request.Context(), launchID, req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Lançamento não encontrado"))
		case errors.Is(err, apperrors.ErrValidation):
			c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Todos os campos são obrigatórios"))
		default:
			logger.Error("Failed to update launch from form", slog.String("error", err.Error()))
			c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Não foi possível salvar o lançamento"))
		}
		return
	}

	c.Redirect(http.StatusSeeOther, dashboardURL(year, month, ""))
}

func (h *dashboardHandler) deleteFromForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, month := formRedirectPeriod(c)

	launchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Lançamento inválido"))
		return
	}

	if err := h.launchService.DeleteLaunch(c.Request.Context(), launchID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Lançamento não encontrado"))
			return
		}
		logger.Error("Failed to delete launch from form", slog.String("error", err.Error()))
		c.Redirect(http.StatusSeeOther, dashboardURL(year, month, "Não foi possível deletar o lançamento"))
		return
	}

	c.Redirect(http.StatusSeeOther, dashboardURL(year, month, ""))
}
