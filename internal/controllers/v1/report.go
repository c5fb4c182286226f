package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/backend/internal/httputil"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/internal/reports"
	"github.com/pocketfolio/backend/internal/types"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/dashboard", OptionsReport)
	r.GET("/dashboard", GetDashboard)

	r.OPTIONS("/monthly-trend", OptionsReport)
	r.GET("/monthly-trend", GetMonthlyTrend)

	r.OPTIONS("/category-distribution", OptionsReport)
	r.GET("/category-distribution", GetCategoryDistribution)
}

// Dashboard summarizes the user's finances for the landing view.
type Dashboard struct {
	Income   decimal.Decimal `json:"income" example:"3200"`      // Sum of all income transactions
	Expenses decimal.Decimal `json:"expenses" example:"2710.41"` // Sum of all expense transactions
	Balance  decimal.Decimal `json:"balance" example:"489.59"`   // Income minus expenses
	Recent   []Transaction   `json:"recent"`                     // The five most recent transactions
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`  // The dashboard summary
	Error *string    `json:"error"` // The error, if any occurred
}

type MonthlyTrendResponse struct {
	Data  []reports.TrendEntry `json:"data"`  // Income and expense totals per month, oldest first
	Error *string              `json:"error"` // The error, if any occurred
}

type CategoryDistributionResponse struct {
	Data  []reports.CategorySum `json:"data"`  // Expense totals per category, largest first
	Error *string               `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/dashboard [options]
func OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns income, expenses, balance and the most recent transactions, optionally restricted to a date range
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		400	{object}	DashboardResponse
// @Failure		500	{object}	DashboardResponse
// @Param			from	query	string	false	"Transactions on or after this date (YYYY-MM-DD)"
// @Param			to		query	string	false	"Transactions on or before this date (YYYY-MM-DD)"
// @Router			/v1/reports/dashboard [get]
func GetDashboard(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var dateRange QueryDateRange
	err := c.Bind(&dateRange)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{Error: &s})
		return
	}

	q := models.DB.Where("owner_id = ?", me.UserID)

	if !dateRange.From.IsZero() {
		q = q.Where("date(date) >= date(?)", dateRange.From)
	}

	if !dateRange.To.IsZero() {
		q = q.Where("date(date) <= date(?)", dateRange.To)
	}

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &s})
		return
	}

	totals := reports.Sum(transactions)

	recent := make([]Transaction, 0, 5)
	for _, transaction := range reports.Recent(transactions, 5) {
		recent = append(recent, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &Dashboard{
		Income:   totals.Income,
		Expenses: totals.Expenses,
		Balance:  totals.Balance,
		Recent:   recent,
	}})
}

// @Summary		Get monthly trend
// @Description	Returns income and expense totals per calendar month. Months without transactions are included with zero totals.
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	MonthlyTrendResponse
// @Failure		400		{object}	MonthlyTrendResponse
// @Failure		500		{object}	MonthlyTrendResponse
// @Param			months	query		int	false	"Number of months to include, ending with the current one. Defaults to 6."
// @Router			/v1/reports/monthly-trend [get]
func GetMonthlyTrend(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	months := 6
	if raw, ok := c.GetQuery("months"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 60 {
			s := errMonthsOutOfRange.Error()
			c.JSON(http.StatusBadRequest, MonthlyTrendResponse{Error: &s})
			return
		}
		months = parsed
	}

	to := types.MonthOf(time.Now().UTC())
	from := to.AddDate(0, -(months - 1))

	var transactions []models.Transaction
	err := models.DB.
		Where("owner_id = ?", me.UserID).
		Where("date(date) >= date(?)", from.Time()).
		Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlyTrendResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, MonthlyTrendResponse{
		Data: reports.MonthlyTrend(from, to, transactions),
	})
}

// @Summary		Get category distribution
// @Description	Returns expense totals per category for the requested date range, largest first
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	CategoryDistributionResponse
// @Failure		400	{object}	CategoryDistributionResponse
// @Failure		500	{object}	CategoryDistributionResponse
// @Param			from	query	string	false	"Transactions on or after this date (YYYY-MM-DD)"
// @Param			to		query	string	false	"Transactions on or before this date (YYYY-MM-DD)"
// @Router			/v1/reports/category-distribution [get]
func GetCategoryDistribution(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var dateRange QueryDateRange
	err := c.Bind(&dateRange)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoryDistributionResponse{Error: &s})
		return
	}

	q := models.DB.
		Where("owner_id = ?", me.UserID).
		Where("type = ?", models.TransactionExpense)

	if !dateRange.From.IsZero() {
		q = q.Where("date(date) >= date(?)", dateRange.From)
	}

	if !dateRange.To.IsZero() {
		q = q.Where("date(date) <= date(?)", dateRange.To)
	}

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryDistributionResponse{Error: &s})
		return
	}

	var categories []models.Category
	err = models.DB.Where("owner_id = ?", me.UserID).Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryDistributionResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryDistributionResponse{
		Data: reports.CategoryDistribution(transactions, categories),
	})
}
