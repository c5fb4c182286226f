package v1

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"

	"github.com/pocketfolio/backend/internal/httputil"
	"github.com/pocketfolio/backend/internal/models"
)

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/transactions", OptionsExportTransactions)
	r.GET("/transactions", ExportTransactions)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export/transactions [options]
func OptionsExportTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export transactions
// @Description	Returns all of the user's transactions as a CSV file, most recent first
// @Tags			Export
// @Produce		text/csv
// @Success		200
// @Failure		500	{object}	httpError
// @Param			filter	query	string	false	"Glob pattern matched against description and vendor, e.g. *rent*"
// @Router			/v1/export/transactions [get]
func ExportTransactions(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	err := models.DB.
		Where("owner_id = ?", me.UserID).
		Order("date(date) DESC, datetime(created_at) DESC").
		Find(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Category names for the export are resolved in one pass
	var categories []models.Category
	err = models.DB.Where("owner_id = ?", me.UserID).Find(&categories).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID.String()] = category.Name
	}

	pattern := c.Query("filter")

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="transactions-%s.csv"`, time.Now().UTC().Format("2006-01-02")))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write([]string{"Date", "Type", "Amount", "Description", "Category", "Vendor", "Payment Method"})

	for _, transaction := range transactions {
		if pattern != "" && !glob.Glob(pattern, transaction.Description) && !glob.Glob(pattern, transaction.Vendor) {
			continue
		}

		name := ""
		if transaction.CategoryID != nil {
			name = names[transaction.CategoryID.String()]
		}

		_ = writer.Write([]string{
			transaction.Date.Format("2006-01-02"),
			string(transaction.Type),
			transaction.Amount.String(),
			transaction.Description,
			name,
			transaction.Vendor,
			transaction.PaymentMethod,
		})
	}

	writer.Flush()
}
