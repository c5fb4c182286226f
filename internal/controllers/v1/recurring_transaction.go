package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketfolio/backend/internal/events"
	"github.com/pocketfolio/backend/internal/httputil"
	"github.com/pocketfolio/backend/internal/models"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringTransactionList)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransaction)
	}

	// Recurring transaction with ID
	{
		r.OPTIONS("/:id", OptionsRecurringTransactionDetail)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring-transactions [options]
func OptionsRecurringTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [options]
func OptionsRecurringTransactionDetail(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.RecurringTransaction{}, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create recurring transaction
// @Description	Creates a new recurring transaction template. Occurrences are not materialized.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		201						{object}	RecurringTransactionResponse
// @Failure		400						{object}	RecurringTransactionResponse
// @Failure		500						{object}	RecurringTransactionResponse
// @Param			recurringTransaction	body		RecurringTransactionEditable	true	"RecurringTransaction"
// @Router			/v1/recurring-transactions [post]
func CreateRecurringTransaction(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var editable RecurringTransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	recurring := editable.model(me.UserID)

	err = models.DB.Create(&recurring).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &e})
		return
	}

	bus.Publish(me.UserID, events.TopicRecurring)

	data := newRecurringTransactionResource(recurring)
	c.JSON(http.StatusCreated, RecurringTransactionResponse{Data: &data})
}

// @Summary		Get recurring transactions
// @Description	Returns a list of the user's recurring transactions
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionListResponse
// @Failure		500	{object}	RecurringTransactionListResponse
// @Router			/v1/recurring-transactions [get]
func GetRecurringTransactions(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var recurring []models.RecurringTransaction
	err := models.DB.
		Where("owner_id = ?", me.UserID).
		Order("date(start_date) DESC").
		Find(&recurring).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{Error: &s})
		return
	}

	data := make([]RecurringTransaction, 0, len(recurring))
	for _, template := range recurring {
		data = append(data, newRecurringTransactionResource(template))
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{Data: data})
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionResponse
// @Failure		400	{object}	RecurringTransactionResponse
// @Failure		404	{object}	RecurringTransactionResponse
// @Failure		500	{object}	RecurringTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [get]
func GetRecurringTransaction(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	data := newRecurringTransactionResource(recurring)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Update recurring transaction
// @Description	Update an existing recurring transaction. Only values to be updated need to be specified.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		200						{object}	RecurringTransactionResponse
// @Failure		400						{object}	RecurringTransactionResponse
// @Failure		404						{object}	RecurringTransactionResponse
// @Failure		500						{object}	RecurringTransactionResponse
// @Param			id						path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recurringTransaction	body		RecurringTransactionEditable	true	"RecurringTransaction"
// @Router			/v1/recurring-transactions/{id} [patch]
func UpdateRecurringTransaction(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	var data RecurringTransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	err = models.DB.Model(&recurring).Select("", updateFields...).Updates(data.model(me.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{Error: &s})
		return
	}

	bus.Publish(me.UserID, events.TopicRecurring)

	r := newRecurringTransactionResource(recurring)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &r})
}

// @Summary		Delete recurring transaction
// @Description	Deletes a recurring transaction
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [delete]
func DeleteRecurringTransaction(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&recurring).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	bus.Publish(me.UserID, events.TopicRecurring)

	c.JSON(http.StatusNoContent, nil)
}
