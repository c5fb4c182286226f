package v1

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pocketfolio/backend/internal/events"
	"github.com/pocketfolio/backend/internal/httputil"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/internal/storage"
)

// receiptSuffixes are the file types accepted for receipt uploads.
var receiptSuffixes = []string{".png", ".jpg", ".jpeg", ".webp", ".pdf"}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Offline queue
	{
		r.OPTIONS("/sync", OptionsTransactionSync)
		r.POST("/sync", SyncTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
		r.POST("/:id/receipt", UploadReceipt)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions/sync [options]
func OptionsTransactionSync(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
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

	err = models.DB.First(&models.Transaction{}, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transaction
// @Description	Creates a new transaction. When the database is unavailable, the transaction is queued and the request answered with 202.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Success		202			{object}	TransactionQueuedResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction := editable.model(me.UserID)

	err = models.DB.Create(&transaction).Error
	if err != nil {
		// The write failed because the database is unavailable, not
		// because the data is invalid. Queue the record and report
		// that it has been accepted for a later sync.
		if errors.Is(err, models.ErrGeneral) && queue != nil {
			key, queueErr := queue.Enqueue(editable.pending(me.UserID))
			if queueErr != nil {
				e := queueErr.Error()
				c.JSON(http.StatusInternalServerError, TransactionQueuedResponse{Error: &e})
				return
			}

			log.Info().Str("key", key).Msg("database unavailable, queued transaction")
			c.JSON(http.StatusAccepted, TransactionQueuedResponse{Data: &QueuedTransaction{Key: key}})
			return
		}

		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	bus.Publish(me.UserID, events.TopicTransactions, events.TopicDashboard)

	data := newTransaction(transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Sync queued transactions
// @Description	Replays the user's offline queue against the database
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	SyncResponse
// @Failure		500	{object}	SyncResponse
// @Router			/v1/transactions/sync [post]
func SyncTransactions(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	result, err := queue.Sync(c.Request.Context(), me.UserID)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, SyncResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SyncResponse{Data: &SyncResult{
		Synced: result.Synced,
		Failed: result.Failed,
	}})
}

// @Summary		Get transactions
// @Description	Returns a list of the user's transactions, most recent first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			type		query	string	false	"Filter by direction, income or expense"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			description	query	string	false	"Search for this text in the description"
// @Param			vendor		query	string	false	"Search for this text in the vendor"
// @Param			from		query	string	false	"Transactions on or after this date (YYYY-MM-DD)"
// @Param			to			query	string	false	"Transactions on or before this date (YYYY-MM-DD)"
// @Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
// @Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
// @Param			offset		query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &s})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	q := models.DB.
		Where("owner_id = ?", me.UserID).
		Order("date(date) DESC, datetime(created_at) DESC").
		Where(&filterModel, queryFields...)

	if filter.Type != "" {
		transactionType := models.TransactionType(filter.Type)
		if !transactionType.Valid() {
			s := models.ErrTransactionTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &s})
			return
		}
		q = q.Where("type = ?", transactionType)
	}

	if filter.Description != "" {
		q = q.Where("description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	}

	if filter.Vendor != "" {
		q = q.Where("vendor LIKE ?", fmt.Sprintf("%%%s%%", filter.Vendor))
	}

	if !filter.From.IsZero() {
		q = q.Where("date(date) >= date(?)", filter.From)
	}

	if !filter.To.IsZero() {
		q = q.Where("date(date) <= date(?)", filter.To)
	}

	if !filter.AmountLessOrEqual.IsZero() {
		q = q.Where("amount <= ?", filter.AmountLessOrEqual)
	}

	if !filter.AmountMoreOrEqual.IsZero() {
		q = q.Where("amount >= ?", filter.AmountMoreOrEqual)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Update an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(data.model(me.UserID)).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	bus.Publish(me.UserID, events.TopicTransactions, events.TopicDashboard)

	r := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &r})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction and its uploaded receipt
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
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

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if transaction.ReceiptURL != "" {
		err = files.Delete(transaction.ReceiptURL)
		if err != nil && !errors.Is(err, storage.ErrFileNotFound) {
			log.Warn().Err(err).Str("url", transaction.ReceiptURL).Msg("could not remove receipt")
		}
	}

	bus.Publish(me.UserID, events.TopicTransactions, events.TopicDashboard)

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Upload receipt
// @Description	Attaches a receipt file to the transaction, replacing an existing one
// @Tags			Transactions
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	TransactionResponse
// @Failure		400		{object}	TransactionResponse
// @Failure		404		{object}	TransactionResponse
// @Failure		500		{object}	TransactionResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			file	formData	file	true	"Receipt file"
// @Router			/v1/transactions/{id}/receipt [post]
func UploadReceipt(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ? AND owner_id = ?", uri.ID.UUID, me.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		s := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &s})
		return
	}

	if !slices.Contains(receiptSuffixes, strings.ToLower(filepath.Ext(header.Filename))) {
		s := fmt.Sprintf("%s: %s", errWrongFileSuffix.Error(), strings.Join(receiptSuffixes, ", "))
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &s})
		return
	}

	file, err := header.Open()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, TransactionResponse{Error: &s})
		return
	}
	defer file.Close()

	url, err := files.Save(storage.BucketReceipts, me.UserID, header.Filename, file)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, TransactionResponse{Error: &s})
		return
	}

	previous := transaction.ReceiptURL
	err = models.DB.Model(&transaction).Select("ReceiptURL").Updates(models.Transaction{ReceiptURL: url}).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	if previous != "" {
		err = files.Delete(previous)
		if err != nil && !errors.Is(err, storage.ErrFileNotFound) {
			log.Warn().Err(err).Str("url", previous).Msg("could not remove replaced receipt")
		}
	}

	bus.Publish(me.UserID, events.TopicTransactions)

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}
