package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pocketfolio/backend/internal/httputil"
	"github.com/pocketfolio/backend/internal/models"
	"github.com/pocketfolio/backend/internal/push"
)

// Budget usage thresholds that trigger a notification.
var (
	thresholdWarning  = decimal.NewFromInt(80)
	thresholdExceeded = decimal.NewFromInt(100)
)

// RegisterNotificationRoutes registers the routes for notifications with
// the RouterGroup that is passed.
func RegisterNotificationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/subscriptions", OptionsNotificationSubscriptions)
	r.POST("/subscriptions", CreateNotificationSubscription)
	r.DELETE("/subscriptions", DeleteNotificationSubscription)

	r.OPTIONS("/vapid-public-key", OptionsVAPIDPublicKey)
	r.GET("/vapid-public-key", GetVAPIDPublicKey)

	r.OPTIONS("/check-budgets", OptionsCheckBudgets)
	r.POST("/check-budgets", CheckBudgets)
}

type VAPIDPublicKeyResponse struct {
	Data string `json:"data"` // Public key the browser needs to create a push subscription
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications/vapid-public-key [options]
func OptionsVAPIDPublicKey(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get VAPID public key
// @Description	Returns the public key the browser needs to create a push subscription
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	VAPIDPublicKeyResponse
// @Router			/v1/notifications/vapid-public-key [get]
func GetVAPIDPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, VAPIDPublicKeyResponse{Data: vapidPublicKey})
}

// SubscriptionEditable is the push subscription document the browser
// produces when the user enables notifications.
type SubscriptionEditable struct {
	Endpoint string `json:"endpoint" example:"https://fcm.googleapis.com/fcm/send/..."` // Push service endpoint for this browser
	P256dh   string `json:"p256dh"`                                                     // Public key of the subscription
	Auth     string `json:"auth"`                                                       // Auth secret of the subscription
}

func (editable SubscriptionEditable) model(owner models.User) models.PushSubscription {
	return models.PushSubscription{
		OwnerID:  owner.ID,
		Endpoint: editable.Endpoint,
		P256dh:   editable.P256dh,
		Auth:     editable.Auth,
	}
}

type SubscriptionResponse struct {
	Data  *models.PushSubscription `json:"data"`  // The registered subscription
	Error *string                  `json:"error"` // The error, if any occurred
}

// BudgetAlert reports a budget that crossed a notification threshold.
type BudgetAlert struct {
	BudgetID string          `json:"budgetId"` // ID of the budget
	Name     string          `json:"name"`     // Name of the budget
	Spent    decimal.Decimal `json:"spent"`    // Amount spent in the period
	Amount   decimal.Decimal `json:"amount"`   // Spending limit of the budget
	Usage    decimal.Decimal `json:"usage"`    // Spent share of the limit in percent
	Exceeded bool            `json:"exceeded"` // True when the budget is fully used
}

type CheckBudgetsResponse struct {
	Data  []BudgetAlert `json:"data"`  // Budgets that crossed a threshold, one notification each
	Error *string       `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications/subscriptions [options]
func OptionsNotificationSubscriptions(c *gin.Context) {
	httputil.OptionsPostDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications/check-budgets [options]
func OptionsCheckBudgets(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Register push subscription
// @Description	Registers the browser's push subscription for budget notifications
// @Tags			Notifications
// @Accept			json
// @Produce		json
// @Success		201				{object}	SubscriptionResponse
// @Failure		400				{object}	SubscriptionResponse
// @Failure		500				{object}	SubscriptionResponse
// @Param			subscription	body		SubscriptionEditable	true	"Subscription"
// @Router			/v1/notifications/subscriptions [post]
func CreateNotificationSubscription(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var editable SubscriptionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	subscription := editable.model(models.User{DefaultModel: models.DefaultModel{ID: me.UserID}})

	err = models.DB.Create(&subscription).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, SubscriptionResponse{Data: &subscription})
}

// @Summary		Remove push subscription
// @Description	Removes the subscription with the endpoint given in the body
// @Tags			Notifications
// @Accept			json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			subscription	body	SubscriptionEditable	true	"Subscription, only the endpoint is used"
// @Router			/v1/notifications/subscriptions [delete]
func DeleteNotificationSubscription(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	var editable SubscriptionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var subscription models.PushSubscription
	err = models.DB.First(&subscription, "owner_id = ? AND endpoint = ?", me.UserID, editable.Endpoint).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&subscription).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Check budgets
// @Description	Evaluates the user's budgets whose period includes today and sends a push notification for every budget above 80% or at 100% of its limit
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	CheckBudgetsResponse
// @Failure		500	{object}	CheckBudgetsResponse
// @Router			/v1/notifications/check-budgets [post]
func CheckBudgets(c *gin.Context) {
	me, ok := owner(c)
	if !ok {
		return
	}

	today := time.Now().UTC()

	var budgets []models.Budget
	err := models.DB.
		Where("owner_id = ?", me.UserID).
		Where("date(start_date) <= date(?) AND date(end_date) >= date(?)", today, today).
		Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CheckBudgetsResponse{Error: &s})
		return
	}

	var subscriptions []models.PushSubscription
	err = models.DB.Where("owner_id = ?", me.UserID).Find(&subscriptions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CheckBudgetsResponse{Error: &s})
		return
	}

	hundred := decimal.NewFromInt(100)

	alerts := make([]BudgetAlert, 0)
	for _, budget := range budgets {
		if !budget.Amount.IsPositive() {
			continue
		}

		spent, err := budgetSpent(budget)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), CheckBudgetsResponse{Error: &s})
			return
		}

		usage := spent.Div(budget.Amount).Mul(hundred)
		if usage.LessThan(thresholdWarning) {
			continue
		}

		alert := BudgetAlert{
			BudgetID: budget.ID.String(),
			Name:     budget.Name,
			Spent:    spent,
			Amount:   budget.Amount,
			Usage:    usage.Round(1),
			Exceeded: usage.GreaterThanOrEqual(thresholdExceeded),
		}
		alerts = append(alerts, alert)

		if notifier == nil || len(subscriptions) == 0 {
			continue
		}

		payload := push.Payload{
			Title: fmt.Sprintf("Budget \"%s\" at %s%%", budget.Name, alert.Usage),
			Body:  fmt.Sprintf("You have spent %s of %s.", spent, budget.Amount),
			URL:   "/budgets",
		}
		if alert.Exceeded {
			payload.Title = fmt.Sprintf("Budget \"%s\" exceeded", budget.Name)
		}

		notifier.Broadcast(subscriptions, payload)
	}

	c.JSON(http.StatusOK, CheckBudgetsResponse{Data: alerts})
}
