package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrAmountNotPositive      = errors.New("the amount must be larger than zero")
	ErrTransactionTypeInvalid = errors.New("the transaction type must be income or expense")
)

var (
	ErrCategoryNameNotUnique = errors.New("the category name must be unique per user")
	ErrCategoryIconInvalid   = errors.New("the category icon is not a supported icon identifier")
	ErrCategoryTypeInvalid   = errors.New("the category type must be income or expense")
)

var (
	ErrAccountNameNotUnique = errors.New("the account name must be unique per user")
	ErrAccountTypeInvalid   = errors.New("the account type is not a supported account type")
)

var ErrBudgetPeriodInvalid = errors.New("the budget end date must not be before its start date")

var (
	ErrFrequencyInvalid         = errors.New("the frequency must be daily, weekly, monthly or yearly")
	ErrRecurrenceEndBeforeStart = errors.New("the end date of a recurring transaction must not be before its start date")
)

var (
	ErrSubscriptionEndpointNotSet    = errors.New("the push subscription endpoint must be set")
	ErrSubscriptionEndpointNotUnique = errors.New("this push subscription is already registered")
)

var (
	ErrEmailNotUnique     = errors.New("a user with this email address already exists")
	ErrCredentialsInvalid = errors.New("the email address or password is incorrect")
	ErrReferencedResource = errors.New("the referenced resource does not exist or does not belong to you")
)
