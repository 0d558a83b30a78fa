package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetOwnerOrdersQueryIsNotConstructed = errors.New(
		"GetOwnerOrdersQuery must be created via NewGetOwnerOrdersQuery constructor",
	)
	ErrOwnerIDIsRequiredForQuery = errs.NewValueIsRequiredError("ownerID")
)

// GetOwnerOrdersQuery retrieves all orders submitted by one owner.
// Backs the order listing endpoint: a client sees its own orders with the
// saga status and the per-leg confirmation state of each.
//
// Example:
//
//	query, err := NewGetOwnerOrdersQuery("client-42")
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetOwnerOrdersQuery struct { //nolint:recvcheck //using for validation
	ownerID string

	guard guard.ConstructorGuard
}

// NewGetOwnerOrdersQuery creates a query scoped to the given owner.
func NewGetOwnerOrdersQuery(ownerID string) (GetOwnerOrdersQuery, error) {
	ownerQuery := GetOwnerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := ownerQuery.setOwnerID(ownerID); err != nil {
		return GetOwnerOrdersQuery{}, err
	}

	return ownerQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOwnerOrdersQueryIsNotConstructed if validation fails.
func (q GetOwnerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOwnerOrdersQueryIsNotConstructed)
}

// OwnerID returns the owner whose orders are requested.
func (q GetOwnerOrdersQuery) OwnerID() string {
	return q.ownerID
}

func (q *GetOwnerOrdersQuery) setOwnerID(ownerID string) error {
	if ownerID == "" {
		return ErrOwnerIDIsRequiredForQuery
	}

	q.ownerID = ownerID
	return nil
}

// GetOwnerOrdersQueryResponse is the read-side projection of one order:
// the submitted payload plus the saga status and per-leg confirmation state,
// all statuses rendered as their wire strings.
type GetOwnerOrdersQueryResponse struct {
	ID              kernel.UUID
	ClientName      string
	PackageDetails  string
	DeliveryAddress string
	Status          string
	CmsStatus       string
	WmsStatus       string
	RosStatus       string
	CreatedAt       time.Time
}
