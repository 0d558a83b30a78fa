// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// One row per order: the submitted payload, the saga status and the three
// per-leg statuses as columns, indexed for the owner listing and the overdue
// sweep.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID         string    `gorm:"index"`
	ClientName      string
	PackageDetails  string
	DeliveryAddress string
	Status          int `gorm:"index"`
	CmsStatus       int
	WmsStatus       int
	RosStatus       int
	CreatedAt       time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OwnerID:         aggregate.OwnerID(),
		ClientName:      aggregate.ClientName(),
		PackageDetails:  aggregate.PackageDetails(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Status:          int(aggregate.Status()),
		CmsStatus:       int(aggregate.LegStatus(order.CMS)),
		WmsStatus:       int(aggregate.LegStatus(order.WMS)),
		RosStatus:       int(aggregate.LegStatus(order.ROS)),
		CreatedAt:       aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// RestoreOrder validates the status columns, so a corrupted row surfaces as an
// error instead of an aggregate in an impossible state.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OwnerID,
		dto.ClientName,
		dto.PackageDetails,
		dto.DeliveryAddress,
		order.Status(dto.Status),
		map[order.Leg]order.LegStatus{
			order.CMS: order.LegStatus(dto.CmsStatus),
			order.WMS: order.LegStatus(dto.WmsStatus),
			order.ROS: order.LegStatus(dto.RosStatus),
		},
		dto.CreatedAt,
	)
}
