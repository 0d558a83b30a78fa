package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOwnerOrdersQueryHandler reads an owner's orders straight from the
// database, bypassing the aggregate. The read side needs no invariants, so it
// projects rows directly into responses.
type GetOwnerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOwnerOrdersQueryHandler creates a handler for owner order listings.
func NewGetOwnerOrdersQueryHandler(db *gorm.DB) GetOwnerOrdersQueryHandler {
	return GetOwnerOrdersQueryHandler{db: db}
}

// Handle executes the query. Newest orders come first so clients see their
// latest submission at the top. An owner with no orders gets an empty slice,
// not an error.
func (h GetOwnerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOwnerOrdersQuery,
) ([]GetOwnerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOwnerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_name,
			package_details,
			delivery_address,
			status,
			cms_status,
			wms_status,
			ros_status,
			created_at
		FROM orders
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`, query.OwnerID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var clientName, packageDetails, deliveryAddress string
		var status, cmsStatus, wmsStatus, rosStatus int
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&clientName,
			&packageDetails,
			&deliveryAddress,
			&status,
			&cmsStatus,
			&wmsStatus,
			&rosStatus,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetOwnerOrdersQueryResponse{
			ID:              orderID,
			ClientName:      clientName,
			PackageDetails:  packageDetails,
			DeliveryAddress: deliveryAddress,
			Status:          order.Status(status).String(),
			CmsStatus:       order.LegStatus(cmsStatus).String(),
			WmsStatus:       order.LegStatus(wmsStatus).String(),
			RosStatus:       order.LegStatus(rosStatus).String(),
			CreatedAt:       createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
