package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetOwnerOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOwnerOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOwnerOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) addOrder(ownerID string) *order.Order {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), ownerID, "Acme Corp", "1 pallet", "8 Harbour Lane",
	)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetOwnerOrdersQuery("client-1")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyOwnersOrders() {
	mine := suite.addOrder("client-1")
	suite.addOrder("client-2")

	query, err := queries.NewGetOwnerOrdersQuery("client-1")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(mine.ID()))
	suite.Equal("Acme Corp", result[0].ClientName)
	suite.Equal("1 pallet", result[0].PackageDetails)
	suite.Equal("8 Harbour Lane", result[0].DeliveryAddress)
	suite.Equal("SUBMITTED", result[0].Status)
	suite.Equal("PENDING", result[0].CmsStatus)
	suite.Equal("PENDING", result[0].WmsStatus)
	suite.Equal("PENDING", result[0].RosStatus)
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) TestHandle_ProjectsSagaProgress() {
	aggregate := suite.addOrder("client-1")

	err := aggregate.ConfirmLeg(order.CMS)
	suite.Require().NoError(err)
	err = aggregate.ConfirmLeg(order.ROS)
	suite.Require().NoError(err)
	err = suite.orderRepo.Update(context.Background(), aggregate)
	suite.Require().NoError(err)

	query, err := queries.NewGetOwnerOrdersQuery("client-1")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("SUBMITTED", result[0].Status)
	suite.Equal("CONFIRMED", result[0].CmsStatus)
	suite.Equal("PENDING", result[0].WmsStatus)
	suite.Equal("CONFIRMED", result[0].RosStatus)
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) TestHandle_NewestFirst() {
	older := suite.addOrder("client-1")
	newer := suite.addOrder("client-1")

	err := suite.db.Exec(
		"UPDATE orders SET created_at = created_at - interval '1 hour' WHERE id = ?",
		older.ID().Bytes(),
	).Error
	suite.Require().NoError(err)

	query, err := queries.NewGetOwnerOrdersQuery("client-1")
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(newer.ID()))
	suite.True(result[1].ID.IsEqual(older.ID()))
}

func (suite *GetOwnerOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOwnerOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOwnerOrdersQuery constructor")
}

func TestGetOwnerOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOwnerOrdersQueryHandlerTestSuite))
}
