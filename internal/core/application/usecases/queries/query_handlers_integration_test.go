package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tracker/internal/adapters/out/postgres/orderrepo"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopAggregateTracker satisfies the repository's tracker dependency.
// Query tests only use the repository for seeding, so nothing is tracked.
type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderQueryHandlersIntegrationTestSuite exercises the read-side handlers
// against a real PostgreSQL schema, seeding rows through the repository so
// the raw SQL is tested against what the write side actually persists.
type OrderQueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	trackHandler  queries.TrackOrderQueryHandler
	getHandler    queries.GetOrderQueryHandler
	listHandler   queries.GetOrdersByStatusQueryHandler
	codeSerial    int
}

func (suite *OrderQueryHandlersIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusUpdateDTO{}))

	suite.trackHandler = queries.NewTrackOrderQueryHandler(db)
	suite.getHandler = queries.NewGetOrderQueryHandler(db)
	suite.listHandler = queries.NewGetOrdersByStatusQueryHandler(db)
}

func (suite *OrderQueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, status_updates").Error)
}

func (suite *OrderQueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueryHandlersIntegrationTestSuite) TestTrackOrder_ReturnsOrderWithFullTimeline() {
	details := order.Details{
		CustomerName:    "Amina Yusuf",
		CustomerPhone:   "+2348012345678",
		PickupAddress:   "12 Market Rd",
		DeliveryAddress: "4 Harbor St",
		Items:           "2x jollof rice",
		Weight:          "1.5kg",
		Instructions:    "ring twice",
		PartnerName:     "Tunde",
		PartnerPhone:    "+2348098765432",
		ETA:             "25 min",
	}
	base := time.Now().UTC().Truncate(time.Second)
	seeded := suite.seedOrder(details, []order.Status{order.PickedUp, order.OnTheWay}, base)

	query, err := queries.NewTrackOrderQuery(seeded.Code().String())
	suite.Require().NoError(err)

	result, err := suite.trackHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(seeded.ID().IsEqual(result.ID))
	suite.Equal(seeded.Code().String(), result.Code)
	suite.Equal("Amina Yusuf", result.CustomerName)
	suite.Equal("+2348012345678", result.CustomerPhone)
	suite.Equal("12 Market Rd", result.PickupAddress)
	suite.Equal("4 Harbor St", result.DeliveryAddress)
	suite.Equal("2x jollof rice", result.Items)
	suite.Equal("1.5kg", result.Weight)
	suite.Equal("ring twice", result.Instructions)
	suite.Equal("Tunde", result.PartnerName)
	suite.Equal("+2348098765432", result.PartnerPhone)
	suite.Equal("25 min", result.ETA)
	suite.Equal("on_the_way", result.Status)

	suite.Require().Len(result.StatusHistory, 2)
	suite.Equal("picked_up", result.StatusHistory[0].Status)
	suite.Equal("package", result.StatusHistory[0].Icon)
	suite.Equal("on_the_way", result.StatusHistory[1].Status)
	suite.Equal("truck", result.StatusHistory[1].Icon)
	suite.True(result.StatusHistory[0].Timestamp.Equal(base))
	suite.True(result.StatusHistory[1].Timestamp.Equal(base.Add(time.Minute)))
}

func (suite *OrderQueryHandlersIntegrationTestSuite) TestTrackOrder_UnknownCode_ReturnsNotFoundError() {
	query, err := queries.NewTrackOrderQuery("000000")
	suite.Require().NoError(err)

	_, err = suite.trackHandler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderQueryHandlersIntegrationTestSuite) TestGetOrder_ReturnsOrderByID() {
	seeded := suite.seedOrder(order.Details{CustomerName: "Test Customer"}, nil, time.Now().UTC())

	query, err := queries.NewGetOrderQuery(seeded.ID())
	suite.Require().NoError(err)

	result, err := suite.getHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(seeded.ID().IsEqual(result.ID))
	suite.Equal(seeded.Code().String(), result.Code)
	suite.Equal("pending", result.Status)
	suite.Empty(result.StatusHistory)
}

func (suite *OrderQueryHandlersIntegrationTestSuite) TestGetOrder_UnknownID_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderQueryHandlersIntegrationTestSuite) TestGetOrdersByStatus_FiltersToRequestedStatus() {
	now := time.Now().UTC().Truncate(time.Second)
	suite.seedOrder(order.Details{}, nil, now)
	first := suite.seedOrder(order.Details{}, []order.Status{order.PickedUp}, now)
	second := suite.seedOrder(order.Details{}, []order.Status{order.PickedUp}, now)

	query, err := queries.NewGetOrdersByStatusQuery(order.PickedUp)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)
	codes := []string{result[0].Code, result[1].Code}
	suite.ElementsMatch(codes, []string{first.Code().String(), second.Code().String()})
	for _, summary := range result {
		suite.Equal("picked_up", summary.Status)
	}
}

func (suite *OrderQueryHandlersIntegrationTestSuite) TestGetOrders_NoFilter_ReturnsNewestFirst() {
	now := time.Now().UTC().Truncate(time.Second)
	oldest := suite.seedOrder(order.Details{}, nil, now)
	middle := suite.seedOrder(order.Details{}, nil, now)
	newest := suite.seedOrder(order.Details{}, nil, now)

	// Pin creation times so the sort is deterministic.
	for i, seeded := range []*order.Order{oldest, middle, newest} {
		err := suite.db.Exec("UPDATE orders SET created_at = ? WHERE id = ?",
			now.Add(time.Duration(i)*time.Hour), seeded.ID().Bytes()).Error
		suite.Require().NoError(err)
	}

	query, err := queries.NewGetAllOrdersQuery()
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 3)
	suite.Equal(newest.Code().String(), result[0].Code)
	suite.Equal(middle.Code().String(), result[1].Code)
	suite.Equal(oldest.Code().String(), result[2].Code)
}

func (suite *OrderQueryHandlersIntegrationTestSuite) TestGetOrders_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetAllOrdersQuery()
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.NotNil(result)
	suite.Empty(result)
}

// seedOrder persists an order through the repository, walking it through the
// given transitions one minute apart starting at base.
func (suite *OrderQueryHandlersIntegrationTestSuite) seedOrder(
	details order.Details, transitions []order.Status, base time.Time,
) *order.Order {
	suite.codeSerial++
	code, err := kernel.NewTrackingCode(fmt.Sprintf("QRY%04d", suite.codeSerial))
	suite.Require().NoError(err)

	seeded, err := order.NewOrder(kernel.NewUUID(), code, details)
	suite.Require().NoError(err)

	for i, next := range transitions {
		err = seeded.ChangeStatus(next, base.Add(time.Duration(i)*time.Minute), true)
		suite.Require().NoError(err)
	}

	repo := orderrepo.NewGormOrderRepository(suite.db, noopAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), seeded))
	return seeded
}

func TestOrderQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueryHandlersIntegrationTestSuite))
}
