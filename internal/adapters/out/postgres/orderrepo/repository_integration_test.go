package orderrepo_test

import (
	"context"
	"testing"

	"routetracker/internal/adapters/out/postgres"
	"routetracker/internal/adapters/out/postgres/orderrepo"
	"routetracker/internal/adapters/out/postgres/postgrestest"
	"routetracker/internal/adapters/out/postgres/routerepo"
	"routetracker/internal/core/domain/model/kernel"
	"routetracker/internal/core/domain/model/order"
	"routetracker/internal/core/domain/model/route"
	"routetracker/internal/core/realtime"
	"routetracker/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockMutationTracker struct {
	mock.Mock
}

func (m *MockMutationTracker) TrackMutation(mutation realtime.Mutation) {
	m.Called(mutation)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockMutationTracker
	route      *route.Route
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.Require().NoError(postgres.Migrate(database.DB))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())

	routeTracker := new(MockMutationTracker)
	routeTracker.On("TrackMutation", mock.Anything)
	r, err := route.NewRoute("North loop", "Ann")
	suite.Require().NoError(err)
	suite.Require().NoError(routerepo.NewGormRouteRepository(suite.database.DB, routeTracker).Add(ctx, r))
	suite.route = r

	suite.tracker = new(MockMutationTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(code string) *order.Order {
	o, err := order.NewOrder(suite.route.ID(), code, "Bob", "1 Main St")
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	o := suite.newOrder("X1")
	suite.tracker.On("TrackMutation", mock.MatchedBy(func(m realtime.Mutation) bool {
		return m.Entity == realtime.EntityOrder && m.Kind == realtime.MutationCreated && m.RouteID == suite.route.ID()
	})).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.True(o.ID().IsAssigned())
	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("X1", loaded.Code())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(suite.route.ID(), loaded.RouteID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateCode_Conflict() {
	ctx := context.Background()
	suite.tracker.On("TrackMutation", mock.Anything).Once()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("X1")))

	err := suite.repository.Add(ctx, suite.newOrder("X1"))

	suite.ErrorIs(err, errs.ErrConflict)
	suite.Contains(err.Error(), "X1")
	suite.tracker.AssertNumberOfCalls(suite.T(), "TrackMutation", 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownRoute_NotFound() {
	o, err := order.NewOrder(suite.route.ID()+100, "X9", "Bob", "1 Main St")
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), o)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackMutation", mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Status() {
	ctx := context.Background()
	suite.tracker.On("TrackMutation", mock.Anything)
	o := suite.newOrder("X1")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.ChangeStatus(order.Assigned))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, loaded.Status())
	suite.tracker.AssertCalled(suite.T(), "TrackMutation", mock.MatchedBy(func(m realtime.Mutation) bool {
		return m.Kind == realtime.MutationUpdated && m.Snapshot.(realtime.OrderPayload).Status == "ASSIGNED"
	}))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByRoute_OrderedByID() {
	ctx := context.Background()
	suite.tracker.On("TrackMutation", mock.Anything)
	first := suite.newOrder("X1")
	second := suite.newOrder("X2")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	orders, err := suite.repository.GetAllByRoute(ctx, suite.route.ID())

	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.True(first.IsEqual(orders[0]))
	suite.True(second.IsEqual(orders[1]))

	none, err := suite.repository.GetAllByRoute(ctx, kernel.ID(suite.route.ID()+100))
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate() {
	ctx := context.Background()
	suite.tracker.On("TrackMutation", mock.Anything)
	o := suite.newOrder("X1")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(o.IsEqual(loaded))
	suite.Equal(order.Pending, loaded.Status())

	_, err = suite.repository.GetForUpdate(ctx, o.ID()+1)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	suite.tracker.On("TrackMutation", mock.Anything)
	o := suite.newOrder("X1")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o))

	_, err := suite.repository.Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.ErrorIs(suite.repository.Delete(ctx, o), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRouteDeletionCascadesInDatabase() {
	ctx := context.Background()
	suite.tracker.On("TrackMutation", mock.Anything)
	o := suite.newOrder("X1")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.database.DB.Exec("DELETE FROM routes WHERE id = ?", suite.route.ID().Int64()).Error)

	_, err := suite.repository.Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
