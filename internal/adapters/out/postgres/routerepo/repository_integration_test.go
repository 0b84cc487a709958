package routerepo_test

import (
	"context"
	"testing"
	"time"

	"routetracker/internal/adapters/out/postgres"
	"routetracker/internal/adapters/out/postgres/postgrestest"
	"routetracker/internal/adapters/out/postgres/routerepo"
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

type RouteRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *routerepo.GormRouteRepository
	tracker    *MockMutationTracker
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := postgrestest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.Require().NoError(postgres.Migrate(database.DB))
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.tracker = new(MockMutationTracker)
	suite.repository = routerepo.NewGormRouteRepository(suite.database.DB, suite.tracker)
}

func (suite *RouteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func mutationOf(entity realtime.EntityKind, kind realtime.MutationKind) func(realtime.Mutation) bool {
	return func(m realtime.Mutation) bool {
		return m.Entity == entity && m.Kind == kind
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAdd_AssignsIDAndTracksCreation() {
	ctx := context.Background()
	r, err := route.NewRoute("North loop", "Ann")
	suite.Require().NoError(err)
	suite.tracker.On("TrackMutation", mock.MatchedBy(mutationOf(realtime.EntityRoute, realtime.MutationCreated))).Once()

	suite.Require().NoError(suite.repository.Add(ctx, r))

	suite.True(r.ID().IsAssigned())
	suite.False(r.CreatedAt().IsZero())
	suite.Equal(r.CreatedAt(), r.UpdatedAt())

	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal("North loop", loaded.Name())
	suite.Equal("Ann", loaded.DriverName())
	suite.Equal(route.Planned, loaded.Status())
	suite.True(r.CreatedAt().Equal(loaded.CreatedAt()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndRefreshesUpdatedAt() {
	ctx := context.Background()
	r, _ := route.NewRoute("North loop", "Ann")
	suite.tracker.On("TrackMutation", mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, r))
	created := r.UpdatedAt()

	suite.Require().NoError(r.ChangeStatus(route.InProgress))
	suite.Require().NoError(suite.repository.Update(ctx, r))

	suite.True(r.UpdatedAt().After(created))
	loaded, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(route.InProgress, loaded.Status())
	suite.True(loaded.UpdatedAt().Equal(r.UpdatedAt()))

	suite.tracker.AssertCalled(suite.T(), "TrackMutation", mock.MatchedBy(mutationOf(realtime.EntityRoute, realtime.MutationUpdated)))
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_MissingRoute() {
	r, err := route.RestoreRoute(999, "Ghost", "Nobody", route.Planned, time.Now(), time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), r)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackMutation", mock.Anything)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), 12345)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.Contains(err.Error(), "route 12345")
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetForUpdate() {
	ctx := context.Background()
	r, _ := route.NewRoute("North loop", "Ann")
	suite.tracker.On("TrackMutation", mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, r))

	loaded, err := suite.repository.GetForUpdate(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(r.Name(), loaded.Name())

	_, err = suite.repository.GetForUpdate(ctx, r.ID()+1)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetForUpdate(ctx, 0)
	suite.Error(err)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	r, _ := route.NewRoute("North loop", "Ann")
	suite.tracker.On("TrackMutation", mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, r))

	suite.Require().NoError(suite.repository.Delete(ctx, r))

	_, err := suite.repository.Get(ctx, r.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertCalled(suite.T(), "TrackMutation", mock.MatchedBy(func(m realtime.Mutation) bool {
		return m.Kind == realtime.MutationDeleted && m.ID == r.ID()
	}))

	suite.ErrorIs(suite.repository.Delete(ctx, r), errs.ErrObjectNotFound)
}

func TestRouteRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RouteRepositoryIntegrationTestSuite))
}
