package repairlogrepo_test

import (
	"context"
	"testing"
	"time"

	"bikeshare/internal/adapters/out/postgres/repairlogrepo"
	"bikeshare/internal/core/domain/model/breakdown"
	"bikeshare/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var epoch = time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

// RepairLogRepositoryIntegrationTestSuite tests GormRepairLogRepository against PostgreSQL.
type RepairLogRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *repairlogrepo.GormRepairLogRepository
}

func (suite *RepairLogRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&repairlogrepo.RepairDTO{}))
}

func (suite *RepairLogRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE repair_log").Error)
	suite.repository = repairlogrepo.NewGormRepairLogRepository(suite.db)
}

func (suite *RepairLogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RepairLogRepositoryIntegrationTestSuite) TestAppend_RoundTrip() {
	ctx := context.Background()
	repair := suite.repair("E-1", 0, breakdown.BrokenChain, breakdown.Battery)

	suite.Require().NoError(suite.repository.Append(ctx, repair))

	history, err := suite.repository.ListByBicycle(ctx, kernel.MustBicycleID("E-1"))
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)

	got := history[0]
	suite.True(got.Report.ID().IsEqual(repair.Report.ID()))
	suite.Equal([]breakdown.Cause{breakdown.BrokenChain, breakdown.Battery}, got.Report.Causes())
	suite.Equal("성복동", got.Report.OriginStation().String())
	suite.True(got.Report.IsElectric())
	suite.True(got.Report.ReportedAt().Equal(repair.Report.ReportedAt()))
	suite.True(got.StartedAt.Equal(repair.StartedAt))
	suite.True(got.CompletedAt.Equal(repair.CompletedAt))
	suite.Equal(21*time.Second, got.Duration)
}

func (suite *RepairLogRepositoryIntegrationTestSuite) TestAppend_DuplicateReportFails() {
	ctx := context.Background()
	repair := suite.repair("B-1", 0, breakdown.FlatTire)

	suite.Require().NoError(suite.repository.Append(ctx, repair))
	suite.Require().Error(suite.repository.Append(ctx, repair))
}

func (suite *RepairLogRepositoryIntegrationTestSuite) TestAppend_RejectsZeroRepair() {
	suite.Require().ErrorIs(suite.repository.Append(context.Background(), breakdown.Repair{}),
		breakdown.ErrReportIsNotConstructed)
}

func (suite *RepairLogRepositoryIntegrationTestSuite) TestListByBicycle_OldestFirstAndFiltered() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Append(ctx, suite.repair("B-1", 2, breakdown.Other)))
	suite.Require().NoError(suite.repository.Append(ctx, suite.repair("B-1", 1, breakdown.FlatTire)))
	suite.Require().NoError(suite.repository.Append(ctx, suite.repair("B-2", 0, breakdown.BrakeIssue)))

	history, err := suite.repository.ListByBicycle(ctx, kernel.MustBicycleID("B-1"))
	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal([]breakdown.Cause{breakdown.FlatTire}, history[0].Report.Causes())
	suite.Equal([]breakdown.Cause{breakdown.Other}, history[1].Report.Causes())

	none, err := suite.repository.ListByBicycle(ctx, kernel.MustBicycleID("B-9"))
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)
}

func (suite *RepairLogRepositoryIntegrationTestSuite) TestDeleteByBicycle() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Append(ctx, suite.repair("B-1", 0, breakdown.Other)))
	suite.Require().NoError(suite.repository.Append(ctx, suite.repair("B-2", 0, breakdown.Other)))

	suite.Require().NoError(suite.repository.DeleteByBicycle(ctx, kernel.MustBicycleID("B-1")))

	gone, err := suite.repository.ListByBicycle(ctx, kernel.MustBicycleID("B-1"))
	suite.Require().NoError(err)
	suite.Empty(gone)

	kept, err := suite.repository.ListByBicycle(ctx, kernel.MustBicycleID("B-2"))
	suite.Require().NoError(err)
	suite.Len(kept, 1)
}

// repair builds a history entry completing hoursLater hours after epoch.
func (suite *RepairLogRepositoryIntegrationTestSuite) repair(id string, hoursLater int, causes ...breakdown.Cause) breakdown.Repair {
	electric := id[0] == 'E'
	base := epoch.Add(time.Duration(hoursLater) * time.Hour)

	report, err := breakdown.NewReport(kernel.MustBicycleID(id), causes, kernel.MustStation("성복동"), electric, base)
	suite.Require().NoError(err)

	repair, err := breakdown.NewRepair(report, base.Add(time.Minute), base.Add(2*time.Minute), 21*time.Second)
	suite.Require().NoError(err)
	return repair
}

func TestRepairLogRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RepairLogRepositoryIntegrationTestSuite))
}
