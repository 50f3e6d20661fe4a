package approvalrepo_test

import (
	"context"
	"sync"
	"testing"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/approvalrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type ApprovalRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	repository *approvalrepo.GormApprovalRepository
}

func (suite *ApprovalRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(postgres.Migrate(db))
}

func (suite *ApprovalRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db, "approvals"))
	suite.repository = approvalrepo.NewGormApprovalRepository(suite.db)
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	a := suite.addApproval(kernel.NewUUID(), kernel.NewUUID(), "")

	stored, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsPending())
	suite.Equal("manager", stored.ApprovalType())
	suite.Empty(stored.ApproverID())
	suite.True(stored.OrderID().IsEqual(a.OrderID()))
	suite.True(stored.StepID().IsEqual(a.StepID()))

	_, err = suite.repository.Get(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestUpdate_OnlyPendingRowsResolve() {
	ctx := context.Background()
	a := suite.addApproval(kernel.NewUUID(), kernel.NewUUID(), "manager-1")

	first, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Resolve("manager-1", approval.Approved, "looks fine"))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Resolve("manager-2", approval.Rejected, "too late"))
	err = suite.repository.Update(ctx, second)
	suite.ErrorIs(err, errs.ErrNotPending)

	stored, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(approval.Approved, stored.Status())
	suite.Equal("manager-1", stored.ApproverID())
	suite.Equal("looks fine", stored.Comments())
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestUpdate_ConcurrentResolutionsLetOneThrough() {
	ctx := context.Background()
	a := suite.addApproval(kernel.NewUUID(), kernel.NewUUID(), "")

	const workers = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := suite.repository.Get(ctx, a.ID())
			if err != nil {
				return
			}
			if err := loaded.Resolve("", approval.Approved, ""); err != nil {
				return
			}
			if err := suite.repository.Update(ctx, loaded); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, succeeded)
}

func (suite *ApprovalRepositoryIntegrationTestSuite) TestList_Filters() {
	ctx := context.Background()
	orderID, stepID := kernel.NewUUID(), kernel.NewUUID()
	first := suite.addApproval(orderID, stepID, "")
	suite.addApproval(orderID, stepID, "")
	suite.addApproval(orderID, kernel.NewUUID(), "")
	suite.addApproval(kernel.NewUUID(), stepID, "")

	suite.Require().NoError(first.Resolve("", approval.Rejected, ""))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	pair, err := suite.repository.ListByOrderStep(ctx, orderID, stepID)
	suite.Require().NoError(err)
	suite.Require().Len(pair, 2)
	suite.True(pair[0].ID().IsEqual(first.ID()), "oldest first")

	byOrder, err := suite.repository.List(ctx, ports.ApprovalFilter{OrderID: &orderID})
	suite.Require().NoError(err)
	suite.Len(byOrder, 3)

	pending := approval.Pending
	open, err := suite.repository.List(ctx, ports.ApprovalFilter{StepID: &stepID, Status: &pending})
	suite.Require().NoError(err)
	suite.Len(open, 2)

	all, err := suite.repository.List(ctx, ports.ApprovalFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 4)
}

func (suite *ApprovalRepositoryIntegrationTestSuite) addApproval(orderID, stepID kernel.UUID, approverID string) *approval.Approval {
	a, err := approval.NewApproval(kernel.NewUUID(), orderID, stepID, approverID, "manager")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), a))
	return a
}

func TestApprovalRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalRepositoryIntegrationTestSuite))
}
