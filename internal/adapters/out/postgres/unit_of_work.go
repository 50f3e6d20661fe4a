// Package postgres provides the GORM implementation of the Unit of Work pattern
// over the workflow engine's tables.
//
// A unit of work hands out repositories bound to one database handle: the open
// transaction after Begin, the plain connection before it. Command handlers use it
// to make multi-table writes atomic, e.g. clearing the previous default workflow
// and storing the new one.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.WorkflowRepository().ClearDefaultExcept(ctx, wf.ID()); err != nil {
//	    return err
//	}
//	if err := uow.WorkflowRepository().Add(ctx, wf); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Rollback after Commit is a harmless no-op returning ErrInvalidTransaction
package postgres

import (
	"context"

	"orderflow/internal/adapters/out/postgres/approvalrepo"
	"orderflow/internal/adapters/out/postgres/automationrepo"
	"orderflow/internal/adapters/out/postgres/fulfillmentrepo"
	"orderflow/internal/adapters/out/postgres/historyrepo"
	"orderflow/internal/adapters/out/postgres/pgerr"
	"orderflow/internal/adapters/out/postgres/tagrepo"
	"orderflow/internal/adapters/out/postgres/workflowrepo"
	"orderflow/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates a database transaction across the repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens a transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Store("begin transaction", tx.Error)
	}
	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. Without an active transaction it returns
// gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Store("commit transaction", err)
}

// Rollback discards the transaction. Without an active transaction it returns
// gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) WorkflowRepository() ports.WorkflowRepository {
	return workflowrepo.NewGormWorkflowRepository(uow.conn())
}

func (uow *GormUnitOfWork) StepRepository() ports.StepRepository {
	return workflowrepo.NewGormStepRepository(uow.conn())
}

func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return workflowrepo.NewGormAssignmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) ApprovalRepository() ports.ApprovalRepository {
	return approvalrepo.NewGormApprovalRepository(uow.conn())
}

func (uow *GormUnitOfWork) RuleRepository() ports.RuleRepository {
	return automationrepo.NewGormRuleRepository(uow.conn())
}

func (uow *GormUnitOfWork) AutomationLogRepository() ports.AutomationLogRepository {
	return automationrepo.NewGormLogRepository(uow.conn())
}

func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return historyrepo.NewGormHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) TagRepository() ports.TagRepository {
	return tagrepo.NewGormTagRepository(uow.conn())
}

func (uow *GormUnitOfWork) FulfillmentRepository() ports.FulfillmentRepository {
	return fulfillmentrepo.NewGormFulfillmentRepository(uow.conn())
}

// conn returns the transaction when one is open, the plain connection otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
