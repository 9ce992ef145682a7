package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/keremavan/feed-engine/internal/domain"
	"github.com/keremavan/feed-engine/internal/importer"
)

// EmployeeBatchConnector opens one employees transaction per import batch.
type EmployeeBatchConnector struct {
	db *gorm.DB
}

func NewEmployeeBatchConnector(db *gorm.DB) *EmployeeBatchConnector {
	return &EmployeeBatchConnector{db: db}
}

func (c *EmployeeBatchConnector) Begin(ctx context.Context) (importer.Tx, error) {
	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &employeeTx{tx: tx}, nil
}

type employeeTx struct {
	tx *gorm.DB
}

func (t *employeeTx) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := t.tx.WithContext(ctx).
		Model(&EmployeeModel{}).
		Where("employee_id = ?", key).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (t *employeeTx) Insert(ctx context.Context, rec importer.Record) (int64, error) {
	e, ok := rec.(*domain.Employee)
	if !ok {
		return 0, fmt.Errorf("unexpected record type %T for employees", rec)
	}
	result := t.tx.WithContext(ctx).Create(employeeModelFromDomain(e))
	return result.RowsAffected, result.Error
}

func (t *employeeTx) Commit() error   { return t.tx.Commit().Error }
func (t *employeeTx) Rollback() error { return t.tx.Rollback().Error }

// InventoryBatchConnector opens one inventory transaction per import batch.
type InventoryBatchConnector struct {
	db *gorm.DB
}

func NewInventoryBatchConnector(db *gorm.DB) *InventoryBatchConnector {
	return &InventoryBatchConnector{db: db}
}

func (c *InventoryBatchConnector) Begin(ctx context.Context) (importer.Tx, error) {
	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &inventoryTx{tx: tx}, nil
}

type inventoryTx struct {
	tx *gorm.DB
}

func (t *inventoryTx) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := t.tx.WithContext(ctx).
		Model(&InventoryItemModel{}).
		Where("sku = ?", key).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (t *inventoryTx) Insert(ctx context.Context, rec importer.Record) (int64, error) {
	item, ok := rec.(*domain.InventoryItem)
	if !ok {
		return 0, fmt.Errorf("unexpected record type %T for inventory", rec)
	}
	result := t.tx.WithContext(ctx).Create(inventoryModelFromDomain(item))
	return result.RowsAffected, result.Error
}

func (t *inventoryTx) Commit() error   { return t.tx.Commit().Error }
func (t *inventoryTx) Rollback() error { return t.tx.Rollback().Error }
