package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/keremavan/feed-engine/internal/repository"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "000001_create_employees",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.EmployeeModel{}); err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_employees_department ON employees (department)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.EmployeeModel{})
			},
		},
		{
			ID: "000002_create_inventory",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&repository.InventoryItemModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.InventoryItemModel{})
			},
		},
		{
			ID: "000003_create_products",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.ProductModel{}); err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_products_status ON products (status)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.ProductModel{})
			},
		},
	})

	return m.Migrate()
}
