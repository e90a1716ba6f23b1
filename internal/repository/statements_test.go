package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-backoffice/internal/model"
)

// dryRunDB builds SQL without a server and collects every statement.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=backoffice dbname=backoffice sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)

	var statements []string
	capture := func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_update", capture))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("test:capture_delete", capture))
	return db, &statements
}

func TestProductRepo_UpdateNeverWritesQuantity(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewProductRepo(db)

	product := &model.Product{
		SKU:               "RICE-5KG",
		Name:              "Rice 5kg",
		Price:             decimal.RequireFromString("85.50"),
		Quantity:          999,
		LowStockThreshold: 5,
		IsActive:          true,
	}
	product.ID = uuid.New()
	require.NoError(t, repo.Update(product))

	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.True(t, strings.HasPrefix(sql, `UPDATE "products" SET`), sql)
	assert.Contains(t, sql, `"price"`)
	assert.Contains(t, sql, `"low_stock_threshold"`)
	assert.NotContains(t, sql, `"quantity"`)
}

func TestNotificationRepo_OwnerScopedStatements(t *testing.T) {
	db, statements := dryRunDB(t)
	repo := NewNotificationRepo(db)
	id, owner := uuid.New(), uuid.New()

	_, _ = repo.MarkRead(id, owner)
	require.NotEmpty(t, *statements)
	assert.Contains(t, (*statements)[0], "user_id =")

	*statements = nil
	_ = repo.Delete(id, owner)
	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], "user_id =")

	*statements = nil
	_, err := repo.FindByUser(owner, true)
	require.NoError(t, err)
	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], "is_read =")
	assert.Contains(t, (*statements)[0], "ORDER BY created_at DESC")

	*statements = nil
	_, err = repo.FindByUser(owner, false)
	require.NoError(t, err)
	require.Len(t, *statements, 1)
	assert.NotContains(t, (*statements)[0], "is_read")
}
