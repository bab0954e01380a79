package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baibebalo-system/internal/database/models"
)

func memoryDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
}

func TestNewConnectionRejectsBadInput(t *testing.T) {
	_, err := NewConnection(DriverSQLite, "")
	assert.Error(t, err)

	_, err = NewConnection("oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateAndCheckSchema(t *testing.T) {
	db, err := NewConnection(DriverSQLite, memoryDSN(t))
	require.NoError(t, err)

	before := CheckSchema(db)
	assert.False(t, before.Ready())
	assert.False(t, before.HasTable(models.TableOrders))

	require.NoError(t, MigrateEarningsDB(db))

	after := CheckSchema(db)
	assert.True(t, after.Ready(), "missing: %v", after.MissingColumns)
	assert.True(t, after.HasColumn(models.TableOrders, "commission"))
	assert.True(t, after.HasColumn(models.TableTransactions, "type"))
}

func TestCheckSchemaReportsMissingTransactions(t *testing.T) {
	db, err := NewConnection(DriverSQLite, memoryDSN(t))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Restaurant{}, &models.Order{}))

	status := CheckSchema(db)
	assert.False(t, status.Ready())
	assert.True(t, status.HasTable(models.TableOrders))
	assert.False(t, status.HasTable(models.TableTransactions))
	assert.False(t, status.HasColumn(models.TableTransactions, "amount"))
}
