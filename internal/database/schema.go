package database

import (
	"gorm.io/gorm"

	"baibebalo-system/internal/database/models"
)

// SchemaStatus reports which earnings tables and columns exist in the connected
// database. Legacy databases may lack the transactions table or the commission
// snapshot columns; callers degrade instead of failing.
type SchemaStatus struct {
	Tables         map[string]bool     `json:"tables"`
	MissingColumns map[string][]string `json:"missing_columns,omitempty"`
}

func (s SchemaStatus) Ready() bool {
	for _, ok := range s.Tables {
		if !ok {
			return false
		}
	}
	return len(s.MissingColumns) == 0
}

func (s SchemaStatus) HasTable(name string) bool {
	return s.Tables[name]
}

func (s SchemaStatus) HasColumn(table, column string) bool {
	if !s.Tables[table] {
		return false
	}
	for _, c := range s.MissingColumns[table] {
		if c == column {
			return false
		}
	}
	return true
}

var requiredColumns = map[string]struct {
	model   interface{}
	columns []string
}{
	models.TableRestaurants: {&models.Restaurant{}, []string{"commission_rate"}},
	models.TableOrders: {&models.Order{}, []string{
		"delivery_fee", "commission", "commission_rate", "status", "placed_at", "delivered_at",
	}},
	models.TableTransactions: {&models.Transaction{}, []string{
		"order_id", "to_user_type", "to_user_id", "type", "amount", "status",
	}},
}

func CheckSchema(db *gorm.DB) SchemaStatus {
	m := db.Migrator()
	status := SchemaStatus{
		Tables:         make(map[string]bool, len(requiredColumns)),
		MissingColumns: map[string][]string{},
	}

	for table, req := range requiredColumns {
		has := m.HasTable(table)
		status.Tables[table] = has
		if !has {
			continue
		}
		for _, col := range req.columns {
			if !m.HasColumn(req.model, col) {
				status.MissingColumns[table] = append(status.MissingColumns[table], col)
			}
		}
	}

	if len(status.MissingColumns) == 0 {
		status.MissingColumns = nil
	}
	return status
}
