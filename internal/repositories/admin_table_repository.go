package repositories

import (
	"errors"
	"fmt"
	"sort"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTableNotAllowed = errors.New("table is not available in the admin panel")
	ErrRowNotFound     = errors.New("row not found")
	ErrNoColumns       = errors.New("no columns to update")
)

// adminTable describes a table exposed to the admin panel. Hints force the
// cell kind for columns whose driver value is ambiguous. A jsonb column needs
// a models.CellJSON hint, since drivers return it as text.
type adminTable struct {
	orderBy string
	hints   map[string]models.CellKind
}

var adminTables = map[string]adminTable{
	"transactions": {
		orderBy: "created_at",
		hints:   map[string]models.CellKind{"amount": models.CellNumber},
	},
	"savings_targets": {
		orderBy: "created_at",
		hints: map[string]models.CellKind{
			"target_amount":  models.CellNumber,
			"current_amount": models.CellNumber,
		},
	},
	"families": {
		orderBy: "created_at",
	},
	"family_members": {
		orderBy: "joined_at",
	},
}

// AdminTables lists the tables exposed to the admin panel in name order.
func AdminTables() []string {
	names := make([]string, 0, len(adminTables))
	for name := range adminTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAdminTable reports whether table is exposed to the admin panel.
func IsAdminTable(table string) bool {
	_, ok := adminTables[table]
	return ok
}

type adminTableRepository struct {
	db *gorm.DB
}

// NewAdminTableRepository creates a raw row repository for the admin panel
func NewAdminTableRepository(db *gorm.DB) AdminTableRepositoryInterface {
	return &adminTableRepository{db: db}
}

// ListRows returns up to limit rows newest first
func (r *adminTableRepository) ListRows(table string, limit int) ([]models.TableRow, error) {
	def, ok := adminTables[table]
	if !ok {
		return nil, ErrTableNotAllowed
	}

	rows, err := r.db.Table(table).Order(def.orderBy + " DESC").Limit(limit).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	result := make([]models.TableRow, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		row := make(models.TableRow, len(columns))
		for i, column := range columns {
			row[column] = models.CellFromValue(values[i], def.hints[column])
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", table, err)
	}

	return result, nil
}

// isRowID reports whether id can match a primary key. Every admin table is
// keyed by uuid.
func isRowID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GetRow returns a single row by id
func (r *adminTableRepository) GetRow(table, id string) (models.TableRow, error) {
	def, ok := adminTables[table]
	if !ok {
		return nil, ErrTableNotAllowed
	}
	if !isRowID(id) {
		return nil, ErrRowNotFound
	}

	var raw map[string]interface{}
	result := r.db.Table(table).Where("id = ?", id).Limit(1).Find(&raw)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get %s row: %w", table, result.Error)
	}
	if result.RowsAffected == 0 || len(raw) == 0 {
		return nil, ErrRowNotFound
	}

	row := make(models.TableRow, len(raw))
	for column, value := range raw {
		row[column] = models.CellFromValue(value, def.hints[column])
	}
	return row, nil
}

// UpdateRow writes already-decoded values. The id column is never updated.
func (r *adminTableRepository) UpdateRow(table, id string, values map[string]interface{}) error {
	if !IsAdminTable(table) {
		return ErrTableNotAllowed
	}
	if !isRowID(id) {
		return ErrRowNotFound
	}

	updates := make(map[string]interface{}, len(values))
	for column, value := range values {
		if column == "id" {
			continue
		}
		updates[column] = value
	}
	if len(updates) == 0 {
		return ErrNoColumns
	}

	result := r.db.Table(table).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s row: %w", table, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRowNotFound
	}
	return nil
}

func (r *adminTableRepository) DeleteRow(table, id string) error {
	if !IsAdminTable(table) {
		return ErrTableNotAllowed
	}
	if !isRowID(id) {
		return ErrRowNotFound
	}

	result := r.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s row: %w", table, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRowNotFound
	}
	return nil
}
