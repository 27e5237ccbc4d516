package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"

	"rental-admin-backend/internal/model"
)

// Rentals is the gorm-backed data set served by the sandbox backend. Every
// mutation appends an entry to the activity log in the same transaction.
type Rentals struct {
	db *gorm.DB
	// Actor is recorded as the staff id of activity log entries.
	Actor int64
}

func NewRentals(db *gorm.DB) *Rentals {
	return &Rentals{db: db}
}

// DB exposes the connection for ad hoc reads.
func (r *Rentals) DB() *gorm.DB {
	return r.db
}

// Models lists every table the sandbox owns, for migrations.
func Models() []any {
	return []any{
		&model.StaffRecord{},
		&model.ActivityLogEntry{},
		&model.Booking{},
		&model.DamageReport{},
		&model.ServiceRecord{},
		&model.CarModel{},
		&model.Payment{},
	}
}

// ListQuery selects one page of a table.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	// SearchColumns are matched case-insensitively against Search.
	SearchColumns []string
	// Equal holds exact-match filters; nil and empty string values are ignored.
	Equal map[string]any
	// Where holds extra raw conditions.
	Where []Cond
	Order string
	// All returns every matching row instead of one page.
	All bool
}

// Cond is a raw SQL condition with its arguments.
type Cond struct {
	SQL  string
	Args []any
}

const maxLimit = 100

// Bounds returns the effective page and limit.
func (q ListQuery) Bounds() (page, limit int) {
	page, limit = q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func (q ListQuery) apply(db *gorm.DB) *gorm.DB {
	for col, v := range q.Equal {
		if v == nil || v == "" {
			continue
		}
		db = db.Where(col+" = ?", v)
	}
	if term := strings.TrimSpace(q.Search); term != "" && len(q.SearchColumns) > 0 {
		like := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(q.SearchColumns))
		args := make([]any, len(q.SearchColumns))
		for i, col := range q.SearchColumns {
			clauses[i] = fmt.Sprintf("LOWER(CAST(%s AS TEXT)) LIKE ?", col)
			args[i] = like
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}
	for _, c := range q.Where {
		db = db.Where(c.SQL, c.Args...)
	}
	return db
}

// List returns one page of T and the total number of matching rows.
func List[T any](ctx context.Context, r *Rentals, q ListQuery) ([]T, int64, error) {
	var total int64
	base := q.apply(r.db.WithContext(ctx).Model(new(T)))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %T: %w", *new(T), err)
	}

	page, limit := q.Bounds()
	items := []T{}
	query := q.apply(r.db.WithContext(ctx).Model(new(T)))
	if q.Order != "" {
		query = query.Order(q.Order)
	}
	if !q.All {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list %T: %w", *new(T), err)
	}
	return items, total, nil
}

// Get loads one T by primary key.
func Get[T any](ctx context.Context, r *Rentals, id int64) (T, error) {
	var rec T
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, ErrNotFound
		}
		return rec, fmt.Errorf("failed to load %T %d: %w", rec, id, err)
	}
	return rec, nil
}

// Create inserts rec and logs a CREATE entry.
func Create[T any](ctx context.Context, r *Rentals, rec *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to create %T: %w", *rec, err)
		}
		return r.audit(tx, model.ActionCreate, rec, "", snapshot(rec))
	})
}

// Update applies fields to the T with id and logs an UPDATE entry with the
// before and after snapshots.
func Update[T any](ctx context.Context, r *Rentals, id int64, fields map[string]any) (T, error) {
	var after T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var before T
		if err := tx.First(&before, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		old := snapshot(before)
		if err := tx.Model(&before).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update %T %d: %w", before, id, err)
		}
		if err := tx.First(&after, id).Error; err != nil {
			return err
		}
		return r.audit(tx, model.ActionUpdate, &after, old, snapshot(after))
	})
	return after, err
}

// Delete removes the T with id and logs a DELETE entry.
func Delete[T any](ctx context.Context, r *Rentals, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var before T
		if err := tx.First(&before, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&before).Error; err != nil {
			return fmt.Errorf("failed to delete %T %d: %w", before, id, err)
		}
		return r.audit(tx, model.ActionDelete, &before, snapshot(before), "")
	})
}

func (r *Rentals) audit(tx *gorm.DB, action model.ActivityAction, rec any, oldValues, newValues string) error {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(rec); err != nil {
		return fmt.Errorf("failed to parse %T: %w", rec, err)
	}
	var recordID int64
	if pk := stmt.Schema.PrioritizedPrimaryField; pk != nil {
		if v, zero := pk.ValueOf(tx.Statement.Context, reflect.Indirect(reflect.ValueOf(rec))); !zero {
			if id, ok := v.(int64); ok {
				recordID = id
			}
		}
	}
	entry := model.ActivityLogEntry{
		StaffID:   r.Actor,
		Action:    action,
		Table:     stmt.Schema.Table,
		RecordID:  recordID,
		OldValues: oldValues,
		NewValues: newValues,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

func snapshot(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
