package backend

import (
	"context"
	"errors"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm serves Client from PostgreSQL.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) scoped(ctx context.Context, q Query) *gorm.DB {
	tx := g.db.WithContext(ctx)
	for _, f := range q.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return tx
}

func (g *Gorm) Select(ctx context.Context, dest any, q Query) error {
	defer prometheus.TrackDBOperation("select")(time.Now())

	tx := g.scoped(ctx, q)
	for _, j := range q.Joins {
		tx = tx.Preload(j)
	}
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx.Find(dest).Error
}

func (g *Gorm) Insert(ctx context.Context, row any) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	err := g.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (g *Gorm) Update(ctx context.Context, model any, q Query, fields map[string]any) (int64, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())

	res := g.scoped(ctx, q).Model(model).Updates(fields)
	return res.RowsAffected, res.Error
}

func (g *Gorm) Upsert(ctx context.Context, row any, conflict []string, columns []string) error {
	defer prometheus.TrackDBOperation("upsert")(time.Now())

	cols := make([]clause.Column, 0, len(conflict))
	for _, name := range conflict {
		cols = append(cols, clause.Column{Name: name})
	}
	return g.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   cols,
			DoUpdates: clause.AssignmentColumns(append(append([]string(nil), columns...), "updated_at")),
		}).
		Create(row).Error
}

func (g *Gorm) Call(ctx context.Context, fn string, args map[string]any) (any, error) {
	defer prometheus.TrackDBOperation("rpc")(time.Now())
	return callRPC(ctx, g, fn, args)
}
