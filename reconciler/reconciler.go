package reconciler

import (
	"context"
	"log"
	"time"

	"github.com/gharbazaar/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PrimaryLister lists every property in the primary store.
type PrimaryLister interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
}

// CollectionLister adapts a mongo collection to PrimaryLister.
type CollectionLister struct {
	Collection *mongo.Collection
}

func (l CollectionLister) ListProperties(ctx context.Context) ([]models.Property, error) {
	cursor, err := l.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// Reconciler rebuilds the relational mirror from the primary store on a
// fixed interval. The primary store is the source of truth: every
// property is upserted into its mirror row, and rows whose id no longer
// exists in the primary store are removed together with their
// shortlists. A failed inline mirror write therefore diverges for at
// most one sweep interval.
type Reconciler struct {
	primary  PrimaryLister
	db       *gorm.DB
	interval time.Duration
}

func New(primary PrimaryLister, db *gorm.DB, interval time.Duration) *Reconciler {
	return &Reconciler{primary: primary, db: db, interval: interval}
}

// Run sweeps once immediately, then on every tick until the context is
// canceled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.Sweep(ctx); err != nil {
			log.Printf("Mirror sweep failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Reconciler) Sweep(ctx context.Context) error {
	properties, err := r.primary.ListProperties(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		rec := models.NewPropertyRecord(p)
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
			return err
		}
		ids = append(ids, p.ID)
	}

	orphanQuery := r.db.WithContext(ctx).Model(&models.PropertyRecord{})
	if len(ids) > 0 {
		orphanQuery = orphanQuery.Where("id NOT IN ?", ids)
	}
	var orphans []string
	if err := orphanQuery.Pluck("id", &orphans).Error; err != nil {
		return err
	}
	if len(orphans) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Where("property_id IN ?", orphans).Delete(&models.Shortlist{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", orphans).Delete(&models.PropertyRecord{}).Error; err != nil {
		return err
	}
	log.Printf("Mirror sweep removed %d orphaned rows", len(orphans))
	return nil
}
