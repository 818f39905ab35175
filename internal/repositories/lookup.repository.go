package repositories

import (
	"context"
	"time"

	"civic/internal/database"
	"civic/internal/logger"
	. "civic/internal/models"
	"civic/internal/services"

	"gorm.io/gorm"
)

const (
	recentLookupsKey   = "lookups:recent"
	recentLookupsLimit = 10
)

type LookupRepository interface {
	services.LookupRecorder
	Create(ctx context.Context, lookup *Lookup) error
	GetRecent(ctx context.Context) ([]*Lookup, error)
	GetByQuery(ctx context.Context, query string) ([]*Lookup, error)
}

type lookupRepository struct {
	db       database.DB
	cacheTTL time.Duration
	log      logger.Logger
}

func NewLookup(db database.DB, cacheTTL time.Duration) LookupRepository {
	return &lookupRepository{
		db:       db,
		cacheTTL: cacheTTL,
		log:      logger.New("lookupRepository"),
	}
}

func (r *lookupRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *lookupRepository) Create(ctx context.Context, lookup *Lookup) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(lookup).Error; err != nil {
		return log.Err("failed to create lookup", err, "query", lookup.Query)
	}

	// The cached recent list is stale now.
	if err := database.NewCacheBuilder(r.db.Cache.Lookups, recentLookupsKey).Delete(); err != nil {
		log.Warn("failed to invalidate recent lookups cache", "error", err)
	}

	return nil
}

func (r *lookupRepository) GetRecent(ctx context.Context) ([]*Lookup, error) {
	log := r.log.Function("GetRecent")

	var cached []*Lookup
	found, err := database.NewCacheBuilder(r.db.Cache.Lookups, recentLookupsKey).
		WithContext(ctx).
		Get(&cached)
	if err == nil && found {
		return cached, nil
	}

	var lookups []*Lookup
	if err := r.getDB(ctx).Order("created_at DESC").Limit(recentLookupsLimit).Find(&lookups).Error; err != nil {
		return nil, log.Err("failed to get recent lookups", err)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Lookups, recentLookupsKey).
		WithStruct(lookups).
		WithTTL(r.cacheTTL).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache recent lookups", "error", err)
	}

	return lookups, nil
}

func (r *lookupRepository) GetByQuery(ctx context.Context, query string) ([]*Lookup, error) {
	log := r.log.Function("GetByQuery")

	var lookups []*Lookup
	if err := r.getDB(ctx).Where("query = ?", query).Order("created_at DESC").Find(&lookups).Error; err != nil {
		return nil, log.Err("failed to get lookups by query", err, "query", query)
	}

	return lookups, nil
}

// RecordLookup implements services.LookupRecorder. Failures are logged
// and swallowed: history is best-effort and never fails a resolution.
func (r *lookupRepository) RecordLookup(ctx context.Context, query LocationQuery, state FetchState) {
	log := r.log.Function("RecordLookup")

	kind := "address"
	if query.Kind == QueryZip {
		kind = "zip"
	}

	status := string(state.DataStatus)
	if state.Phase == PhaseError {
		status = "error"
	}

	lookup := &Lookup{
		Query:            query.Text,
		Kind:             kind,
		Status:           status,
		ResultCount:      len(state.Data),
		FormattedAddress: state.FormattedAddress,
	}

	if err := r.Create(ctx, lookup); err != nil {
		log.Warn("failed to record lookup", "query", query.Text, "error", err)
	}
}
