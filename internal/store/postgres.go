package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KVRecord is the single-table schema behind PostgresStore.
type KVRecord struct {
	Key       string         `gorm:"primaryKey;column:key"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVRecord) TableName() string {
	return "kv_records"
}

// PostgresStore backs the cache with a Postgres table. An alternative to
// Redis where a relational database is already deployed.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec KVRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (s *PostgresStore) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	var recs []KVRecord
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&recs).Error; err != nil {
		return nil, err
	}

	byKey := make(map[string][]byte, len(recs))
	for _, rec := range recs {
		byKey[rec.Key] = []byte(rec.Value)
	}

	out := make([][]byte, len(keys))
	for i, key := range keys {
		out[i] = byKey[key]
	}
	return out, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	rec := KVRecord{Key: key, Value: datatypes.JSON(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (s *PostgresStore) SetMany(ctx context.Context, pairs []KV) error {
	if len(pairs) == 0 {
		return nil
	}

	recs := make([]KVRecord, len(pairs))
	for i, p := range pairs {
		recs[i] = KVRecord{Key: p.Key, Value: datatypes.JSON(p.Value)}
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&recs).Error
}

func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&KVRecord{}).Error
}

func (s *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&KVRecord{}).Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *PostgresStore) Entries(ctx context.Context) ([]KV, error) {
	var recs []KVRecord
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, err
	}

	entries := make([]KV, len(recs))
	for i, rec := range recs {
		entries[i] = KV{Key: rec.Key, Value: []byte(rec.Value)}
	}
	return entries, nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&KVRecord{}).Error
}
