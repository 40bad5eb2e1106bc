package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 预定义的逻辑记录键。摘要键按日期派生，见 DigestKey。
const (
	KeyPreferences = "preferences"
	KeySavedJobIDs = "savedJobIds"

	digestKeyPrefix = "digest:"
)

// DigestKey 返回指定 ISO 日期（2006-01-02）的摘要记录键。
func DigestKey(date string) string {
	return digestKeyPrefix + date
}

// Record 是持久化键值记录，value 为序列化后的 JSON。
type Record struct {
	Key       string         `gorm:"primaryKey"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// Store 封装 SQLite 数据库访问，按键读写序列化记录。
type Store struct {
	db *gorm.DB
}

// NewStore 创建 Store 并自动迁移数据表。
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("auto migrate records: %w", err)
	}

	return &Store{db: db}, nil
}

// Close 关闭底层数据库连接。
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// Get 按键读取记录，返回序列化内容与是否存在。
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %q: %w", key, err)
	}
	return []byte(rec.Value), true, nil
}

// Put 写入记录，已存在则整体覆盖。
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	rec := Record{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec)
	if tx.Error != nil {
		return fmt.Errorf("put record %q: %w", key, tx.Error)
	}
	return nil
}

// Delete 删除记录，键不存在时静默成功。
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}
