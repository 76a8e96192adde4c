package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/config"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
)

// NewMySQL returns a connected GORM DB instance backed by a bounded connection pool.
func NewMySQL(dsn string, pool config.PoolConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(mysql.Open(dsn), pool, log)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Open opens any gorm dialector and applies the pool limits to the underlying *sql.DB.
// A nil log discards gorm's output.
func Open(dialector gorm.Dialector, pool config.PoolConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return db, nil
}

// newGormLogger writes slow queries and failed statements to zap.
// Missing rows are an expected lookup outcome and are not logged.
func newGormLogger(log *zap.Logger) logger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Close drains the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Models lists every table in dependency order: parents before children.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Product{},
		&model.Ingredient{},
		&model.HealthClaim{},
		&model.Rating{},
		&model.Subscriber{},
	}
}

// Migrate creates or updates the schema. With reset set, all tables are dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	models := Models()
	if reset {
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
