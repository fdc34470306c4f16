package database

import (
	"fmt"
	"time"

	"destined_affinity/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Options - параметры подключения
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	LogLevel     gormlogger.LogLevel
}

// Open открывает соединение GORM для выбранного драйвера.
// TranslateError включен: нарушения уникальности приходят как gorm.ErrDuplicatedKey.
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "postgres", "":
		dialector = postgres.Open(opts.DSN)
	case "mysql":
		dialector = mysql.Open(opts.DSN)
	case "sqlite":
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", opts.Driver)
	}

	if opts.LogLevel == 0 {
		opts.LogLevel = gormlogger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей и создает счетчик biodataId
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return EnsureBiodataSequence(db)
}

// EnsureBiodataSequence создает строку счетчика, начиная с MAX(biodata_id).
// Повторный вызов ничего не меняет.
func EnsureBiodataSequence(db *gorm.DB) error {
	var maxID int
	if err := db.Model(&models.Biodata{}).
		Select("COALESCE(MAX(biodata_id), 0)").
		Scan(&maxID).Error; err != nil {
		return fmt.Errorf("failed to read max biodata id: %w", err)
	}

	seq := models.BiodataSequence{Name: models.BiodataSequenceName, Value: maxID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error
}
