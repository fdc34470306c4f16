package helpers

import (
	"fmt"
	"os"
	"testing"

	"destined_affinity/database"
	"destined_affinity/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB открывает изолированную in-memory SQLite базу с миграциями.
// Одно соединение: конкурентные транзакции выполняются строго по очереди, поэтому
// конкурентные тесты на SQLite проверяют логику, но не чередование транзакций.
// Настоящие гонки проверяются на Postgres: go test -tags postgres с TEST_DATABASE_URL.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.Options{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		LogLevel:     gormlogger.Silent,
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db), "Не удалось выполнить миграции")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewPostgresTestDB открывает базу из TEST_DATABASE_URL с пулом соединений и
// чистой схемой. Без переменной тест пропускается.
func NewPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	db, err := database.Open(database.Options{
		Driver:       "postgres",
		DSN:          dsn,
		MaxOpenConns: 16,
		LogLevel:     gormlogger.Silent,
	})
	require.NoError(t, err, "Не удалось подключиться к Postgres")

	dropAll := func() error {
		return db.Migrator().DropTable(models.All()...)
	}
	require.NoError(t, dropAll(), "Не удалось очистить схему")
	require.NoError(t, database.AutoMigrate(db), "Не удалось выполнить миграции")

	t.Cleanup(func() {
		_ = dropAll()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateMember создает участника с ролью и premium-статусом
func CreateMember(t *testing.T, db *gorm.DB, email string, role models.MemberRole) *models.Member {
	t.Helper()
	member := &models.Member{
		Email:         email,
		DisplayName:   email,
		Role:          role,
		PremiumStatus: models.PremiumStatusNone,
	}
	require.NoError(t, db.Create(member).Error, "Не удалось создать участника %s", email)
	return member
}

// CreateBiodata создает анкету с заданным biodataId напрямую и подтягивает счетчик
func CreateBiodata(t *testing.T, db *gorm.DB, b *models.Biodata) *models.Biodata {
	t.Helper()
	if b.Mobile == "" {
		b.Mobile = "+8801700000000"
	}
	if b.ContactEmail == "" {
		b.ContactEmail = b.OwnerEmail
	}
	require.NoError(t, db.Create(b).Error, "Не удалось создать анкету %d", b.BiodataID)

	// счетчик не должен выдать уже занятый номер
	require.NoError(t, db.Model(&models.BiodataSequence{}).
		Where("name = ? AND value < ?", models.BiodataSequenceName, b.BiodataID).
		Update("value", b.BiodataID).Error)
	return b
}
