// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/Luismorlan/nashbites/model"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestDBPrefix         = "testonlydb_"
	TestDBNameCharLength = 8
)

// GormTransaction is the callback function used during db.Transaction in Gorm.
type GormTransaction func(tx *gorm.DB) error

func isTempDB(dbName string) bool {
	return strings.HasPrefix(dbName, TestDBPrefix)
}

func randomTestDBName() string {
	return TestDBPrefix + RandomAlphabetString(TestDBNameCharLength)
}

// GetDBConnection get a connection to the database specified by env
func GetDBConnection() (*gorm.DB, error) {
	return GetCustomizedConnection(os.Getenv("DB_NAME"))
}

// GetCustomizedConnection connect to any postgres db on the configured host
func GetCustomizedConnection(dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), dbName, os.Getenv("DB_PORT"), sslMode())
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func sslMode() string {
	if mode := os.Getenv("DB_SSL_MODE"); mode != "" {
		return mode
	}
	return "disable"
}

// Create a temp in-memory DB for testing, note that this function should only
// be called in a testing environment with test state manager testing.T
// It is guaranteed that this database is gone after each test case, user will
// not need to drop it explicitly.
//
// The pool is capped to one connection: an in-memory sqlite database lives
// as long as its connection, and a single connection also serializes
// transactions the way the production store would reject conflicts.
func CreateTempDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	dbName := randomTestDBName()
	if !isTempDB(dbName) {
		t.Fatalf("refuse to create a non-testing DB: %s", dbName)
	}
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("fail to create temp DB with name: %s, %s", dbName, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("cannot get the current SQL DB: %s", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("fail to migrate temp DB: %s", err)
	}
	t.Cleanup(func() {
		// Proactively close instead of deferring to GC, this also drops the
		// in-memory database.
		sqlDB.Close()
	})

	return db, dbName
}

// DatabaseSetupAndMigration creates or migrates every table the ingestion
// pipeline and the read API need.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Creator{},
		&model.Place{},
		&model.Article{},
		&model.SourcePost{},
		&model.ReviewQuote{},
		&model.MergeEvent{},
		&model.WebhookLog{},
	)
	return errors.Wrap(err, "failed to migrate database")
}
