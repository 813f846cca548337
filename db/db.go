package db

import (
	"playlists/config"

	"github.com/charmbracelet/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Instance *gorm.DB

func Init() {
	var dialector gorm.Dialector
	if config.MYSQL_DSN != "" {
		log.Info("Using MySQL database")
		dialector = mysql.Open(config.MYSQL_DSN)
	} else if config.POSTGRES_DSN != "" {
		log.Info("Using PostgreSQL database")
		dialector = postgres.Open(config.POSTGRES_DSN)
	} else {
		log.Info("Using SQLite database", "file", config.SQLITE_FILE)
		InitSQLite(config.SQLITE_FILE)
		return
	}
	if err := Open(dialector); err != nil {
		panic(err)
	}
}

// InitSQLite opens a SQLite database. ":memory:" is limited to a single connection
// so every query sees the same database.
func InitSQLite(file string) {
	if err := Open(sqlite.Open(file)); err != nil {
		panic(err)
	}
	if file == ":memory:" {
		sqlDB, err := Instance.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
}

func Open(dialector gorm.Dialector) error {
	logLevel := logger.Warn
	if config.DEBUG_MODE {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            dialector.Name() != "sqlite",
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}
	Instance = db
	return nil
}
