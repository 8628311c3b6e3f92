package db

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/TraderJoe97/StackFlow/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init() {
	var err error
	DB, err = gorm.Open(dialector(), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		slog.Error("Failed to connect to DB", "driver", config.DbDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected", "driver", config.DbDriver)
}

func dialector() gorm.Dialector {
	if config.DbDriver == "sqlite" {
		return sqlite.Open(SqliteDSN(config.SqlitePath))
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)
	return postgres.Open(dsn)
}

// SqliteDSN turns on foreign keys so cascade and set-null rules apply.
func SqliteDSN(path string) string {
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
