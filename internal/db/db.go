package db

import (
	"fmt"
	"net"
	"time"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured query log database, migrates it and tunes the pool.
func Open(conf *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(conf)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.DBDriver, err)
	}

	if err := db.AutoMigrate(&weatherquery.WeatherQuery{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if conf.DBDriver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetMaxOpenConns(25)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}

func Dialector(conf *config.Config) (gorm.Dialector, error) {
	switch conf.DBDriver {
	case DriverPostgres, "":
		return postgres.Open(PostgresDSN(conf)), nil
	case DriverMySQL:
		return mysql.Open(MySQLDSN(conf)), nil
	case DriverSQLite:
		return sqlite.Open(conf.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", conf.DBDriver)
	}
}

func PostgresDSN(conf *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		conf.DBHost, conf.DBPort, conf.DBUser, conf.DBPassword, conf.DBName,
	)
}

func MySQLDSN(conf *config.Config) string {
	port := conf.DBPort
	if port == "" || port == "5432" {
		port = "3306"
	}

	cfg := mysqldriver.NewConfig()
	cfg.User = conf.DBUser
	cfg.Passwd = conf.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(conf.DBHost, port)
	cfg.DBName = conf.DBName
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	return cfg.FormatDSN()
}
