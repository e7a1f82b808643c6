package config

import (
	"fmt"
	"log"
	"math"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"smart-hotel/models"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// seedBand is one run of consecutively numbered rooms of the same type.
type seedBand struct {
	from, to int
	roomType models.RoomType
	price    float64
}

var seedBands = []seedBand{
	{1, 20, models.RoomStandard, 299.00},
	{21, 35, models.RoomDeluxe, 499.00},
	{36, 40, models.RoomSuite, 899.00},
}

// SeedRooms provisions the initial room inventory when the rooms table is empty.
func SeedRooms(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		log.Println("Rooms already seeded")
		return nil
	}

	rooms := make([]models.Room, 0, 41)
	for _, band := range seedBands {
		for i := band.from; i <= band.to; i++ {
			rooms = append(rooms, models.Room{
				RoomNumber: fmt.Sprintf("%03d", i),
				RoomType:   band.roomType,
				Floor:      int(math.Ceil(float64(i) / 10)),
				Price:      band.price,
				Status:     models.RoomFree,
			})
		}
	}
	rooms = append(rooms, models.Room{
		RoomNumber: "401",
		RoomType:   models.RoomPresidential,
		Floor:      4,
		Price:      1999.00,
		Status:     models.RoomFree,
	})

	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	log.Printf("Rooms seeded (%d)", len(rooms))
	return nil
}

func baseDSNConfig() *mysqldrv.Config {
	c := mysqldrv.NewConfig()
	c.Net = "tcp"
	c.ParseTime = true
	c.Loc = time.Local
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}

	c := baseDSNConfig()
	c.User = u.User.Username()
	c.Passwd, _ = u.User.Password()
	c.Addr = net.JoinHostPort(u.Hostname(), port)
	c.DBName = dbName
	for key, values := range u.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "parseTime", "loc":
			// always parseTime=true, loc=Local
		default:
			c.Params[key] = values[0]
		}
	}
	return c.FormatDSN(), nil
}

// ResolveMySQLDSN builds the go-sql-driver DSN from the config.
func ResolveMySQLDSN(cfg Config) (string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		parsed, err := mysqldrv.ParseDSN(raw)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		parsed.ParseTime = true
		parsed.Loc = time.Local
		return parsed.FormatDSN(), nil
	}

	c := baseDSNConfig()
	c.User = cfg.DBUser
	c.Passwd = cfg.DBPass
	c.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	c.DBName = cfg.DBName
	return c.FormatDSN(), nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ConnectDatabase opens the bounded connection pool, migrates the schema and
// seeds rooms. The caller owns the returned handle and must CloseDatabase it.
func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	dsn, err := ResolveMySQLDSN(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.DBLogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  !cfg.IsProduction(),
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("cannot get raw sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// parent -> child
	if err := db.AutoMigrate(
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
		&models.CheckIn{},
		&models.SystemLog{},
		&models.LockOperation{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if cfg.Seed {
		if err := SeedRooms(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return db, nil
}

// CloseDatabase drains the pool.
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
