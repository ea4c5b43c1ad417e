package db

import (
	"fmt"
	"log"
	"os"
	"time"

	m "assetmaster/internal/model"
	"assetmaster/internal/util"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Storage struct {
	db  *gorm.DB
	rds *redis.Client
	sealer *util.Sealer // bark key 암호화
	owner  string       // redis lock 값
	lg     zerolog.Logger
}

// NewStorage opens the database and migrates the tables. A nil RedisConfig disables the run lock.
func NewStorage(dc *DbConfig, rc *RedisConfig, cryptKey []byte) (*Storage, error) {

	dialector, err := dc.dialector()
	if err != nil {
		return nil, err
	}

	// Use a compatible writer for GORM's logger
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logger.Warn,
			Colorful:      false,
		},
	)

	var rds *redis.Client
	if rc != nil {
		rds = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", rc.ip, rc.port),
			Password: rc.password,
			DB:       rc.db, // memo. 레디스는 0~15까지의 16개의 DB를 제공함.
		})
	}

	stg, err := newStorage(dialector, rds, cryptKey, &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := stg.initTables(); err != nil {
		return nil, err
	}
	return stg, nil
}

func newStorage(dialector gorm.Dialector, rds *redis.Client, cryptKey []byte, conf *gorm.Config) (*Storage, error) {

	sealer, err := util.NewSealer(cryptKey)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, conf)
	if err != nil {
		return nil, fmt.Errorf("gorm.Open 시 오류 발생. %w", err)
	}

	return &Storage{
		db:     db,
		rds:    rds,
		sealer: sealer,
		owner:  lockOwner(),
		lg:     zerolog.New(os.Stdout).With().Str("Module", "Storage").Timestamp().Logger(),
	}, nil
}

func (s Storage) initTables() error {

	err := s.db.AutoMigrate(&m.Asset{}, &m.Snapshot{}, &m.User{}, &m.Event{})
	if err != nil {
		return fmt.Errorf("AutoMigrate 시 오류 발생. %w", err)
	}
	return nil
}

const (
	MysqlDriver    = "mysql"
	PostgresDriver = "postgres"
)

type DbConfig struct {
	driver   string
	user     string
	password string
	ip       string
	port     string
	scheme   string
}

func NewDbConfig(driver string, user string, password string, ip string, port string, scheme string) *DbConfig {
	if driver == "" {
		driver = MysqlDriver
	}
	return &DbConfig{
		driver:   driver,
		user:     user,
		password: password,
		ip:       ip,
		port:     port,
		scheme:   scheme,
	}
}

func (c DbConfig) Dsn() string {
	switch c.driver {
	case PostgresDriver:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", c.ip, c.user, c.password, c.scheme, c.port)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", c.user, c.password, c.ip, c.port, c.scheme)
	}
}

func (c DbConfig) dialector() (gorm.Dialector, error) {
	switch c.driver {
	case MysqlDriver:
		return mysql.Open(c.Dsn()), nil
	case PostgresDriver:
		return postgres.Open(c.Dsn()), nil
	default:
		return nil, fmt.Errorf("미지원 db driver : %s", c.driver)
	}
}

type RedisConfig struct {
	password string
	ip       string
	port     string
	db       int
}

func NewRedisConfig(password string, ip string, port string, db int) *RedisConfig {
	return &RedisConfig{
		password: password,
		ip:       ip,
		port:     port,
		db:       db,
	}
}
