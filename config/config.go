package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	"assetmaster/bot"
	"assetmaster/internal/db"
	"assetmaster/internal/util"
	"assetmaster/notify"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configByte []byte

const Production = "production"

type Config struct {
	Log string `yaml:"log"`
	App struct {
		Port    int    `yaml:"port"`
		Env     string `yaml:"env"`
		JwtKey  string `yaml:"jwtkey"`
		Origins string `yaml:"origins"`
	} `yaml:"app"`
	Cron struct {
		Secret string        `yaml:"secret"`
		Spec   string        `yaml:"spec"`
		Budget time.Duration `yaml:"budget"`
	} `yaml:"cron"`
	Snapshot struct {
		Queue int `yaml:"queue"`
	} `yaml:"snapshot"`
	Bark struct {
		Server string  `yaml:"server"`
		Group  string  `yaml:"group"`
		Rps    float64 `yaml:"rps"`
		Burst  int     `yaml:"burst"`
	} `yaml:"bark"`
	Telegram struct {
		ChatId string `yaml:"chatId"`
		Token  string `yaml:"token"`
	} `yaml:"telegram"`
	Db struct {
		Driver   string `yaml:"driver"`
		User     string `yaml:"user"`
		Password string `yaml:"pwd"`
		IP       string `yaml:"ip"`
		Port     string `yaml:"port"`
		Scheme   string `yaml:"scheme"`
	} `yaml:"db"`
	Redis struct {
		IP       string `yaml:"ip"`
		Port     string `yaml:"port"`
		Password string `yaml:"pwd"`
		Db       int    `yaml:"db"`
	} `yaml:"redis"`
	Crypt struct {
		Key string `yaml:"key"`
	} `yaml:"crypt"`
}

func NewConfig() (*Config, error) {
	return parse(configByte)
}

func parse(b []byte) (*Config, error) {

	var conf Config
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return nil, fmt.Errorf("config yaml 파싱 시 오류 발생. %w", err)
	}

	if err := decode(&conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c Config) LogLevel() (zerolog.Level, error) {

	level, err := zerolog.ParseLevel(c.Log)
	if err != nil {
		return zerolog.InfoLevel, err // Default로는 Info 레벨 설정
	}

	return level, nil
}

func (c Config) IsProduction() bool {
	return c.App.Env == Production
}

// BotConfig returns nil when no telegram token is configured.
func (c Config) BotConfig() (*bot.TeleBotConfig, error) {

	if c.Telegram.Token == "" {
		return nil, nil
	}

	chatId, err := strconv.ParseInt(c.Telegram.ChatId, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("telegram chatId 파싱 시 오류 발생. %w", err)
	}

	return &bot.TeleBotConfig{
		Token:  c.Telegram.Token,
		ChatId: chatId,
	}, nil
}

func (c Config) DbConfig() *db.DbConfig {
	return db.NewDbConfig(c.Db.Driver, c.Db.User, c.Db.Password, c.Db.IP, c.Db.Port, c.Db.Scheme)
}

// RedisConfig returns nil when redis is not configured.
func (c Config) RedisConfig() *db.RedisConfig {
	if c.Redis.IP == "" {
		return nil
	}
	return db.NewRedisConfig(c.Redis.Password, c.Redis.IP, c.Redis.Port, c.Redis.Db)
}

func (c Config) BarkConfig() *notify.BarkConfig {
	return &notify.BarkConfig{
		Server: c.Bark.Server,
		Group:  c.Bark.Group,
		Rps:    c.Bark.Rps,
		Burst:  c.Bark.Burst,
	}
}

var ErrCryptKeyLength = errors.New("crypt key는 16, 24, 32 byte 중 하나")

// CryptKey returns the AES key used for stored bark keys. An empty key stores them as they are.
func (c Config) CryptKey() ([]byte, error) {
	switch len(c.Crypt.Key) {
	case 0, 16, 24, 32:
		return []byte(c.Crypt.Key), nil
	default:
		return nil, ErrCryptKeyLength
	}
}

func decode(conf *Config) error {
	secrets := []*string{
		&conf.App.JwtKey,
		&conf.Cron.Secret,
		&conf.Telegram.ChatId,
		&conf.Telegram.Token,
		&conf.Db.Password,
		&conf.Redis.Password,
		&conf.Crypt.Key,
	}
	for _, s := range secrets {
		if err := util.Decode(s); err != nil {
			return err
		}
	}
	return nil
}
