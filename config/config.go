package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel int    `toml:"log_level"`

	Database  DatabaseConfigs `toml:"database"`
	ApiServer ServerConfigs   `toml:"api_server"`
	Auth      AuthConfigs     `toml:"auth"`
	Session   SessionConfigs  `toml:"session"`
	Shopify   ShopifyConfigs  `toml:"shopify"`
	Frontend  FrontendConfigs `toml:"frontend"`
	Redis     RedisConfigs    `toml:"redis"`
	Kafka     KafkaConfigs    `toml:"kafka"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	Cert string `toml:"cert"`
	Key  string `toml:"key"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

type AuthConfigs struct {
	TokenSecret  string       `toml:"token_secret"`
	AppToken     TokenConfigs `toml:"app_token"`
	SessionToken TokenConfigs `toml:"session_token"`

	StateExpiration    Duration `toml:"state_expiration"`
	StateCleanInterval Duration `toml:"state_clean_interval"`
}

type TokenConfigs struct {
	Expiration Duration `toml:"expiration"`
}

type SessionConfigs struct {
	Name   string `toml:"name"`
	Secure bool   `toml:"secure"`
}

type ShopifyConfigs struct {
	ShopID       string `toml:"shop_id"`
	ShopDomain   string `toml:"shop_domain"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`

	// AuthDomain and APIDomain default to https://shopify.com when empty.
	AuthDomain string `toml:"auth_domain"`
	APIDomain  string `toml:"api_domain"`
}

type FrontendConfigs struct {
	URL string `toml:"url"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr string `toml:"addr"`
}

// Duration lets TOML and env values be written as "10m" or "168h".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
