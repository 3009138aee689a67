package http

type Config struct {
	Port        uint   `mapstructure:"port"`
	CORSOrigins string `mapstructure:"cors_origins"`
}
