// Package config carrega a configuração do servidor a partir do ambiente.
// Um arquivo .env é honrado quando presente, para desenvolvimento local.
package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config reúne tudo que o processo precisa do ambiente. Consul e NATS são
// opcionais: endereço vazio desliga a integração.
type Config struct {
	Addr        string `envconfig:"ADDR" default:":3001"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"xadrez-server"`
	ConsulAddr  string `envconfig:"CONSUL_HTTP_ADDR"`
	NatsURL     string `envconfig:"NATS_URL"`
}

// Load lê o .env (se existir) e processa as variáveis de ambiente.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
