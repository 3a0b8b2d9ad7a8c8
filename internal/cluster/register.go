package cluster

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	consul "github.com/hashicorp/consul/api"
)

// Register registra este processo no Consul, com um health check HTTP
// apontando para o endpoint /health que o servidor expõe. O registro é
// opcional: o main só chama quando CONSUL_HTTP_ADDR está configurado.
func Register(serviceName, consulAddr, serviceAddr string) error {
	config := consul.DefaultConfig()
	config.Address = consulAddr

	consulClient, err := consul.NewClient(config)
	if err != nil {
		return fmt.Errorf("erro ao criar cliente Consul: %w", err)
	}

	// O hostname é perfeito para criar um ID de serviço único por instância.
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceName, hostname)

	_, portStr, err := net.SplitHostPort(serviceAddr)
	if err != nil {
		return fmt.Errorf("endereço de serviço inválido %q: %w", serviceAddr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("porta de serviço inválida %q: %w", portStr, err)
	}

	registration := &consul.AgentServiceRegistration{
		ID:   serviceID,
		Name: serviceName,
		Port: port,
		// O agente do Consul usa o IP de quem registra; a URL do check
		// precisa de um host resolvível, e o hostname do contêiner é
		// resolvível por DNS dentro da rede.
		Check: &consul.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, port),
			Timeout:  "5s",
			Interval: "10s",
			// Desregistra automaticamente o serviço se ele ficar em
			// estado crítico por mais de 1 minuto.
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := consulClient.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("falha ao registrar serviço no Consul: %w", err)
	}

	log.Printf("Serviço '%s' registrado no Consul com ID: %s", serviceName, serviceID)
	return nil
}
