package discovery

import (
	"fmt"
	"log"
	"strconv"

	"github.com/hashicorp/consul/api"
)

type ServiceRegistry struct {
	client    *api.Client
	serviceID string
}

// NewServiceRegistry builds a Consul client pointed at the given agent
// address.
func NewServiceRegistry(consulAddress string) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = consulAddress

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %v", err)
	}

	return &ServiceRegistry{client: client}, nil
}

// Register announces the service with an HTTP health check on /health.
func (sr *ServiceRegistry) Register(serviceName, serviceAddress, port string) error {
	portNum, _ := strconv.Atoi(port)
	sr.serviceID = fmt.Sprintf("%s-%s", serviceName, port)

	registration := &api.AgentServiceRegistration{
		ID:      sr.serviceID,
		Name:    serviceName,
		Port:    portNum,
		Address: serviceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", serviceAddress, port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"quiz", "adaptive"},
	}

	if err := sr.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service with Consul: %v", err)
	}

	log.Println("Successfully registered service with Consul")
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	return sr.client.Agent().ServiceDeregister(sr.serviceID)
}
