package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const slowHealthThreshold = time.Second

var httpClient = &http.Client{Timeout: 5 * time.Second}

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := strings.TrimRight(apiURL(args), "/")
	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		if err := checkEndpoint(base + path); err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}
		duration := time.Since(start)

		if duration > slowHealthThreshold {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, duration)
		}
	}

	return nil
}

func checkEndpoint(url string) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil
}
