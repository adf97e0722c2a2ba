package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for the inventory service end-to-end
 * tests.
 */

const (
	testImageName = "stocktake-inventory-test:latest"

	testPassword = "correct horse battery"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Inventory Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Inventory Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/inventory/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// baseEnv is shared by every container. Rate limits are raised so tests
// that make many calls are not throttled.
func baseEnv() map[string]string {
	return map[string]string{
		"ENV":        "test",
		"LOG_LEVEL":  "info",
		"LOG_FORMAT": "json",

		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
}

// setupInventoryContainer starts the service with relaxed rate limits.
func setupInventoryContainer(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

// setupInventoryContainerWithDefaultRateLimits keeps the production limits,
// for tests that check throttling itself.
func setupInventoryContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, map[string]string{
		"ENV":        "test",
		"LOG_LEVEL":  "info",
		"LOG_FORMAT": "json",
	})
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// signUp registers an account and logs the client in.
func signUp(t *testing.T, client *inventorysdk.SDKClient, email string) {
	t.Helper()
	ctx := t.Context()

	_, err := client.Register(ctx, inventorysdk.RegisterUserRequest{
		Email:     email,
		Password:  testPassword,
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	require.NoError(t, err, "Register should succeed")

	user, err := client.Login(ctx, email, testPassword)
	require.NoError(t, err, "Login should succeed")
	require.Equal(t, email, user.Email)
}

// registerDevice adds a device and returns its full id.
func registerDevice(t *testing.T, client *inventorysdk.SDKClient, req inventorysdk.RegisterDeviceRequest) string {
	t.Helper()

	resp, err := client.RegisterDevice(t.Context(), req)
	require.NoError(t, err, "RegisterDevice should succeed")
	require.NotEmpty(t, resp.FullID)
	return resp.FullID
}

// assertStatus checks that err is an *APIError with the given status.
func assertStatus(t *testing.T, err error, status int, context string) *inventorysdk.APIError {
	t.Helper()
	require.Error(t, err, context)

	var apiErr *inventorysdk.APIError
	require.True(t, errors.As(err, &apiErr), "%s - expected APIError, got %v", context, err)
	require.Equal(t, status, apiErr.StatusCode, "%s - %s", context, apiErr.Error())
	return apiErr
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *inventorysdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

