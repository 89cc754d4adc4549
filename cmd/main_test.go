package main

import (
	"bytes"
	"context"
	"flag"
	"net"
	"os"
	"testing"
	"time"

	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"google.golang.org/grpc"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	configPath := parseFlags()
	expected := "config.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	configPath := parseFlags()
	expected := "myconfig.env"

	if configPath != expected {
		t.Errorf("expected %s, got %s", expected, configPath)
	}
}

// ----------------- Tests for printBuildInfo -----------------

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Set build info variables
	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()
	os.Stdout = oldStdout

	// Check if all expected strings are present
	if !contains(output, "version v1.0.0") ||
		!contains(output, "commit abcd1234") ||
		!contains(output, "build 2025-09-26") {
		t.Errorf("printBuildInfo output unexpected:\n%s", output)
	}
}

// Helper function to check substring
func contains(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	// Application
	if cfg.appHost != "localhost" || cfg.appPort != "8080" || cfg.logLevel != "info" {
		t.Errorf("unexpected app config: %v/%v/%v", cfg.appHost, cfg.appPort, cfg.logLevel)
	}

	// PostgreSQL
	if cfg.pgHost != "localhost" || cfg.pgPort != 5432 || cfg.pgUser != "user" || cfg.pgPassword != "password" || cfg.pgDB != "database" ||
		cfg.pgMaxOpenConns != 16 || cfg.pgMaxIdleConns != 8 {
		t.Errorf("unexpected postgres config")
	}

	// Redis
	if cfg.redisHost != "localhost" || cfg.redisPort != 6379 || cfg.redisDB != 0 || cfg.redisPassword != "" ||
		cfg.redisPoolSize != 10 || cfg.redisMinIdleConns != 2 {
		t.Errorf("unexpected redis config")
	}

	// Kafka
	if cfg.kafkaAddr != "" || cfg.kafkaTopic != "wallet-transactions" {
		t.Errorf("unexpected kafka config")
	}

	// gRPC
	if cfg.gwHost != "localhost" || cfg.gwPort != "50051" {
		t.Errorf("unexpected grpc config")
	}

	// JWT
	if cfg.jwtSecretKey != "my_super_secret_key" || cfg.jwtExpSecond != 3600 {
		t.Errorf("unexpected jwt config")
	}

	// Provider
	if cfg.mapleradBaseURL != "https://sandbox.api.maplerad.com/v1" ||
		cfg.webhookSigAlgo != "sha512" ||
		cfg.signatureHeader != "x-maplerad-signature" ||
		cfg.providerRateLimit != 10 || cfg.providerRateWin != 1000 {
		t.Errorf("unexpected provider config")
	}
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	os.Setenv("APP_HOST", "127.0.0.1")
	os.Setenv("APP_PORT", "9090")
	os.Setenv("APP_LOG_LEVEL", "debug")

	os.Setenv("POSTGRES_HOST", "pg.example.com")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("POSTGRES_USER", "admin")
	os.Setenv("POSTGRES_PASSWORD", "secret")
	os.Setenv("POSTGRES_DB", "mydb")
	os.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	os.Setenv("POSTGRES_MAX_IDLE_CONNS", "10")

	os.Setenv("REDIS_HOST", "redis.example.com")
	os.Setenv("REDIS_PORT", "6380")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("REDIS_PASSWORD", "redispass")
	os.Setenv("REDIS_POOL_SIZE", "15")
	os.Setenv("REDIS_MIN_IDLE_CONNS", "5")

	os.Setenv("KAFKA_ADDR", "kafka.example.com:9092")
	os.Setenv("KAFKA_TOPIC", "tx-events")

	os.Setenv("GW_EXCHANGER_HOST", "grpc.example.com")
	os.Setenv("GW_EXCHANGER_PORT", "50052")

	os.Setenv("JWT_SECRET_KEY", "supersecret")
	os.Setenv("JWT_EXP_SECOND", "300")

	os.Setenv("MAPLERAD_BASE_URL", "https://api.maplerad.com/v1")
	os.Setenv("MAPLERAD_SECRET_KEY", "sk_test")
	os.Setenv("MAPLERAD_WEBHOOK_SECRET", "whsec")
	os.Setenv("MAPLERAD_WEBHOOK_ALGO", "sha256")
	os.Setenv("MAPLERAD_SIGNATURE_HEADER", "x-custom-signature")
	os.Setenv("MAPLERAD_RATE_LIMIT", "5")
	os.Setenv("MAPLERAD_RATE_WINDOW_MS", "2000")

	cfg, err := parseConfig("nonexistent.env")
	if err != nil {
		t.Fatalf("parseConfig returned error: %v", err)
	}

	if cfg.appHost != "127.0.0.1" || cfg.appPort != "9090" || cfg.logLevel != "debug" {
		t.Errorf("unexpected app config")
	}
	if cfg.pgHost != "pg.example.com" || cfg.pgPort != 5433 || cfg.pgUser != "admin" || cfg.pgPassword != "secret" || cfg.pgDB != "mydb" ||
		cfg.pgMaxOpenConns != 20 || cfg.pgMaxIdleConns != 10 {
		t.Errorf("unexpected postgres config")
	}
	if cfg.redisHost != "redis.example.com" || cfg.redisPort != 6380 || cfg.redisDB != 2 || cfg.redisPassword != "redispass" ||
		cfg.redisPoolSize != 15 || cfg.redisMinIdleConns != 5 {
		t.Errorf("unexpected redis config")
	}
	if cfg.kafkaAddr != "kafka.example.com:9092" || cfg.kafkaTopic != "tx-events" {
		t.Errorf("unexpected kafka config")
	}
	if cfg.gwHost != "grpc.example.com" || cfg.gwPort != "50052" {
		t.Errorf("unexpected grpc config")
	}
	if cfg.jwtSecretKey != "supersecret" || cfg.jwtExpSecond != 300 {
		t.Errorf("unexpected jwt config")
	}
	if cfg.mapleradBaseURL != "https://api.maplerad.com/v1" || cfg.mapleradSecretKey != "sk_test" ||
		cfg.webhookSecret != "whsec" || cfg.webhookSigAlgo != "sha256" ||
		cfg.signatureHeader != "x-custom-signature" ||
		cfg.providerRateLimit != 5 || cfg.providerRateWin != 2000 {
		t.Errorf("unexpected provider config")
	}
}

// ------------------ Mock gRPC Server ------------------
type mockExchangeServer struct {
	pb.UnimplementedExchangeServiceServer
}

func (m *mockExchangeServer) GetExchangeRates(ctx context.Context, _ *pb.Empty) (*pb.ExchangeRatesResponse, error) {
	return &pb.ExchangeRatesResponse{
		Rates: map[string]float32{
			"NGN": 1.0,
			"USD": 0.00065,
			"GBP": 0.00051,
		},
	}, nil
}

func (m *mockExchangeServer) GetExchangeRateForCurrency(ctx context.Context, req *pb.CurrencyRequest) (*pb.ExchangeRateResponse, error) {
	rate := float32(1.0)
	switch req.ToCurrency {
	case "USD":
		rate = 0.00065
	case "GBP":
		rate = 0.00051
	}
	return &pb.ExchangeRateResponse{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Rate:         rate,
	}, nil
}

// Start mock gRPC server and return host:port and stop function
func startMockGRPCServer() (addr string, stop func(), err error) {
	lis, err := net.Listen("tcp", "127.0.0.1:0") // OS assigns a free port
	if err != nil {
		return "", nil, err
	}
	s := grpc.NewServer()
	pb.RegisterExchangeServiceServer(s, &mockExchangeServer{})
	go s.Serve(lis)

	stop = func() {
		s.Stop()
		lis.Close()
	}
	return lis.Addr().String(), stop, nil
}

// ------------------ Full integration test ------------------
func TestRun_Success(t *testing.T) {
	ctx := context.Background()

	// ------------------ Postgres container ------------------
	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: pgReq, Started: true})
	if err != nil {
		t.Fatal(err)
	}
	defer pgContainer.Terminate(ctx)

	pgHost, _ := pgContainer.Host(ctx)
	pgPort, _ := pgContainer.MappedPort(ctx, "5432")

	// ------------------ Redis container ------------------
	redisReq := testcontainers.ContainerRequest{
		Image:        "redis:7",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: redisReq, Started: true})
	if err != nil {
		t.Fatal(err)
	}
	defer redisContainer.Terminate(ctx)

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, "6379")

	// ------------------ Mock gRPC server ------------------
	grpcAddr, stopGRPC, err := startMockGRPCServer()
	if err != nil {
		t.Fatal(err)
	}
	defer stopGRPC()

	grpcHost, grpcPort, err := net.SplitHostPort(grpcAddr)
	if err != nil {
		t.Fatal(err)
	}

	// ------------------ Run ------------------
	testCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cfg := config{
		appHost:           "127.0.0.1",
		appPort:           "8086",
		logLevel:          "debug",
		pgHost:            pgHost,
		pgPort:            pgPort.Int(),
		pgUser:            "user",
		pgPassword:        "password",
		pgDB:              "testdb",
		pgMaxOpenConns:    5,
		pgMaxIdleConns:    2,
		redisHost:         redisHost,
		redisPort:         redisPort.Int(),
		redisPoolSize:     10,
		redisMinIdleConns: 2,
		gwHost:            grpcHost,
		gwPort:            grpcPort,
		jwtSecretKey:      "testsecret",
		jwtExpSecond:      60,
		mapleradBaseURL:   "http://127.0.0.1:1",
		mapleradSecretKey: "sk_test",
		webhookSecret:     "whsec_test",
		webhookSigAlgo:    "sha512",
		providerRateLimit: 10,
		providerRateWin:   1000,
		rateCacheTTL:      60,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(testCtx, cfg)
	}()

	select {
	case <-time.After(11 * time.Second):
		t.Fatal("test timed out")
	case err := <-errCh:
		if err != nil {
			t.Fatalf("expected run to succeed, got error: %v", err)
		}
		t.Log("run completed successfully")
	}
}
