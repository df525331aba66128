package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/config"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/flink"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/mailer"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/mcp"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/telemetry"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/tools"
)

func main() {
	// Initialize configuration
	cfg := config.NewFromEnv()
	cfg.SetupLogging()

	slog.Info("starting flink-mcp-server",
		"port", cfg.Port,
		"flinkUrl", cfg.FlinkURL,
		"otelEnabled", cfg.OTelEnabled,
	)

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry (traces, metrics, logs)
	shutdown, err := telemetry.InitTelemetry(ctx, cfg.OTelEnabled, cfg.OTelEndpoint)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer shutdown()
	if cfg.OTelEnabled {
		telemetry.SetupOTelLogging(cfg.SlogLevel())
	}

	// Cluster connection manager. Bearer token takes precedence over
	// basic auth when both are configured.
	var cred *flink.Credential
	switch {
	case cfg.APIToken != "":
		cred = &flink.Credential{BearerToken: cfg.APIToken}
	case cfg.APIUser != "":
		cred = &flink.Credential{Username: cfg.APIUser, Password: cfg.APIPassword}
	}
	conn := flink.NewManager(cred)

	// Optional eager connect. A failed probe is logged but does not stop
	// the server: initialize_connection can be retried at any time.
	if cfg.FlinkURL != "" {
		res := conn.Initialize(ctx, cfg.FlinkURL)
		if res.Connected {
			slog.Info("connected to flink cluster", "url", res.URL)
		} else {
			slog.Warn("flink cluster not reachable at startup", "url", cfg.FlinkURL, "detail", res.Message)
		}
	}

	// Notification transport is optional; without SMTP config the
	// send_notification tool reports a delivery error.
	var transport mailer.Transport
	if smtp := mailer.NewSMTPTransport(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}); smtp != nil {
		transport = smtp
	}
	composer := mailer.NewComposer(transport)

	// Initialize tool registry
	registry := tools.NewRegistry()
	base := tools.BaseTool{Conn: conn}

	// Connection tools
	registry.Register(&tools.InitializeConnectionTool{BaseTool: base})
	registry.Register(&tools.ConnectionStatusTool{BaseTool: base})

	// Cluster and job tools
	registry.Register(&tools.ClusterInfoTool{BaseTool: base})
	registry.Register(&tools.ListJobsTool{BaseTool: base})
	registry.Register(&tools.JobDetailsTool{BaseTool: base})
	registry.Register(&tools.JobExceptionsTool{BaseTool: base})
	registry.Register(&tools.JobMetricsTool{BaseTool: base})

	// TaskManager tools
	registry.Register(&tools.ListTaskManagersTool{BaseTool: base})
	registry.Register(&tools.TaskManagerDetailsTool{BaseTool: base})
	registry.Register(&tools.TaskManagerMetricsTool{BaseTool: base})

	// Diagnostics and misc tools
	registry.Register(&tools.BackpressureTool{BaseTool: base})
	registry.Register(&tools.ListJarsTool{BaseTool: base})
	registry.Register(&tools.SendNotificationTool{BaseTool: base, Composer: composer})

	// Create and start MCP server
	mcpServer := mcp.NewServer(registry, conn.Connected, cfg.Port)

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := mcpServer.ListenAndServe(ctx, addr); err != nil && err != http.ErrServerClosed {
		slog.Error("MCP server stopped", "error", err)
	}

	slog.Info("flink-mcp-server stopped")
}
