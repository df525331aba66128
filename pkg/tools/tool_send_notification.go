package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/mailer"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// SendNotificationTool composes a plain-text report and hands it to the
// mail transport. It does not require a cluster connection; callers pass
// any previously fetched cluster data in the body themselves.
type SendNotificationTool struct {
	BaseTool
	Composer *mailer.Composer
}

func (t *SendNotificationTool) Name() string { return "send_notification" }

func (t *SendNotificationTool) Description() string {
	return "Send an email notification with the given subject and body"
}

func (t *SendNotificationTool) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "recipient", Type: "string", Required: true, Description: "Email address to notify"},
		{Name: "subject", Type: "string", Required: true, Description: "Email subject line"},
		{Name: "body", Type: "string", Required: true, Description: "Notification content"},
	}
}

func (t *SendNotificationTool) Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error) {
	recipient := StringArg(args, "recipient")
	subject := StringArg(args, "subject")
	body := StringArg(args, "body")

	slog.Info("sending notification", "recipient", recipient)

	receipt, err := t.Composer.Send(ctx, recipient, subject, body)
	if err != nil {
		return nil, err
	}
	return t.Respond(t.Name(), receipt), nil
}
