package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

type fakeTransport struct {
	to, subject, body string
	err               error
	calls             int
}

func (f *fakeTransport) Send(_ context.Context, to, subject, body string) error {
	f.calls++
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

func TestSendComposesReport(t *testing.T) {
	ft := &fakeTransport{}
	c := NewComposer(ft)

	receipt, err := c.Send(context.Background(), "ops@example.com", "job failed", "job j1 entered FAILED state")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Recipient != "ops@example.com" || receipt.SentAt == "" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
	if ft.calls != 1 {
		t.Fatalf("expected one transport call, got %d", ft.calls)
	}
	if !strings.Contains(ft.body, "job j1 entered FAILED state") {
		t.Errorf("body not embedded in report: %q", ft.body)
	}
	if !strings.HasPrefix(ft.body, "Flink Cluster Notification") {
		t.Errorf("missing report header: %q", ft.body)
	}
	if !strings.Contains(ft.body, "Sent by flink-mcp-server at ") {
		t.Errorf("missing footer: %q", ft.body)
	}
}

func TestSendValidation(t *testing.T) {
	ft := &fakeTransport{}
	c := NewComposer(ft)

	cases := []struct {
		name                      string
		recipient, subject, body string
	}{
		{"bad address", "not-an-address", "s", "b"},
		{"empty recipient", "", "s", "b"},
		{"empty subject", "ops@example.com", "  ", "b"},
		{"empty body", "ops@example.com", "s", ""},
	}
	for _, tc := range cases {
		_, err := c.Send(context.Background(), tc.recipient, tc.subject, tc.body)
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if kind := types.Classify(err).Kind; kind != types.KindValidation {
			t.Errorf("%s: expected VALIDATION_ERROR, got %s", tc.name, kind)
		}
	}
	if ft.calls != 0 {
		t.Errorf("transport must not be called on validation failure, got %d calls", ft.calls)
	}
}

func TestSendTransportFailure(t *testing.T) {
	ft := &fakeTransport{err: errors.New("connection refused")}
	c := NewComposer(ft)

	_, err := c.Send(context.Background(), "ops@example.com", "s", "b")
	if err == nil {
		t.Fatal("expected delivery error")
	}
	e := types.Classify(err)
	if e.Kind != types.KindDelivery {
		t.Errorf("expected DELIVERY_ERROR, got %s", e.Kind)
	}
	if !strings.Contains(e.Message, "connection refused") {
		t.Errorf("expected transport diagnostic in message, got %q", e.Message)
	}
}

func TestSendWithoutTransport(t *testing.T) {
	c := NewComposer(nil)
	_, err := c.Send(context.Background(), "ops@example.com", "s", "b")
	if types.Classify(err).Kind != types.KindDelivery {
		t.Errorf("expected DELIVERY_ERROR without transport, got %v", err)
	}
}

func TestNewSMTPTransportRequiresHostAndFrom(t *testing.T) {
	if tr := NewSMTPTransport(SMTPConfig{Port: 587}); tr != nil {
		t.Error("expected nil transport without host")
	}
	if tr := NewSMTPTransport(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "x@example.com"}); tr == nil {
		t.Error("expected transport with host and from")
	}
}
