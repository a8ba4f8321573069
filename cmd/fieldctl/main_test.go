package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/dto"
)

func newDirectoryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/agent/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer issued-token")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/dashboard/summary", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.SummaryResponse{
			PendingCount:     2,
			TotalOutstanding: decimal.RequireFromString("124500.00"),
		})
	})
	mux.HandleFunc("GET /api/orders/pending", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]dto.PendingOrderResponse{{
			OrderNumber:  "OS001",
			CustomerName: "Achieng Otieno",
			Zone:         "Kilimani",
			Total:        decimal.RequireFromString("69500.00"),
			ItemCount:    2,
			PlacedAt:     time.Unix(0, 0),
		}})
	})
	mux.HandleFunc("GET /api/orders/OS001", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.OrderResponse{
			OrderNumber:   "OS001",
			CustomerName:  "Achieng Otieno",
			Total:         decimal.RequireFromString("69500.00"),
			PaymentMethod: "cash",
			PaymentStatus: "pending",
		})
	})
	mux.HandleFunc("GET /api/orders/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "OS001" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(dto.OrderResponse{
			OrderNumber:   "OS001",
			CustomerName:  "Achieng Otieno",
			Total:         decimal.RequireFromString("69500.00"),
			PaymentStatus: "pending",
		})
	})
	mux.HandleFunc("POST /api/orders/OS001/payment", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dto.PaymentReceiptResponse{
			TransactionReference: "TXN-ABC",
			OrderNumber:          "OS001",
			Method:               "cash",
			AmountReceived:       decimal.RequireFromString("69500.00"),
			PaidAt:               time.Now(),
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRunLogin(t *testing.T) {
	server := newDirectoryServer(t)
	t.Setenv("FIELDCTL_SERVER", server.URL)

	var out bytes.Buffer
	err := run(context.Background(), []string{"login", "-login", "agent", "-password", "pass"}, &out)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !strings.Contains(out.String(), "FIELDCTL_TOKEN=issued-token") {
		t.Fatalf("expected token export line, got %q", out.String())
	}
}

func TestRunSummary(t *testing.T) {
	server := newDirectoryServer(t)
	t.Setenv("FIELDCTL_SERVER", server.URL)
	t.Setenv("FIELDCTL_TOKEN", "issued-token")

	var out bytes.Buffer
	if err := run(context.Background(), []string{"summary"}, &out); err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if !strings.Contains(out.String(), "pending orders: 2") || !strings.Contains(out.String(), "124500.00") {
		t.Fatalf("unexpected summary output: %q", out.String())
	}
}

func TestRunPending(t *testing.T) {
	server := newDirectoryServer(t)
	t.Setenv("FIELDCTL_SERVER", server.URL)
	t.Setenv("FIELDCTL_TOKEN", "issued-token")

	var out bytes.Buffer
	if err := run(context.Background(), []string{"pending", "-limit", "5"}, &out); err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	if !strings.Contains(out.String(), "OS001") || !strings.Contains(out.String(), "2 item(s)") {
		t.Fatalf("unexpected pending output: %q", out.String())
	}
}

func TestRunFind(t *testing.T) {
	server := newDirectoryServer(t)
	t.Setenv("FIELDCTL_SERVER", server.URL)
	t.Setenv("FIELDCTL_TOKEN", "issued-token")

	var out bytes.Buffer
	if err := run(context.Background(), []string{"find", "OS001"}, &out); err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !strings.Contains(out.String(), "order OS001") {
		t.Fatalf("unexpected find output: %q", out.String())
	}
}

func TestRunRecordCommits(t *testing.T) {
	server := newDirectoryServer(t)
	t.Setenv("FIELDCTL_SERVER", server.URL)
	t.Setenv("FIELDCTL_TOKEN", "issued-token")

	var out bytes.Buffer
	err := run(context.Background(), []string{"record", "-method", "cash", "OS001"}, &out)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if !strings.Contains(out.String(), "committed: TXN-ABC") {
		t.Fatalf("unexpected record output: %q", out.String())
	}
}

func TestRunRecordRejectedLocally(t *testing.T) {
	server := newDirectoryServer(t)
	t.Setenv("FIELDCTL_SERVER", server.URL)
	t.Setenv("FIELDCTL_TOKEN", "issued-token")

	var out bytes.Buffer
	// mpesa evidence below minimum lengths is rejected before any write
	err := run(context.Background(), []string{"record", "-method", "mpesa_manual", "-ref", "x", "-txn", "y", "OS001"}, &out)
	if err == nil {
		t.Fatal("expected rejection error")
	}
	if !strings.Contains(out.String(), "rejected:") {
		t.Fatalf("expected field rejections, got %q", out.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), nil, &out); err == nil {
		t.Fatal("expected usage error for no arguments")
	}
	if err := run(context.Background(), []string{"bogus"}, &out); err == nil {
		t.Fatal("expected usage error for unknown command")
	}
	if err := run(context.Background(), []string{"login"}, &out); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}
