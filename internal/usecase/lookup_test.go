package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	testhelpers "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/test"
)

func TestNormalizeOrderNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{" os12345678 ", "OS12345678"},
		{"OS12345678", "OS12345678"},
		{"\tos001\n", "OS001"},
		{"   ", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeOrderNumber(tc.raw); got != tc.want {
			t.Fatalf("NormalizeOrderNumber(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestLookupFindResolvesNormalizedInput(t *testing.T) {
	stub := &testhelpers.OrderRepositoryStub{Orders: []model.Order{{OrderNumber: "OS12345678"}}}
	uc := NewLookupUseCase(stub)

	lower, err := uc.Find(context.Background(), " os12345678 ")
	if err != nil {
		t.Fatalf("find returned error: %v", err)
	}
	upper, err := uc.Find(context.Background(), "OS12345678")
	if err != nil {
		t.Fatalf("find returned error: %v", err)
	}
	if lower.OrderNumber != upper.OrderNumber {
		t.Fatal("case and whitespace variants must resolve to the same order")
	}
}

func TestLookupFindEmptyInputLocalReject(t *testing.T) {
	stub := &testhelpers.OrderRepositoryStub{}
	uc := NewLookupUseCase(stub)

	if _, err := uc.Find(context.Background(), "   "); !errors.Is(err, domainErrors.ErrEmptyOrderNumber) {
		t.Fatalf("expected ErrEmptyOrderNumber, got %v", err)
	}
	if len(stub.Gets) != 0 {
		t.Fatal("empty input must be rejected without a directory call")
	}
}

func TestLookupFindDistinguishesNotFoundFromTransport(t *testing.T) {
	uc := NewLookupUseCase(&testhelpers.OrderRepositoryStub{})
	if _, err := uc.Find(context.Background(), "OS404"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	transport := errors.New("dial tcp: timeout")
	uc = NewLookupUseCase(&testhelpers.OrderRepositoryStub{
		GetByNumberFn: func(context.Context, string) (*model.Order, error) { return nil, transport },
	})
	_, err := uc.Find(context.Background(), "OS404")
	if errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatal("transport failure must not masquerade as not found")
	}
	if !errors.Is(err, transport) {
		t.Fatalf("expected transport error to propagate, got %v", err)
	}
}
