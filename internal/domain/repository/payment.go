package repository

import (
	"context"

	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
)

// PaymentRepository provides read access to accepted payment evidence.
type PaymentRepository interface {
	GetByOrderNumber(ctx context.Context, number string) (*model.Payment, error)
}
