package testutil

import (
	"context"
)

type MockPaymentCaller struct {
	DebitCallerFunc func(ctx context.Context, account string, amount int64) error
	CreditFunc      func(ctx context.Context, account string, amount int64) error
	RefundFunc      func(ctx context.Context, account string, amount int64) error
}

func (m *MockPaymentCaller) DebitCaller(ctx context.Context, account string, amount int64) error {
	if m.DebitCallerFunc != nil {
		return m.DebitCallerFunc(ctx, account, amount)
	}

	return nil
}

func (m *MockPaymentCaller) Credit(ctx context.Context, account string, amount int64) error {
	if m.CreditFunc != nil {
		return m.CreditFunc(ctx, account, amount)
	}

	return nil
}

func (m *MockPaymentCaller) Refund(ctx context.Context, account string, amount int64) error {
	if m.RefundFunc != nil {
		return m.RefundFunc(ctx, account, amount)
	}

	return nil
}
