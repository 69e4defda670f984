package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maykapos/hotelpos/internal/cart"
	"github.com/maykapos/hotelpos/internal/metrics"
	"github.com/maykapos/hotelpos/internal/models"
	"github.com/maykapos/hotelpos/internal/receipt"
	"github.com/maykapos/hotelpos/internal/storage"
)

// BillingService runs the checkout flow and serves the bill history.
// It owns the single active cart for the terminal.
type BillingService struct {
	store        storage.Store
	cart         *cart.Cart
	receiptWidth int
}

// CheckoutResult is what the cashier gets back after a successful sale.
type CheckoutResult struct {
	BillID  int64   `json:"bill_id"`
	BillNo  string  `json:"bill_no"`
	Total   float64 `json:"total"`
	Receipt string  `json:"receipt"`
}

// NewBillingService creates a BillingService around the given store and cart.
// receiptWidth falls back to the standard thermal width when non-positive.
func NewBillingService(store storage.Store, c *cart.Cart, receiptWidth int) *BillingService {
	if receiptWidth <= 0 {
		receiptWidth = receipt.DefaultWidth
	}
	return &BillingService{store: store, cart: c, receiptWidth: receiptWidth}
}

// Cart exposes the active cart for the HTTP handlers.
func (s *BillingService) Cart() *cart.Cart {
	return s.cart
}

// Checkout persists the current cart as a bill. The cart is cleared only
// after the bill is durably stored; on any error it is left untouched so
// the cashier can retry.
func (s *BillingService) Checkout(ctx context.Context, roomID *int64) (*CheckoutResult, error) {
	lines := s.cart.BillLines()
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", storage.ErrValidation)
	}
	total := s.cart.Total()

	billID, err := s.store.SaveBill(ctx, roomID, total, lines)
	if err != nil {
		slog.Error("Checkout failed", "lines", len(lines), "total", total, "error", err)
		return nil, err
	}
	s.cart.Clear()
	metrics.BillsSaved.Inc()
	metrics.CheckoutRevenue.Add(total)

	var roomCode string
	if roomID != nil {
		if room, err := s.store.GetRoom(ctx, *roomID); err == nil {
			roomCode = room.Code
		}
	}
	text := receipt.Render(receipt.Receipt{
		Number:    models.BillNumber(billID),
		PrintedAt: time.Now(),
		RoomCode:  roomCode,
		Total:     total,
		Lines:     toReceiptLines(lines),
	}, s.receiptWidth)

	slog.Info("Bill saved", "bill_id", billID, "total", total, "lines", len(lines))
	return &CheckoutResult{
		BillID:  billID,
		BillNo:  models.BillNumber(billID),
		Total:   total,
		Receipt: text,
	}, nil
}

// ListBills returns recent bills, newest first.
func (s *BillingService) ListBills(ctx context.Context, limit int) ([]models.BillSummary, error) {
	return s.store.ListBills(ctx, limit)
}

// BillLines returns the stored line items of one bill.
func (s *BillingService) BillLines(ctx context.Context, billID int64) ([]models.BillLine, error) {
	if _, err := s.store.GetBill(ctx, billID); err != nil {
		return nil, err
	}
	return s.store.LoadBillLines(ctx, billID)
}

// DeleteBill removes a bill and its lines.
func (s *BillingService) DeleteBill(ctx context.Context, billID int64) error {
	if err := s.store.DeleteBill(ctx, billID); err != nil {
		return err
	}
	slog.Info("Bill deleted", "bill_id", billID)
	metrics.BillsDeleted.Inc()
	return nil
}

// RenderBill re-prints a past bill. The printed timestamp is the time of
// the reprint, not the original sale.
func (s *BillingService) RenderBill(ctx context.Context, billID int64) (string, error) {
	summary, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return "", err
	}
	lines, err := s.store.LoadBillLines(ctx, billID)
	if err != nil {
		return "", err
	}
	var roomCode string
	if summary.RoomCode != nil {
		roomCode = *summary.RoomCode
	}
	return receipt.Render(receipt.Receipt{
		Number:    summary.BillNo,
		PrintedAt: time.Now(),
		RoomCode:  roomCode,
		Total:     summary.Total,
		Lines:     toReceiptLines(lines),
	}, s.receiptWidth), nil
}

func toReceiptLines(lines []models.BillLine) []receipt.Line {
	out := make([]receipt.Line, len(lines))
	for i, l := range lines {
		out[i] = receipt.Line{
			Name:       l.ItemName,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice,
		}
	}
	return out
}
