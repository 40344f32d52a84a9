package flash

import (
	"errors"
	"testing"
)

func TestProjectOrderDetail(t *testing.T) {
	createdAt := "2023-10-01T12:00:00Z"
	updatedAt := "2023-10-01T12:30:00Z"

	section := TableSection{
		ID:     1,
		Number: 5,
		Status: "ATIVA",
		Orders: []Order{
			{
				ID:                  11,
				CustomerID:          7,
				CustomerName:        "Maria",
				Status:              "Fechada",
				TotalValue:          10,
				FormattedTotalValue: "R$ 10,00",
			},
			{
				ID:           10,
				CustomerID:   3,
				CustomerName: "João",
				Status:       OrderStatusOpen,
				Items: []Item{
					{ProductID: 1, ProductName: "Chopp", Quantity: 2, UnitPrice: 8, TotalPrice: 16},
				},
				TotalValue:          16,
				FormattedTotalValue: "R$ 16,00",
				CreatedAt:           &createdAt,
				UpdatedAt:           &updatedAt,
			},
			{
				ID:           12,
				CustomerName: "Ana",
				Status:       OrderStatusOpen,
			},
		},
	}

	detail, err := ProjectOrderDetail(section)
	if err != nil {
		t.Fatalf("ProjectOrderDetail() error = %v", err)
	}

	if detail.ID != 10 {
		t.Errorf("ID = %d, want 10 (first open order)", detail.ID)
	}
	if detail.Number != 5 {
		t.Errorf("Number = %d, want 5", detail.Number)
	}
	if detail.CustomerName != "João" {
		t.Errorf("CustomerName = %q, want %q", detail.CustomerName, "João")
	}
	if detail.Status != OrderStatusOpen {
		t.Errorf("Status = %q, want %q (status follows the selected order)", detail.Status, OrderStatusOpen)
	}
	if detail.TotalValue != 16 {
		t.Errorf("TotalValue = %v, want 16", detail.TotalValue)
	}
	if len(detail.Items) != 1 {
		t.Errorf("Items count = %d, want 1", len(detail.Items))
	}
	if len(detail.Orders) != 2 {
		t.Errorf("Orders count = %d, want 2 (closed orders filtered out)", len(detail.Orders))
	}
	if detail.CreatedAt == nil || *detail.CreatedAt != createdAt {
		t.Errorf("CreatedAt = %v, want %q", detail.CreatedAt, createdAt)
	}
}

func TestProjectOrderDetailNoOpenOrder(t *testing.T) {
	tests := []struct {
		name   string
		orders []Order
	}{
		{
			name:   "emptyOrders",
			orders: []Order{},
		},
		{
			name:   "allClosed",
			orders: []Order{{ID: 1, Status: "Fechada"}, {ID: 2, Status: "Paga"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := ProjectOrderDetail(TableSection{ID: 1, Number: 5, Orders: tt.orders})
			if !errors.Is(err, ErrNoOpenOrder) {
				t.Errorf("error = %v, want ErrNoOpenOrder", err)
			}
			if detail != nil {
				t.Errorf("detail = %+v, want nil", detail)
			}
		})
	}
}

func TestProjectOrderDetailMissingOrders(t *testing.T) {
	detail, err := ProjectOrderDetail(TableSection{ID: 1, Number: 5, Orders: nil})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
	if detail != nil {
		t.Errorf("detail = %+v, want nil", detail)
	}
}

func TestProjectOrderDetailNilItems(t *testing.T) {
	section := TableSection{
		ID:     1,
		Number: 5,
		Orders: []Order{{ID: 10, Status: OrderStatusOpen, Items: nil}},
	}

	detail, err := ProjectOrderDetail(section)
	if err != nil {
		t.Fatalf("ProjectOrderDetail() error = %v", err)
	}
	if detail.Items == nil {
		t.Error("Items should never be nil in the projected detail")
	}
	if len(detail.Items) != 0 {
		t.Errorf("Items count = %d, want 0", len(detail.Items))
	}
}
