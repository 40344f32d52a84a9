package flash

import (
	"reflect"
	"testing"
)

func TestReduceTablesRoundTrip(t *testing.T) {
	sections := []TableSection{
		{
			ID:     1,
			Number: 5,
			Orders: []Order{
				{ID: 10, Status: OrderStatusOpen},
			},
		},
		{
			ID:     2,
			Number: 6,
			Orders: []Order{},
		},
	}

	models := ReduceTables(sections)

	if len(models) != 2 {
		t.Fatalf("ReduceTables() returned %d models, want 2", len(models))
	}

	first := models[0]
	if first.ID != 1 {
		t.Errorf("models[0].ID = %d, want 1", first.ID)
	}
	if first.OrderID == nil || *first.OrderID != 10 {
		t.Errorf("models[0].OrderID = %v, want 10", first.OrderID)
	}
	if first.TableNumber != 5 {
		t.Errorf("models[0].TableNumber = %d, want 5", first.TableNumber)
	}
	if first.Status != TableStatusOccupied {
		t.Errorf("models[0].Status = %q, want %q", first.Status, TableStatusOccupied)
	}

	second := models[1]
	if second.OrderID != nil {
		t.Errorf("models[1].OrderID = %v, want nil", second.OrderID)
	}
	if second.TableNumber != 6 {
		t.Errorf("models[1].TableNumber = %d, want 6", second.TableNumber)
	}
	if second.Status != TableStatusAvailable {
		t.Errorf("models[1].Status = %q, want %q", second.Status, TableStatusAvailable)
	}
}

func TestReduceTablesStatusDerivation(t *testing.T) {
	tests := []struct {
		name   string
		orders []Order
		want   string
	}{
		{
			name:   "openOrderMeansOccupied",
			orders: []Order{{ID: 1, Status: "Fechada"}, {ID: 2, Status: OrderStatusOpen}},
			want:   TableStatusOccupied,
		},
		{
			name:   "allClosedMeansAvailable",
			orders: []Order{{ID: 1, Status: "Fechada"}, {ID: 2, Status: "Fechada"}},
			want:   TableStatusAvailable,
		},
		{
			name:   "noOrdersMeansAvailable",
			orders: []Order{},
			want:   TableStatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models := ReduceTables([]TableSection{{ID: 1, Number: 3, Orders: tt.orders}})
			if len(models) != 1 {
				t.Fatalf("ReduceTables() returned %d models, want 1", len(models))
			}
			if models[0].Status != tt.want {
				t.Errorf("Status = %q, want %q", models[0].Status, tt.want)
			}
		})
	}
}

func TestReduceTablesNoDuplicateTableNumbers(t *testing.T) {
	sections := []TableSection{
		{ID: 1, Number: 5, Orders: []Order{{ID: 10, Status: OrderStatusOpen}}},
		{ID: 2, Number: 5, Orders: []Order{{ID: 11, Status: "Fechada"}}},
		{ID: 3, Number: 5, Orders: []Order{}},
		{ID: 4, Number: 6, Orders: []Order{}},
		{ID: 5, Number: 6, Orders: []Order{}},
	}

	models := ReduceTables(sections)

	seen := make(map[int]bool)
	for _, model := range models {
		if seen[model.TableNumber] {
			t.Errorf("duplicate table number %d in output", model.TableNumber)
		}
		seen[model.TableNumber] = true
	}

	if len(models) != 2 {
		t.Errorf("ReduceTables() returned %d models, want 2", len(models))
	}
}

func TestReduceTablesFirstOccurrenceWins(t *testing.T) {
	// The empty section comes first, so the grid keeps the available entry
	// even though a later section for the same table has an open order.
	sections := []TableSection{
		{ID: 1, Number: 5, Orders: []Order{}},
		{ID: 2, Number: 5, Orders: []Order{{ID: 10, Status: OrderStatusOpen}}},
	}

	models := ReduceTables(sections)

	if len(models) != 1 {
		t.Fatalf("ReduceTables() returned %d models, want 1", len(models))
	}
	if models[0].Status != TableStatusAvailable {
		t.Errorf("Status = %q, want %q (first section processed wins)", models[0].Status, TableStatusAvailable)
	}
	if models[0].OrderID != nil {
		t.Errorf("OrderID = %v, want nil", models[0].OrderID)
	}
}

func TestReduceTablesPreservesInputOrdering(t *testing.T) {
	sections := []TableSection{
		{ID: 1, Number: 9, Orders: []Order{}},
		{ID: 2, Number: 2, Orders: []Order{{ID: 20, Status: OrderStatusOpen}}},
		{ID: 3, Number: 7, Orders: []Order{}},
	}

	models := ReduceTables(sections)

	got := make([]int, 0, len(models))
	for _, model := range models {
		got = append(got, model.TableNumber)
	}

	want := []int{9, 2, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("table ordering = %v, want %v", got, want)
	}
}

func TestReduceTablesIsPure(t *testing.T) {
	sections := []TableSection{
		{ID: 1, Number: 5, Orders: []Order{{ID: 10, Status: OrderStatusOpen}}},
		{ID: 2, Number: 6, Orders: []Order{}},
		{ID: 3, Number: 5, Orders: []Order{}},
	}

	first := ReduceTables(sections)
	second := ReduceTables(sections)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("ReduceTables() is not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestReduceTablesEmptyInput(t *testing.T) {
	models := ReduceTables(nil)
	if len(models) != 0 {
		t.Errorf("ReduceTables(nil) returned %d models, want 0", len(models))
	}
}
