package flash

import "fmt"

// ProjectOrderDetail reshapes a table section into the detail view model for
// the modal and the closure page. Only orders with status "Aberta" are
// considered; the first of them is the canonical order and the whole filtered
// slice is retained for multi-comanda rendering.
//
// A section without an orders array is a malformed payload and fails closed
// with ErrMalformedResponse. A section whose orders are all closed yields
// ErrNoOpenOrder; callers render the absent/placeholder state for it.
//
// All detail fields, status included, come from the canonical order. The
// section-level status is ignored here: it describes the table, not the
// comanda being displayed.
func ProjectOrderDetail(section TableSection) (*OrderDetail, error) {
	if section.Orders == nil {
		return nil, fmt.Errorf("table %d: %w: missing orders", section.Number, ErrMalformedResponse)
	}

	open := make([]Order, 0, len(section.Orders))
	for _, order := range section.Orders {
		if order.Status == OrderStatusOpen {
			open = append(open, order)
		}
	}

	if len(open) == 0 {
		return nil, ErrNoOpenOrder
	}

	canonical := open[0]

	items := canonical.Items
	if items == nil {
		items = []Item{}
	}

	return &OrderDetail{
		ID:                  canonical.ID,
		Number:              section.Number,
		CustomerID:          canonical.CustomerID,
		CustomerName:        canonical.CustomerName,
		Status:              canonical.Status,
		CreatedAt:           canonical.CreatedAt,
		UpdatedAt:           canonical.UpdatedAt,
		Items:               items,
		TotalValue:          canonical.TotalValue,
		FormattedTotalValue: canonical.FormattedTotalValue,
		Orders:              open,
	}, nil
}
