package flash

// Statuses as the Comanda Flash backend reports them. Orders carry
// Portuguese labels; table view models use the derived pair below.
const (
	OrderStatusOpen = "Aberta"

	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
)

// Item is a single order line as returned by the backend. Totals are
// display-only; the client never recomputes them.
type Item struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Order mirrors a comanda aggregate from the backend.
type Order struct {
	ID                  int     `json:"id"`
	CustomerID          int     `json:"customerId"`
	CustomerName        string  `json:"customerName"`
	TableNumber         int     `json:"tableNumber"`
	Status              string  `json:"status"`
	Items               []Item  `json:"items"`
	TotalValue          float64 `json:"totalValue"`
	FormattedTotalValue string  `json:"formattedTotalValue"`
	CreatedAt           *string `json:"createdAt"`
	UpdatedAt           *string `json:"updatedAt"`
}

// TableSection groups a physical table with every order placed at it in the
// current session window.
type TableSection struct {
	ID     int     `json:"id"`
	Number int     `json:"number"`
	Status string  `json:"status"`
	Orders []Order `json:"orders"`
}

// HasOpenOrder reports whether any order of the section is still open.
func (s TableSection) HasOpenOrder() bool {
	for _, order := range s.Orders {
		if order.Status == OrderStatusOpen {
			return true
		}
	}
	return false
}

// TableViewModel is the UI-ready shape of a table in the grid. It is rebuilt
// wholesale on every refresh and never mutated in place.
type TableViewModel struct {
	ID                  int
	OrderID             *int
	Number              int
	TableNumber         int
	Status              string
	TotalValue          float64
	FormattedTotalValue string
	CustomerName        string
	Items               []Item
}

// Occupied reports whether the table currently has an open comanda.
func (m TableViewModel) Occupied() bool {
	return m.Status == TableStatusOccupied
}

// OrderDetail is the detail view shape rendered in the table modal and the
// closure page. Orders keeps every open order for multi-comanda tables.
type OrderDetail struct {
	ID                  int     `json:"id"`
	Number              int     `json:"number"`
	CustomerID          int     `json:"customerId"`
	CustomerName        string  `json:"customerName"`
	Status              string  `json:"status"`
	CreatedAt           *string `json:"createdAt"`
	UpdatedAt           *string `json:"updatedAt"`
	Items               []Item  `json:"items"`
	TotalValue          float64 `json:"totalValue"`
	FormattedTotalValue string  `json:"formattedTotalValue"`
	Orders              []Order `json:"orders,omitempty"`
}
