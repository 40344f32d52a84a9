package flash

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"
)

type openOrderForm struct {
	CustomerName string
	TableNumber  string
	Error        string
}

// OpenOrderForm serves the "Abrir Comanda" form.
func (h *Handler) OpenOrderForm(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.OpenOrderForm")
	defer finish()

	h.renderOpenOrderPage(w, r, openOrderForm{})
}

// OpenOrder opens a comanda for a table through the gateway. On success the
// shared table list is superseded so the grid shows the table occupied before
// the next full refresh.
func (h *Handler) OpenOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.OpenOrder")
	defer finish()

	session := sessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.log().Error("cannot parse open order form", "error", err)
		h.renderOpenOrderPage(w, r, openOrderForm{Error: "Não foi possível ler o formulário."})
		return
	}

	form := openOrderForm{
		CustomerName: strings.TrimSpace(r.FormValue("customer_name")),
		TableNumber:  strings.TrimSpace(r.FormValue("table_number")),
	}

	if form.CustomerName == "" || form.TableNumber == "" {
		form.Error = "Por favor, preencha todos os campos."
		h.renderOpenOrderPage(w, r, form)
		return
	}

	tableNumber, err := strconv.Atoi(form.TableNumber)
	if err != nil || tableNumber <= 0 {
		form.Error = "Número de mesa inválido."
		h.renderOpenOrderPage(w, r, form)
		return
	}

	orderID, err := h.gateway.OpenOrder(r.Context(), session.Token, tableNumber, form.CustomerName)
	if err != nil {
		h.log().Error("cannot open order", "error", err, "table_number", tableNumber)
		form.Error = openOrderErrorMessage(err)
		h.renderOpenOrderPage(w, r, form)
		return
	}

	h.supersedeTable(tableNumber, orderID, form.CustomerName)

	aqm.RedirectOrHeader(w, r, "/tables?opened="+strconv.Itoa(orderID))
}

// OrderClosed renders the closure/confirmation page for one comanda. The
// close action itself is navigational: no delete call is issued against the
// backend from this screen.
func (h *Handler) OrderClosed(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.OrderClosed")
	defer finish()

	session := sessionFromContext(r.Context())

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || orderID <= 0 {
		h.log().Error("invalid order id", "id", chi.URLParam(r, "id"))
		http.Redirect(w, r, "/tables", http.StatusSeeOther)
		return
	}

	var pageError string
	detail, err := h.gateway.GetOrder(r.Context(), session.Token, orderID)
	if err != nil {
		h.log().Error("cannot load order", "error", err, "order_id", orderID)
		pageError = "Não foi possível carregar a comanda."
		detail = &OrderDetail{ID: orderID, Items: []Item{}}
	}

	data := map[string]interface{}{
		"Title":          "Fechar Comanda",
		"Template":       "orderclosed",
		"User":           h.getUserFromSession(r),
		"Order":          detail,
		"PaymentMethods": paymentMethods,
		"Error":          pageError,
	}

	h.renderTemplate(w, "orderclosed.html", "base.html", data)
}

func (h *Handler) renderOpenOrderPage(w http.ResponseWriter, r *http.Request, form openOrderForm) {
	data := map[string]interface{}{
		"Title":    "Abrir Comanda",
		"Template": "openorder",
		"User":     h.getUserFromSession(r),
		"Form":     form,
		"Error":    form.Error,
	}

	h.renderTemplate(w, "openorder.html", "base.html", data)
}

// supersedeTable swaps the shared list for one where the given table appears
// occupied by the new comanda. Full replacement, never an in-place edit.
func (h *Handler) supersedeTable(tableNumber, orderID int, customerName string) {
	current := h.tableStore.Read()

	next := make([]TableViewModel, 0, len(current)+1)
	for _, table := range current {
		if table.TableNumber == tableNumber {
			continue
		}
		next = append(next, table)
	}

	next = append(next, TableViewModel{
		ID:                  tableNumber,
		OrderID:             &orderID,
		Number:              tableNumber,
		TableNumber:         tableNumber,
		Status:              TableStatusOccupied,
		TotalValue:          0,
		FormattedTotalValue: "",
		CustomerName:        customerName,
		Items:               []Item{},
	})

	h.tableStore.Replace(next)
}

var paymentMethods = []string{"Cartão", "Dinheiro", "Pix"}

func openOrderErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return "A mesa já possui uma comanda aberta."
	case errors.Is(err, ErrNotFound):
		return "Mesa não encontrada."
	case errors.Is(err, ErrUnauthorized):
		return "Sessão expirada. Entre novamente."
	case errors.Is(err, ErrInvalidInput):
		return "Número de mesa inválido."
	default:
		return "Erro ao abrir a comanda. Tente novamente."
	}
}
