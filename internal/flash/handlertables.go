package flash

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"
)

type tablesPageState struct {
	Error   string
	Success string
}

// Tables renders the grid with live data pulled through the shared store.
// A failed refresh keeps whatever list the store already had and degrades to
// a banner instead of an empty error page.
func (h *Handler) Tables(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.Tables")
	defer finish()

	session := sessionFromContext(r.Context())

	state := tablesPageState{}
	query := r.URL.Query()
	if opened := query.Get("opened"); opened != "" {
		state.Success = "Comanda aberta com sucesso! ID da comanda: " + opened
	}

	if err := h.tableStore.Refresh(r.Context(), session.Token); err != nil {
		h.log().Error("unable to load tables", "error", err)
		state.Error = "Não foi possível carregar as mesas."
	}

	tables := filterTables(h.tableStore.Read(), query.Get("table"), query.Get("order"))

	data := map[string]interface{}{
		"Title":      "Mesas",
		"Template":   "tables",
		"User":       h.getUserFromSession(r),
		"Tables":     tables,
		"TableQuery": query.Get("table"),
		"OrderQuery": query.Get("order"),
		"Error":      state.Error,
		"Success":    state.Success,
	}

	h.renderTemplate(w, "tables.html", "base.html", data)
}

// TableModal serves the comanda detail fragment for one table via HTMX.
func (h *Handler) TableModal(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.TableModal")
	defer finish()

	if !aqm.IsHTMX(r) {
		http.Redirect(w, r, "/tables", http.StatusSeeOther)
		return
	}

	session := sessionFromContext(r.Context())

	tableID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.log().Error("invalid table id", "id", chi.URLParam(r, "id"))
		h.renderTableModal(w, tableModalView{Error: "Identificador de mesa inválido."})
		return
	}

	section, err := h.gateway.GetTableDetail(r.Context(), session.Token, tableID)
	if err != nil {
		h.log().Error("cannot load table detail", "error", err, "table_id", tableID)
		h.renderTableModal(w, tableModalView{Error: modalErrorMessage(err)})
		return
	}

	detail, err := ProjectOrderDetail(*section)
	if err != nil {
		h.log().Info("no detail for table", "table_id", tableID, "reason", err)
		h.renderTableModal(w, tableModalView{
			Number:  section.Number,
			Message: "Nenhuma comanda disponível.",
		})
		return
	}

	h.renderTableModal(w, tableModalView{
		Number: detail.Number,
		Detail: detail,
	})
}

type tableModalView struct {
	Number  int
	Detail  *OrderDetail
	Message string
	Error   string
}

func (h *Handler) renderTableModal(w http.ResponseWriter, view tableModalView) {
	tmpl, err := h.tmplMgr.Get("table_modal.html")
	if err != nil {
		h.log().Error("error loading table modal template", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(w, "table_modal.html", view); err != nil {
		h.log().Error("error rendering table modal", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// filterTables reproduces the grid search bar: substring match on the table
// number, and on the order id when an order query is present.
func filterTables(tables []TableViewModel, tableQuery, orderQuery string) []TableViewModel {
	tableQuery = strings.TrimSpace(tableQuery)
	orderQuery = strings.TrimSpace(orderQuery)

	if tableQuery == "" && orderQuery == "" {
		return tables
	}

	filtered := make([]TableViewModel, 0, len(tables))
	for _, table := range tables {
		if !strings.Contains(strconv.Itoa(table.TableNumber), tableQuery) {
			continue
		}
		if orderQuery != "" {
			if table.OrderID == nil {
				continue
			}
			if !strings.Contains(strconv.Itoa(*table.OrderID), orderQuery) {
				continue
			}
		}
		filtered = append(filtered, table)
	}

	return filtered
}

func modalErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Identificador de mesa inválido."
	case errors.Is(err, ErrNotFound):
		return "Mesa não encontrada."
	case errors.Is(err, ErrUnauthorized):
		return "Sessão expirada. Entre novamente."
	case errors.Is(err, ErrMalformedResponse):
		return "Resposta inesperada do servidor."
	default:
		return "Erro ao buscar detalhes da mesa."
	}
}
