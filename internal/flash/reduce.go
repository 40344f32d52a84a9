package flash

// ReduceTables flattens the backend's table sections into one view model per
// physical table. Sections with orders always emit a model keyed on their
// first order; empty sections emit an available placeholder unless the table
// number was already seen. A final pass drops any duplicate table numbers
// left over, keeping the earliest entry, so the grid never shows the same
// table twice. Input ordering is preserved.
func ReduceTables(sections []TableSection) []TableViewModel {
	models := make([]TableViewModel, 0, len(sections))
	seen := make(map[int]bool, len(sections))

	for _, section := range sections {
		if len(section.Orders) == 0 {
			if seen[section.Number] {
				continue
			}
			models = append(models, emptyTableViewModel(section))
			seen[section.Number] = true
			continue
		}

		models = append(models, orderedTableViewModel(section))
		seen[section.Number] = true
	}

	return dedupeByTableNumber(models)
}

func orderedTableViewModel(section TableSection) TableViewModel {
	orderID := section.Orders[0].ID

	status := TableStatusAvailable
	if section.HasOpenOrder() {
		status = TableStatusOccupied
	}

	return TableViewModel{
		ID:                  section.ID,
		OrderID:             &orderID,
		Number:              section.Number,
		TableNumber:         section.Number,
		Status:              status,
		TotalValue:          0,
		FormattedTotalValue: "R$ 0,00",
		CustomerName:        "",
		Items:               []Item{},
	}
}

func emptyTableViewModel(section TableSection) TableViewModel {
	return TableViewModel{
		ID:                  section.ID,
		OrderID:             nil,
		Number:              section.Number,
		TableNumber:         section.Number,
		Status:              TableStatusAvailable,
		TotalValue:          0,
		FormattedTotalValue: "R$ 0,00",
		CustomerName:        "",
		Items:               []Item{},
	}
}

// dedupeByTableNumber keeps the first occurrence of each table number. It
// always builds a fresh slice; callers may hold references to the input.
func dedupeByTableNumber(models []TableViewModel) []TableViewModel {
	seen := make(map[int]bool, len(models))
	unique := make([]TableViewModel, 0, len(models))

	for _, model := range models {
		if seen[model.TableNumber] {
			continue
		}
		seen[model.TableNumber] = true
		unique = append(unique, model)
	}

	return unique
}
