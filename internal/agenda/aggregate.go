package agenda

import "barbertime/internal/entities"

// Quote resolves the selected service ids against the catalog and sums
// price and duration over the resolved services. Ids with no catalog match
// are dropped, not an error; they are echoed back in UnknownIDs so the
// caller can surface them. Duplicate ids resolve once. Pure: identical
// inputs yield identical output regardless of selection order, and the
// catalog is never mutated.
func Quote(selected []int, catalog []entities.Servico) entities.Quote {
	byID := make(map[int]entities.Servico, len(catalog))
	for _, s := range catalog {
		byID[s.ServicoID] = s
	}

	seen := make(map[int]struct{}, len(selected))
	quote := entities.Quote{Servicos: []entities.Servico{}}

	// Resolve in catalog order so the result is independent of the order
	// ids were selected in.
	for _, s := range catalog {
		if !contains(selected, s.ServicoID) {
			continue
		}
		if _, dup := seen[s.ServicoID]; dup {
			continue
		}
		seen[s.ServicoID] = struct{}{}
		quote.Servicos = append(quote.Servicos, s)
		quote.PrecoTotal += s.Preco
		quote.DuracaoTotal += s.DuracaoMinutos
	}

	for _, id := range selected {
		if _, ok := byID[id]; !ok {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				quote.UnknownIDs = append(quote.UnknownIDs, id)
			}
		}
	}
	return quote
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
