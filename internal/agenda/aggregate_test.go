package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"barbertime/internal/entities"
)

var testCatalog = []entities.Servico{
	{ServicoID: 1, Nome: "Corte", Preco: 25, DuracaoMinutos: 30, Ativo: true},
	{ServicoID: 2, Nome: "Barba", Preco: 15, DuracaoMinutos: 20, Ativo: true},
	{ServicoID: 3, Nome: "Sobrancelha", Preco: 10, DuracaoMinutos: 15, Ativo: true},
}

func TestQuoteSumsResolvedServices(t *testing.T) {
	q := Quote([]int{1, 2}, testCatalog)
	assert.Equal(t, float64(40), q.PrecoTotal)
	assert.Equal(t, 50, q.DuracaoTotal)
	assert.Len(t, q.Servicos, 2)
	assert.Empty(t, q.UnknownIDs)
}

func TestQuoteEmptySelection(t *testing.T) {
	q := Quote(nil, testCatalog)
	assert.Equal(t, float64(0), q.PrecoTotal)
	assert.Equal(t, 0, q.DuracaoTotal)
	assert.Empty(t, q.Servicos)
}

func TestQuoteDropsUnknownIDs(t *testing.T) {
	q := Quote([]int{1, 99}, testCatalog)
	assert.Equal(t, float64(25), q.PrecoTotal)
	assert.Equal(t, 30, q.DuracaoTotal)
	assert.Equal(t, []int{99}, q.UnknownIDs)
}

func TestQuoteInvariantUnderReordering(t *testing.T) {
	a := Quote([]int{1, 2, 3}, testCatalog)
	b := Quote([]int{3, 1, 2}, testCatalog)
	assert.Equal(t, a.PrecoTotal, b.PrecoTotal)
	assert.Equal(t, a.DuracaoTotal, b.DuracaoTotal)
	assert.Equal(t, a.Servicos, b.Servicos)
}

func TestQuoteDeduplicatesSelection(t *testing.T) {
	q := Quote([]int{2, 2, 2}, testCatalog)
	assert.Equal(t, float64(15), q.PrecoTotal)
	assert.Len(t, q.Servicos, 1)
}

func TestQuoteDoesNotMutateCatalog(t *testing.T) {
	before := make([]entities.Servico, len(testCatalog))
	copy(before, testCatalog)
	Quote([]int{1, 2, 3}, testCatalog)
	Quote([]int{1, 2, 3}, testCatalog)
	assert.Equal(t, before, testCatalog)
}

func TestQuoteIdempotent(t *testing.T) {
	a := Quote([]int{1, 3}, testCatalog)
	b := Quote([]int{1, 3}, testCatalog)
	assert.Equal(t, a, b)
}
