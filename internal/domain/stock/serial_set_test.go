package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow-api/internal/domain/stock"
)

func TestSerialSet_DeduplicaConservandoOrden(t *testing.T) {
	s := stock.NewSerialSet([]string{"B", "A", "B", "C", "A"})
	assert.Equal(t, []string{"B", "A", "C"}, s.Slice())
	assert.Equal(t, 3, s.Len())
}

func TestSerialSet_UnionYDiferencia(t *testing.T) {
	s := stock.NewSerialSet(nil)
	s.Union([]string{"A", "B"})
	s.Union([]string{"B", "C"})
	assert.Equal(t, []string{"A", "B", "C"}, s.Slice())

	s.Difference([]string{"B", "Z"})
	assert.Equal(t, []string{"A", "C"}, s.Slice())
	assert.False(t, s.Has("B"))

	assert.True(t, s.Add("B"))
	assert.False(t, s.Add("B"))
	assert.Equal(t, []string{"A", "C", "B"}, s.Slice())
}

func TestSerialSet_Missing(t *testing.T) {
	s := stock.NewSerialSet([]string{"A"})
	assert.Nil(t, s.Missing([]string{"A"}))
	assert.Equal(t, []string{"X"}, s.Missing([]string{"X", "A", "X"}))
}

func TestSerialSet_SliceNuncaNil(t *testing.T) {
	assert.NotNil(t, stock.NewSerialSet(nil).Slice())
}
