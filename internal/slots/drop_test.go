package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type counter struct{ n int }

type ptrDropper struct{ c *counter }

func (p *ptrDropper) Drop() { p.c.n++ }

type valueDropper struct{ c *counter }

func (v valueDropper) Drop() { v.c.n++ }

type plain struct{ n int }

func TestDropFunc(t *testing.T) {
	t.Run("pointer receiver", func(t *testing.T) {
		c := &counter{}
		drop := DropFunc[ptrDropper]()
		assert.NotNil(t, drop)
		drop(&ptrDropper{c: c})
		assert.Equal(t, 1, c.n)
	})

	t.Run("value receiver", func(t *testing.T) {
		c := &counter{}
		drop := DropFunc[valueDropper]()
		assert.NotNil(t, drop)
		drop(&valueDropper{c: c})
		assert.Equal(t, 1, c.n)
	})

	t.Run("pointer element", func(t *testing.T) {
		c := &counter{}
		drop := DropFunc[*ptrDropper]()
		assert.NotNil(t, drop)
		v := &ptrDropper{c: c}
		drop(&v)
		assert.Equal(t, 1, c.n)

		var nilElem *ptrDropper
		assert.NotPanics(t, func() { drop(&nilElem) })
	})

	t.Run("interface element", func(t *testing.T) {
		c := &counter{}
		drop := DropFunc[any]()
		assert.NotNil(t, drop)

		var v any = valueDropper{c: c}
		drop(&v)
		assert.Equal(t, 1, c.n)

		var p any = plain{}
		drop(&p)
		assert.Equal(t, 1, c.n)
	})

	t.Run("no drop method", func(t *testing.T) {
		assert.Nil(t, DropFunc[plain]())
		assert.Nil(t, DropFunc[int]())
		assert.Nil(t, DropFunc[string]())
	})
}

func TestDropReverse(t *testing.T) {
	var order []int
	cells := []int{1, 2, 3}

	DropReverse(cells, func(p *int) { order = append(order, *p) })

	assert.Equal(t, []int{3, 2, 1}, order)
	assert.Equal(t, []int{0, 0, 0}, cells)

	plainCells := []plain{{n: 1}}
	DropReverse(plainCells, DropFunc[plain]())
	assert.Equal(t, []plain{{}}, plainCells)
}
