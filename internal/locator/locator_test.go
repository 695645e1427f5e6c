package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget interface{ Name() string }

type realWidget struct{ name string }

func (w realWidget) Name() string { return w.name }

func TestRegisterAndGet(t *testing.T) {
	l := New()
	Register[widget](l, realWidget{name: "a"}, "")

	got, err := Get[widget](l, "")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name())
}

func TestGetMissingServiceError(t *testing.T) {
	l := New()
	_, err := Get[widget](l, "")
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.TypeName, "widget")
}

func TestQualifiedLookupIsolated(t *testing.T) {
	l := New()
	Register[widget](l, realWidget{name: "primary"}, "primary")
	Register[widget](l, realWidget{name: "secondary"}, "secondary")

	p, err := Get[widget](l, "primary")
	require.NoError(t, err)
	assert.Equal(t, "primary", p.Name())

	_, err = Get[widget](l, "")
	assert.Error(t, err)
}

func TestInitializationOrderByPriority(t *testing.T) {
	l := New()
	RegisterWithPriority[widget](l, realWidget{name: "low"}, "low", PriorityLow)
	RegisterWithPriority[widget](l, realWidget{name: "highest"}, "highest", PriorityHighest)
	RegisterWithPriority[widget](l, realWidget{name: "normal"}, "normal", PriorityNormal)

	order := InitializationOrder[widget](l)
	assert.Equal(t, []string{"highest", "normal", "low"}, order)
}

func TestHas(t *testing.T) {
	l := New()
	assert.False(t, Has[widget](l, ""))
	Register[widget](l, realWidget{name: "a"}, "")
	assert.True(t, Has[widget](l, ""))
}
