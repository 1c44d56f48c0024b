package pivot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	v := Text("UA")
	assert.Equal(t, KindText, v.Kind())

	s, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "UA", s)

	_, err = v.Number()
	require.Error(t, err)
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, KindNumber, tm.Want)
	assert.Equal(t, KindText, tm.Got)

	n := Number(42.5)
	assert.Equal(t, KindNumber, n.Kind())

	f, err := n.Number()
	require.NoError(t, err)
	assert.Equal(t, 42.5, f)

	_, err = n.Text()
	require.Error(t, err)
}

func TestValueZeroIsEmptyText(t *testing.T) {
	var v Value
	assert.Equal(t, KindText, v.Kind())

	s, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "JFK", Text("JFK").String())
	assert.Equal(t, "100", Number(100).String())
	assert.Equal(t, "75.5", Number(75.5).String())
}
