package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{"null", Null(), Null(), true},
		{"int vs float", Int(3), Number(3.0), true},
		{"different numbers", Int(3), Number(3.5), false},
		{"number vs string", Int(1), String("1"), false},
		{"bool", Bool(true), Bool(true), true},
		{"list order matters", List(Int(1), Int(2)), List(Int(2), Int(1)), false},
		{"list equal", List(Int(1), String("x")), List(Number(1), String("x")), true},
		{
			"map key order ignored",
			Map(NewFields().Set("a", Int(1)).Set("b", Int(2))),
			Map(NewFields().Set("b", Int(2)).Set("a", Int(1))),
			true,
		},
		{
			"map missing key",
			Map(NewFields().Set("a", Int(1))),
			Map(NewFields().Set("a", Int(1)).Set("b", Null())),
			false,
		},
		{"null vs empty list", Null(), List(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"true", Bool(true), true},
		{"false", Bool(false), false},
		{"one", Int(1), true},
		{"zero", Int(0), false},
		{"string true", String("true"), true},
		{"string 1", String("1"), true},
		{"string no", String("no"), false},
		{"null", Null(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Truthy())
		})
	}
}

func TestValue_MarshalKeepsOrder(t *testing.T) {
	f := NewFields().
		Set("zeta", Int(1)).
		Set("alpha", List(Bool(true), Null())).
		Set("mid", Map(NewFields().Set("y", String("q")).Set("x", Number(1.5))))

	b, err := json.Marshal(Map(f))
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":[true,null],"mid":{"y":"q","x":1.5}}`, string(b))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "plain", String("plain").String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, `["a"]`, List(String("a")).String())
}

func TestFields_SetKeepsFirstPosition(t *testing.T) {
	f := NewFields().Set("a", Int(1)).Set("b", Int(2)).Set("a", Int(3))

	assert.Equal(t, []string{"a", "b"}, f.Keys())
	assert.Equal(t, Int(3), f.Value("a"))
	assert.Equal(t, 2, f.Len())
	assert.True(t, f.Value("missing").IsNull())

	var nilFields *Fields
	assert.Equal(t, 0, nilFields.Len())
	assert.False(t, nilFields.Has("a"))
}
