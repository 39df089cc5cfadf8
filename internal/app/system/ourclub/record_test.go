package ourclub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshal_RequiredAndExtra(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{
		"categoriasocio": "Activo",
		"tieneDeuda": true,
		"socio_vigente": false,
		"nombre": "Ana",
		"cuota": 1500.5
	}`), &r)
	require.NoError(t, err)

	assert.Equal(t, "Activo", r.Category)
	assert.True(t, r.HasDebt)
	assert.False(t, r.Active)
	assert.True(t, r.Valid())
	assert.Equal(t, []string{"cuota", "nombre"}, r.ExtraKeys())
	assert.Equal(t, "Ana", r.ExtraText("nombre"))
	assert.Equal(t, "1500.5", r.ExtraText("cuota"))
	assert.Equal(t, "", r.ExtraText("absent"))
}

func TestRecordUnmarshal_TagsMissingAndMistyped(t *testing.T) {
	var r Record
	err := json.Unmarshal([]byte(`{"categoriasocio": null, "tieneDeuda": "si"}`), &r)
	require.NoError(t, err)

	assert.False(t, r.Valid())
	assert.Len(t, r.Invalid, 3)
	assert.Equal(t, "", r.Category)
	assert.False(t, r.HasDebt)
	assert.False(t, r.Active)
	assert.Contains(t, r.Invalid[0], FieldCategory)
	assert.Contains(t, r.Invalid[1], FieldHasDebt)
	assert.Contains(t, r.Invalid[2], FieldActive)
}

func TestRecordMarshal_RoundTripsExtras(t *testing.T) {
	in := `{"categoriasocio":"Cadete","tieneDeuda":false,"socio_vigente":true,"dni":"30111222","tags":["a","b"]}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(in), &r))

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestEnvelopeUnmarshal_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "items object", body: `{"items":[{"categoriasocio":"A","tieneDeuda":false,"socio_vigente":true}]}`, want: 1},
		{name: "bare array", body: `[{"categoriasocio":"A","tieneDeuda":false,"socio_vigente":true}]`, want: 1},
		{name: "empty items", body: `{"items":[]}`, want: 0},
		{name: "object without items", body: `{"total":0}`, want: 0},
		{name: "null", body: `null`, want: 0},
		{name: "null record kept", body: `[null]`, want: 1},
		{name: "string", body: `"oops"`, wantErr: true},
		{name: "number", body: `42`, wantErr: true},
		{name: "non-object record", body: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope
			err := json.Unmarshal([]byte(tt.body), &env)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, env.Len())
		})
	}
}

func TestEnvelope_InvalidCount(t *testing.T) {
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(`[
		{"categoriasocio":"A","tieneDeuda":false,"socio_vigente":true},
		{"categoriasocio":"B"}
	]`), &env))

	assert.Equal(t, 2, env.Len())
	assert.Equal(t, 1, env.InvalidCount())

	var nilEnv *Envelope
	assert.Equal(t, 0, nilEnv.Len())
	assert.Equal(t, 0, nilEnv.InvalidCount())
}
