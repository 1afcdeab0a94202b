package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/typedargs/typedargs/shape"
	"github.com/typedargs/typedargs/usage"
)

func TestNew_FlattensBaseFields(t *testing.T) {
	base := MustNew(Spec{
		Name: "CommonArgs",
		Fields: []FieldSpec{
			{Name: "verbose", Shape: shape.Bool()},
		},
	})

	typ, err := New(Spec{
		Name: "FooArgs",
		Base: base,
		Fields: []FieldSpec{
			{Name: "file", Shape: shape.String()},
			{Name: "count", Shape: shape.Int(), Default: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "FooArgs", typ.Name())
	require.Equal(t, base, typ.Base())

	names := make([]string, 0, 3)
	for _, f := range typ.Fields() {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"verbose", "file", "count"}, names)

	own := typ.OwnFields()
	require.Len(t, own, 2)
	require.Equal(t, "file", own[0].Name)

	f, ok := typ.Field("count")
	require.True(t, ok)
	require.Equal(t, 1, f.Default)

	_, ok = typ.Field("missing")
	require.False(t, ok)
}

func TestNew_DeclarationErrors(t *testing.T) {
	base := MustNew(Spec{
		Name:   "Base",
		Fields: []FieldSpec{{Name: "shared", Shape: shape.Int()}},
	})

	tests := []struct {
		name     string
		spec     Spec
		wantKind usage.ErrorKind
		wantMsg  string
	}{
		{
			name: "empty field name",
			spec: Spec{Name: "T", Fields: []FieldSpec{
				{Name: "", Shape: shape.Int()},
			}},
			wantKind: usage.ErrInvalidFieldSpec,
		},
		{
			name: "reserved field name",
			spec: Spec{Name: "T", Fields: []FieldSpec{
				{Name: "get", Shape: shape.Int()},
			}},
			wantKind: usage.ErrReservedFieldName,
			wantMsg:  "record type 'T' must not have a field called 'get'",
		},
		{
			name: "reserved field name is case insensitive",
			spec: Spec{Name: "T", Fields: []FieldSpec{
				{Name: "Fields", Shape: shape.Int()},
			}},
			wantKind: usage.ErrReservedFieldName,
		},
		{
			name: "duplicate field",
			spec: Spec{Name: "T", Fields: []FieldSpec{
				{Name: "x", Shape: shape.Int()},
				{Name: "x", Shape: shape.String()},
			}},
			wantKind: usage.ErrDuplicateField,
			wantMsg:  "record type 'T' declares field 'x' more than once",
		},
		{
			name: "field shadows base field",
			spec: Spec{Name: "T", Base: base, Fields: []FieldSpec{
				{Name: "shared", Shape: shape.Int()},
			}},
			wantKind: usage.ErrDuplicateField,
		},
		{
			name: "nil shape",
			spec: Spec{Name: "T", Fields: []FieldSpec{
				{Name: "x"},
			}},
			wantKind: usage.ErrInvalidFieldSpec,
		},
		{
			name: "default and thunk conflict",
			spec: Spec{Name: "T", Fields: []FieldSpec{
				{Name: "x", Shape: shape.Int(), Default: 1, DefaultFunc: func() any { return 2 }},
			}},
			wantKind: usage.ErrInvalidFieldSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.spec)
			require.Error(t, err)
			require.Equal(t, tt.wantKind, usage.KindOf(err))
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestMustNew_PanicsOnError(t *testing.T) {
	require.Panics(t, func() {
		MustNew(Spec{Name: "T", Fields: []FieldSpec{{Name: "type", Shape: shape.Int()}}})
	})
}

func TestFieldSpec_Defaults(t *testing.T) {
	var f FieldSpec
	require.False(t, f.HasDefault())
	require.Nil(t, f.ResolveDefault())

	f = FieldSpec{Default: 3}
	require.True(t, f.HasDefault())
	require.Equal(t, 3, f.ResolveDefault())

	calls := 0
	f = FieldSpec{DefaultFunc: func() any { calls++; return calls }}
	require.True(t, f.HasDefault())
	require.Equal(t, 1, f.ResolveDefault())
	require.Equal(t, 2, f.ResolveDefault(), "thunk is re-evaluated per call")
}
