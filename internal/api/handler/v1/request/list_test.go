package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{name: "array", in: `["a","b"]`, want: StringList{"a", "b"}},
		{name: "encoded array", in: `"[\"a\",\"b\"]"`, want: StringList{"a", "b"}},
		{name: "comma separated", in: `"a, b ,,c"`, want: StringList{"a", "b", "c"}},
		{name: "objects kept as json", in: `[{"time":"09:00","title":"Welcome"}]`, want: StringList{`{"time":"09:00","title":"Welcome"}`}},
		{name: "null", in: `null`, want: nil},
		{name: "empty array", in: `[]`, want: StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringList_UnmarshalJSON_Invalid(t *testing.T) {
	var got StringList
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &got))
}

func TestStringList_UnmarshalForm(t *testing.T) {
	var got StringList

	require.NoError(t, got.UnmarshalForm([]string{"Alice", " ", "Bob"}))
	assert.Equal(t, StringList{"Alice", "Bob"}, got)

	require.NoError(t, got.UnmarshalForm([]string{`["x","y"]`}))
	assert.Equal(t, StringList{"x", "y"}, got)
}

func TestIntList(t *testing.T) {
	var got IntList

	require.NoError(t, json.Unmarshal([]byte(`[1,"2"]`), &got))
	assert.Equal(t, IntList{1, 2}, got)

	require.NoError(t, got.UnmarshalForm([]string{"3", "4"}))
	assert.Equal(t, IntList{3, 4}, got)

	assert.EqualError(t, got.UnmarshalForm([]string{"3", "x"}), `"x" is not a valid id`)
	assert.Error(t, json.Unmarshal([]byte(`[-1]`), &got))
}

func TestFlexBool(t *testing.T) {
	for _, in := range []string{`true`, `1`, `"true"`, `"on"`, `"YES"`} {
		var b FlexBool
		require.NoError(t, json.Unmarshal([]byte(in), &b), in)
		assert.True(t, bool(b), in)
	}

	for _, in := range []string{`false`, `0`, `"off"`, `"no"`, `""`} {
		b := FlexBool(true)
		require.NoError(t, json.Unmarshal([]byte(in), &b), in)
		assert.False(t, bool(b), in)
	}

	var b FlexBool
	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &b))

	require.NoError(t, b.UnmarshalForm([]string{"0", "1"}))
	assert.True(t, bool(b))
	assert.Equal(t, true, *b.Ptr())

	var nilBool *FlexBool
	assert.Nil(t, nilBool.Ptr())
}

func TestAuthorList(t *testing.T) {
	var got AuthorList

	require.NoError(t, json.Unmarshal([]byte(`[{"name":" Ada ","email":"ada@example.com"},"Grace"]`), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Ada", got[0].Name)
	assert.Equal(t, "Grace", got[1].Name)

	require.NoError(t, json.Unmarshal([]byte(`"[{\"name\":\"Alan\"}]"`), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Alan", got[0].Name)

	require.NoError(t, got.UnmarshalForm([]string{"Ada", `{"name":"Grace","affiliation":"Navy"}`}))
	require.Len(t, got, 2)
	assert.Equal(t, "Navy", got[1].Affiliation)

	assert.Error(t, json.Unmarshal([]byte(`[42]`), &got))
}

func TestAuthorsValid(t *testing.T) {
	assert.NoError(t, authorsValid.Validate(AuthorList{{Name: "Ada"}}))
	assert.Error(t, authorsValid.Validate(AuthorList{{Name: "Ada"}, {Name: ""}}))
	assert.Error(t, authorsValid.Validate(AuthorList{{Name: "Ada", Email: "nope"}}))
}
