package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailList_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want EmailList
	}{
		{name: "array", in: `["a@x.com","b@x.com"]`, want: EmailList{"a@x.com", "b@x.com"}},
		{name: "empty array", in: `[]`, want: EmailList{}},
		{name: "bare string is not iterated", in: `"a@x.com"`, want: nil},
		{name: "object", in: `{"email":"a@x.com"}`, want: nil},
		{name: "number", in: `42`, want: nil},
		{name: "null", in: `null`, want: nil},
		{name: "array of non-strings", in: `[1,2]`, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var l EmailList
			err := json.Unmarshal([]byte(tc.in), &l)
			require.NoError(t, err)
			assert.Equal(t, tc.want, l)
		})
	}
}

func TestCartDetails_ItemCount(t *testing.T) {
	var details CartDetails
	require.NoError(t, json.Unmarshal([]byte(`{"items":{"a":{},"b":{}}}`), &details))
	assert.Equal(t, 2, details.ItemCount())

	assert.Equal(t, 0, CartDetails{}.ItemCount())
}

func TestUser_EmailOrDefault(t *testing.T) {
	email := "buyer@y.com"
	u := &User{ID: "u1", Email: &email}
	assert.Equal(t, "buyer@y.com", u.EmailOrDefault("__email__"))

	assert.Equal(t, "__email__", (&User{ID: "u1"}).EmailOrDefault("__email__"))

	empty := ""
	assert.Equal(t, "__email__", (&User{ID: "u1", Email: &empty}).EmailOrDefault("__email__"))
}

func TestBuyer_DisplayNameOrDefault(t *testing.T) {
	name := "Acme"
	b := &Buyer{ID: "b1", DisplayName: &name}
	assert.Equal(t, "Acme", b.DisplayNameOrDefault("buyer_name"))

	assert.Equal(t, "buyer_name", (&Buyer{ID: "b1"}).DisplayNameOrDefault("buyer_name"))
}
