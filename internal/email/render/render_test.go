package render

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/emailer/templates"
)

func TestRender_EmbeddedOrderConfirmation(t *testing.T) {
	r, err := New(templates.FS)
	require.NoError(t, err)

	out, err := r.Render("order_confirmation", struct {
		OrderNumber       string
		BuyerName         string
		OrderCreationDate string
		OrderValue        string
		TotalItems        string
		SupportEmailID    string
		BrandingImage     string
	}{
		OrderNumber:       "SO-100",
		BuyerName:         "Acme",
		OrderCreationDate: "08/31/2026",
		OrderValue:        "2,500",
		TotalItems:        "3",
		SupportEmailID:    "help@x.com",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "#SO-100")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "08/31/2026")
	assert.Contains(t, out, "2,500")
	assert.Contains(t, out, "help@x.com")
	// No branding image supplied, so no img tag
	assert.NotContains(t, out, "<img")
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := New(templates.FS)
	require.NoError(t, err)

	_, err = r.Render("no_such_template", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNew_MalformedTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.html": {Data: []byte(`{{.Unclosed`)},
	}

	_, err := New(fsys)
	require.Error(t, err)
}

func TestRender_EscapesData(t *testing.T) {
	fsys := fstest.MapFS{
		"greeting.html": {Data: []byte(`<p>{{.Name}}</p>`)},
	}

	r, err := New(fsys)
	require.NoError(t, err)

	out, err := r.Render("greeting", struct{ Name string }{Name: `<script>alert(1)</script>`})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
