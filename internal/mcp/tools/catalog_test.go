package tools

import (
	"encoding/json"
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/lemonsqueezy-mcp/internal/domain/dispatch"
)

var pathArg = regexp.MustCompile(`\{([a-z_]+)\}`)

func TestCatalog_MatchesRoutes(t *testing.T) {
	names := Names()
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	assert.Equal(t, dispatch.RouteNames(), sorted)
}

func TestCatalog_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range Names() {
		assert.False(t, seen[name], "duplicate tool %q", name)
		seen[name] = true
	}
}

func TestCatalog_SchemasDescribeRouteArguments(t *testing.T) {
	routes := dispatch.Routes()

	for _, d := range Catalog() {
		t.Run(d.Name, func(t *testing.T) {
			require.NotNil(t, d.InputSchema)
			assert.Equal(t, "object", d.InputSchema.Type)
			assert.NotEmpty(t, d.Description)

			route := routes[d.Name]
			for _, m := range pathArg.FindAllStringSubmatch(route.Path, -1) {
				arg := m[1]
				assert.Contains(t, d.InputSchema.Properties, arg)
				assert.Contains(t, d.InputSchema.Required, arg)
			}
			if route.Body != "" {
				assert.Contains(t, d.InputSchema.Properties, route.Body)
				assert.Contains(t, d.InputSchema.Required, route.Body)
				assert.Equal(t, "object", d.InputSchema.Properties[route.Body].Type)
			}
			for _, arg := range route.Filters {
				assert.Contains(t, d.InputSchema.Properties, arg)
				assert.NotContains(t, d.InputSchema.Required, arg)
			}
		})
	}
}

func TestCatalog_CheckoutEnvelope(t *testing.T) {
	d := find(t, "create_checkout")
	data := d.InputSchema.Properties["data"]

	assert.ElementsMatch(t, []string{"type", "relationships"}, data.Required)
	require.NotNil(t, data.Properties["type"].Const)
	assert.Equal(t, "checkouts", *data.Properties["type"].Const)
	assert.Contains(t, data.Properties, "attributes")

	rel := data.Properties["relationships"]
	assert.ElementsMatch(t, []string{"store", "variant"}, rel.Required)
	assert.Equal(t, "variants", *rel.Properties["variant"].Properties["data"].Properties["type"].Const)
}

func TestCatalog_WebhookDocument(t *testing.T) {
	d := find(t, "create_webhook")
	doc := d.InputSchema.Properties["webhook_data"]
	data := doc.Properties["data"]

	assert.Equal(t, "webhooks", *data.Properties["type"].Const)

	attrs := data.Properties["attributes"]
	assert.ElementsMatch(t, []string{"url", "events", "secret"}, attrs.Required)
	assert.Equal(t, "array", attrs.Properties["events"].Type)
	assert.Len(t, attrs.Properties["events"].Items.Enum, len(WebhookEvents))
}

func TestCatalog_SchemasMarshal(t *testing.T) {
	for _, d := range Catalog() {
		raw, err := json.Marshal(d.Tool().InputSchema)
		require.NoError(t, err, d.Name)
		assert.Contains(t, string(raw), `"type":"object"`, d.Name)
	}
}

func TestCatalog_FreshValues(t *testing.T) {
	first := Catalog()
	first[0].InputSchema.Properties["injected"] = str("x")

	assert.NotContains(t, Catalog()[0].InputSchema.Properties, "injected")
}

func find(t *testing.T, name string) Descriptor {
	t.Helper()
	for _, d := range Catalog() {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("tool %q not in catalog", name)
	return Descriptor{}
}
