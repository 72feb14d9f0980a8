package tools

import (
	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Descriptor describes one tool offered to MCP clients
type Descriptor struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Tool converts the descriptor to its SDK form
func (d Descriptor) Tool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: d.InputSchema,
	}
}

// Catalog returns every Lemon Squeezy tool in presentation order.
// Each call builds fresh values so callers cannot mutate shared state.
func Catalog() []Descriptor {
	return []Descriptor{
		{
			Name:        "get_user",
			Description: "Get the current authenticated Lemon Squeezy user",
			InputSchema: object(nil),
		},
		{
			Name:        "list_stores",
			Description: "List all Lemon Squeezy stores",
			InputSchema: object(nil),
		},
		{
			Name:        "get_store",
			Description: "Get details of a specific store",
			InputSchema: object(props{"store_id": str("The ID of the store")}, "store_id"),
		},
		{
			Name:        "list_products",
			Description: "List all products",
			InputSchema: object(nil),
		},
		{
			Name:        "get_product",
			Description: "Get a specific product by ID",
			InputSchema: object(props{"product_id": str("The ID of the product")}, "product_id"),
		},
		{
			Name:        "get_product_variants",
			Description: "Get all variants for a given product ID",
			InputSchema: object(props{"product_id": str("The ID of the product to fetch variants for")}, "product_id"),
		},
		{
			Name:        "list_orders",
			Description: "List all orders",
			InputSchema: object(nil),
		},
		{
			Name:        "get_order",
			Description: "Get an order by ID",
			InputSchema: object(props{"order_id": str("The ID of the order")}, "order_id"),
		},
		{
			Name:        "list_customers",
			Description: "List all customers",
			InputSchema: object(nil),
		},
		{
			Name:        "get_customer",
			Description: "Get a customer by ID",
			InputSchema: object(props{"customer_id": str("The ID of the customer")}, "customer_id"),
		},
		{
			Name:        "list_subscriptions",
			Description: "List all subscriptions",
			InputSchema: object(nil),
		},
		{
			Name:        "get_subscription",
			Description: "Get a subscription by ID",
			InputSchema: object(props{"subscription_id": str("The ID of the subscription")}, "subscription_id"),
		},
		{
			Name:        "list_license_keys",
			Description: "List all license keys",
			InputSchema: object(nil),
		},
		{
			Name:        "get_license_key",
			Description: "Get a license key by ID",
			InputSchema: object(props{"license_key_id": str("The ID of the license key")}, "license_key_id"),
		},
		{
			Name:        "create_checkout",
			Description: "Create a Lemon Squeezy checkout session with full custom configuration",
			InputSchema: object(props{"data": checkoutData()}, "data"),
		},
		{
			Name:        "create_webhook",
			Description: "Register a webhook URL for a specific store and events",
			InputSchema: object(props{"webhook_data": webhookDocument()}, "webhook_data"),
		},
		{
			Name:        "list_webhooks",
			Description: "List all webhooks. Optionally filter by store ID",
			InputSchema: object(props{
				"store_id": str("If provided, only webhooks for this store will be returned"),
			}),
		},
	}
}

// Names lists catalog tool names in presentation order
func Names() []string {
	cat := Catalog()
	out := make([]string, 0, len(cat))
	for _, d := range cat {
		out = append(out, d.Name)
	}
	return out
}

// WebhookEvents are the event names upstream accepts for webhooks
var WebhookEvents = []string{
	"order_created",
	"order_refunded",
	"subscription_created",
	"subscription_updated",
	"subscription_cancelled",
	"subscription_resumed",
	"subscription_expired",
	"subscription_paused",
	"subscription_unpaused",
	"subscription_payment_success",
	"subscription_payment_failed",
	"subscription_payment_recovered",
	"subscription_payment_refunded",
	"license_key_created",
	"license_key_updated",
	"affiliate_activated",
}

// checkoutData is the JSON:API resource object sent under "data"
func checkoutData() *jsonschema.Schema {
	s := object(props{
		"type": constant("checkouts", "Resource type"),
		"attributes": object(props{
			"custom_price": {Type: "integer", Description: "Price in cents overriding the variant price"},
			"product_options": object(props{
				"name":                   str("Custom product name"),
				"description":            str("Custom product description"),
				"media":                  {Type: "array", Items: str("Image URL")},
				"redirect_url":           str("URL to redirect to after purchase"),
				"receipt_button_text":    str("Receipt button text"),
				"receipt_link_url":       str("Receipt button link"),
				"receipt_thank_you_note": str("Receipt thank you note"),
				"enabled_variants":       {Type: "array", Items: &jsonschema.Schema{Type: "integer"}},
			}),
			"checkout_options": object(props{
				"embed":                boolean("Show the checkout overlay"),
				"media":                boolean("Show product media"),
				"logo":                 boolean("Show store logo"),
				"desc":                 boolean("Show product description"),
				"discount":             boolean("Show discount code field"),
				"dark":                 boolean("Use dark theme"),
				"subscription_preview": boolean("Show subscription preview"),
				"button_color":         str("Hex color of the checkout button"),
			}),
			"checkout_data": object(props{
				"email":         str("Prefilled customer email"),
				"name":          str("Prefilled customer name"),
				"discount_code": str("Prefilled discount code"),
				"custom":        {Type: "object", Description: "Custom data passed through to webhooks"},
			}),
			"preview":    boolean("Return a checkout preview"),
			"test_mode":  boolean("Create the checkout in test mode"),
			"expires_at": {Type: "string", Format: "date-time", Description: "Checkout expiry"},
		}),
		"relationships": object(props{
			"store":   relationship("stores", "Store the checkout belongs to"),
			"variant": relationship("variants", "Variant being purchased"),
		}, "store", "variant"),
	}, "type", "relationships")
	s.Description = "The checkout data (see LemonSqueezy API docs)"
	return s
}

// webhookDocument is the full JSON:API document forwarded as the request body
func webhookDocument() *jsonschema.Schema {
	events := &jsonschema.Schema{
		Type:        "array",
		Description: "Events that trigger the webhook",
		Items:       enum(WebhookEvents),
	}

	s := object(props{
		"data": object(props{
			"type": constant("webhooks", "Resource type"),
			"attributes": object(props{
				"url":       {Type: "string", Format: "uri", Description: "Endpoint receiving webhook events"},
				"events":    events,
				"secret":    str("Signing secret, 6 to 40 characters"),
				"test_mode": boolean("Register in test mode"),
			}, "url", "events", "secret"),
			"relationships": object(props{
				"store": relationship("stores", "Store the webhook belongs to"),
			}, "store"),
		}, "type", "attributes", "relationships"),
	}, "data")
	s.Description = "The webhook data (see LemonSqueezy API docs)"
	return s
}

type props map[string]*jsonschema.Schema

func object(p props, required ...string) *jsonschema.Schema {
	if p == nil {
		p = props{}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: p,
		Required:   required,
	}
}

func str(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func boolean(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: desc}
}

func constant(v, desc string) *jsonschema.Schema {
	var c any = v
	return &jsonschema.Schema{Type: "string", Const: &c, Description: desc}
}

func enum(values []string) *jsonschema.Schema {
	e := make([]any, len(values))
	for i, v := range values {
		e[i] = v
	}
	return &jsonschema.Schema{Type: "string", Enum: e}
}

// relationship builds {data: {type: <kind>, id}}
func relationship(kind, desc string) *jsonschema.Schema {
	s := object(props{
		"data": object(props{
			"type": constant(kind, "Related resource type"),
			"id":   str("Related resource ID"),
		}, "type", "id"),
	}, "data")
	s.Description = desc
	return s
}
