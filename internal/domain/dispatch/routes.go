package dispatch

import (
	"net/http"
	"sort"
)

// Route maps a tool onto one upstream call.
//
// Path may contain {arg} segments filled from required arguments.
// Filters maps a query key to an optional argument; absent arguments omit the key.
// Body names the argument sent as the request body, wrapped under Envelope when set.
type Route struct {
	Method   string
	Path     string
	Filters  map[string]string
	Body     string
	Envelope string
}

var defaultRoutes = map[string]Route{
	"get_user":             {Method: http.MethodGet, Path: "/users/me"},
	"list_stores":          {Method: http.MethodGet, Path: "/stores"},
	"get_store":            {Method: http.MethodGet, Path: "/stores/{store_id}"},
	"list_products":        {Method: http.MethodGet, Path: "/products"},
	"get_product":          {Method: http.MethodGet, Path: "/products/{product_id}"},
	"get_product_variants": {Method: http.MethodGet, Path: "/products/{product_id}/variants"},
	"list_orders":          {Method: http.MethodGet, Path: "/orders"},
	"get_order":            {Method: http.MethodGet, Path: "/orders/{order_id}"},
	"list_customers":       {Method: http.MethodGet, Path: "/customers"},
	"get_customer":         {Method: http.MethodGet, Path: "/customers/{customer_id}"},
	"list_subscriptions":   {Method: http.MethodGet, Path: "/subscriptions"},
	"get_subscription":     {Method: http.MethodGet, Path: "/subscriptions/{subscription_id}"},
	"list_license_keys":    {Method: http.MethodGet, Path: "/license-keys"},
	"get_license_key":      {Method: http.MethodGet, Path: "/license-keys/{license_key_id}"},
	"create_checkout":      {Method: http.MethodPost, Path: "/checkouts", Body: "data", Envelope: "data"},
	"create_webhook":       {Method: http.MethodPost, Path: "/webhooks", Body: "webhook_data"},
	"list_webhooks": {
		Method:  http.MethodGet,
		Path:    "/webhooks",
		Filters: map[string]string{"filter[store_id]": "store_id"},
	},
}

// Routes returns a copy of the built-in route table
func Routes() map[string]Route {
	out := make(map[string]Route, len(defaultRoutes))
	for name, r := range defaultRoutes {
		out[name] = r
	}
	return out
}

// RouteNames lists routed tool names, sorted
func RouteNames() []string {
	names := make([]string, 0, len(defaultRoutes))
	for name := range defaultRoutes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
