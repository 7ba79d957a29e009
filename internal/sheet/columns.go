package sheet

import "strings"

// ColumnMapping maps each logical page field to the header name it is read
// from. Header matching is case-insensitive.
type ColumnMapping struct {
	Day               string `json:"day" yaml:"day" mapstructure:"day"`
	URL               string `json:"url" yaml:"url" mapstructure:"url"`
	Name              string `json:"name" yaml:"name" mapstructure:"name"`
	CVR               string `json:"cvr" yaml:"cvr" mapstructure:"cvr"`
	Bounce            string `json:"bounce" yaml:"bounce" mapstructure:"bounce"`
	Sessions          string `json:"sessions" yaml:"sessions" mapstructure:"sessions"`
	AddedToCart       string `json:"added_to_cart" yaml:"added_to_cart" mapstructure:"added_to_cart"`
	ReachedCheckout   string `json:"reached_checkout" yaml:"reached_checkout" mapstructure:"reached_checkout"`
	CompletedCheckout string `json:"completed_checkout" yaml:"completed_checkout" mapstructure:"completed_checkout"`
	SessionsCompleted string `json:"sessions_completed" yaml:"sessions_completed" mapstructure:"sessions_completed"`
}

// DefaultColumns returns the header names used by the standard landing page
// export.
func DefaultColumns() ColumnMapping {
	return ColumnMapping{
		Day:               "day",
		URL:               "landing_page_path",
		Name:              "landing_page_path",
		CVR:               "conversion_rate",
		Bounce:            "bounce_rate",
		Sessions:          "sessions",
		AddedToCart:       "added_to_cart_rate",
		ReachedCheckout:   "reached_checkout_rate",
		CompletedCheckout: "completed_checkout_rate",
		SessionsCompleted: "sessions_completed_checkout",
	}
}

// WithOverrides returns a copy of m where every non-blank field of o replaces
// the corresponding entry.
func (m ColumnMapping) WithOverrides(o ColumnMapping) ColumnMapping {
	pick := func(base, override string) string {
		if v := strings.TrimSpace(override); v != "" {
			return v
		}
		return base
	}

	return ColumnMapping{
		Day:               pick(m.Day, o.Day),
		URL:               pick(m.URL, o.URL),
		Name:              pick(m.Name, o.Name),
		CVR:               pick(m.CVR, o.CVR),
		Bounce:            pick(m.Bounce, o.Bounce),
		Sessions:          pick(m.Sessions, o.Sessions),
		AddedToCart:       pick(m.AddedToCart, o.AddedToCart),
		ReachedCheckout:   pick(m.ReachedCheckout, o.ReachedCheckout),
		CompletedCheckout: pick(m.CompletedCheckout, o.CompletedCheckout),
		SessionsCompleted: pick(m.SessionsCompleted, o.SessionsCompleted),
	}
}

// Fields lists the logical field names paired with their header names, in a
// stable order.
func (m ColumnMapping) Fields() []FieldHeader {
	return []FieldHeader{
		{"day", m.Day},
		{"url", m.URL},
		{"name", m.Name},
		{"cvr", m.CVR},
		{"bounce", m.Bounce},
		{"sessions", m.Sessions},
		{"added_to_cart", m.AddedToCart},
		{"reached_checkout", m.ReachedCheckout},
		{"completed_checkout", m.CompletedCheckout},
		{"sessions_completed", m.SessionsCompleted},
	}
}

// FieldHeader pairs a logical field with its configured header.
type FieldHeader struct {
	Field  string `json:"field"`
	Header string `json:"header"`
}

// ColumnIndex holds the resolved header position of every logical field.
// Absent columns are -1.
type ColumnIndex struct {
	Day               int
	URL               int
	Name              int
	CVR               int
	Bounce            int
	Sessions          int
	AddedToCart       int
	ReachedCheckout   int
	CompletedCheckout int
	SessionsCompleted int
}

// Resolve finds each configured header in headers.
func (m ColumnMapping) Resolve(headers []string) ColumnIndex {
	lookup := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		// first match wins, like a left-to-right scan
		if _, ok := lookup[key]; !ok {
			lookup[key] = i
		}
	}

	find := func(name string) int {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return -1
		}
		if idx, ok := lookup[name]; ok {
			return idx
		}
		return -1
	}

	return ColumnIndex{
		Day:               find(m.Day),
		URL:               find(m.URL),
		Name:              find(m.Name),
		CVR:               find(m.CVR),
		Bounce:            find(m.Bounce),
		Sessions:          find(m.Sessions),
		AddedToCart:       find(m.AddedToCart),
		ReachedCheckout:   find(m.ReachedCheckout),
		CompletedCheckout: find(m.CompletedCheckout),
		SessionsCompleted: find(m.SessionsCompleted),
	}
}

func (ci ColumnIndex) byField() map[string]int {
	return map[string]int{
		"day":                ci.Day,
		"url":                ci.URL,
		"name":               ci.Name,
		"cvr":                ci.CVR,
		"bounce":             ci.Bounce,
		"sessions":           ci.Sessions,
		"added_to_cart":      ci.AddedToCart,
		"reached_checkout":   ci.ReachedCheckout,
		"completed_checkout": ci.CompletedCheckout,
		"sessions_completed": ci.SessionsCompleted,
	}
}
