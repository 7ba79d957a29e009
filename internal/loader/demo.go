package loader

import "github.com/seuros/lpexplorer/internal/sheet"

var demoPages = []sheet.PageRecord{
	{URL: "https://example.com", Name: "Homepage", CVR: 4.2, Bounce: 32, Sessions: 12840},
	{URL: "https://example.com/pricing", Name: "Pricing Page", CVR: 6.8, Bounce: 24, Sessions: 8920},
	{URL: "https://example.com/features", Name: "Features Overview", CVR: 3.1, Bounce: 41, Sessions: 7540},
	{URL: "https://example.com/blog/seo-guide", Name: "SEO Ultimate Guide", CVR: 1.9, Bounce: 58, Sessions: 15200},
	{URL: "https://example.com/signup", Name: "Sign Up", CVR: 12.4, Bounce: 18, Sessions: 6100},
	{URL: "https://example.com/demo", Name: "Book a Demo", CVR: 8.7, Bounce: 22, Sessions: 4300},
	{URL: "https://example.com/case-studies", Name: "Case Studies", CVR: 5.3, Bounce: 35, Sessions: 3800},
	{URL: "https://example.com/blog/growth-tips", Name: "10 Growth Tips", CVR: 2.1, Bounce: 52, Sessions: 11400},
	{URL: "https://example.com/integrations", Name: "Integrations", CVR: 3.8, Bounce: 39, Sessions: 5600},
	{URL: "https://example.com/about", Name: "About Us", CVR: 1.2, Bounce: 61, Sessions: 4100},
	{URL: "https://example.com/contact", Name: "Contact", CVR: 7.1, Bounce: 28, Sessions: 2900},
	{URL: "https://example.com/blog/product-update", Name: "Product Update Q4", CVR: 2.8, Bounce: 45, Sessions: 9700},
	{URL: "https://example.com/enterprise", Name: "Enterprise Plan", CVR: 9.2, Bounce: 20, Sessions: 3200},
	{URL: "https://example.com/docs", Name: "Documentation", CVR: 0.8, Bounce: 67, Sessions: 18500},
	{URL: "https://example.com/webinar", Name: "Free Webinar", CVR: 11.5, Bounce: 15, Sessions: 2400},
}

// DemoPages returns a fresh copy of the built-in demo dataset.
func DemoPages() []sheet.PageRecord {
	return append([]sheet.PageRecord(nil), demoPages...)
}
