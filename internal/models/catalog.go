package models

import "fmt"

// Product is a part record from the catalog
type Product struct {
	PartNumber    string  `json:"part_number"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ApplianceType string  `json:"appliance_type,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// InStock reports whether the product has stock
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// FormattedPrice returns the price as a dollar string
func (p Product) FormattedPrice() string {
	return fmt.Sprintf("$%.2f", p.Price)
}

// InstallationGuide is the installation guide for a product
type InstallationGuide struct {
	Product Product `json:"product"`
	Content string  `json:"content"`
}

// FAQEntry is a single question and answer
type FAQEntry struct {
	Question string
	Answer   string
}

// FAQ returns the static frequently asked questions
func FAQ() []FAQEntry {
	return []FAQEntry{
		{
			Question: "What is your return policy?",
			Answer:   "We offer a 30-day return policy for all unopened parts. For opened parts, we accept returns within 14 days if the part is in its original condition.",
		},
		{
			Question: "How long does shipping take?",
			Answer:   "Standard shipping typically takes 3-5 business days. Express shipping (2-day) and Next-day shipping options are available for most items.",
		},
		{
			Question: "Do you offer installation support?",
			Answer:   "Yes! We provide detailed installation guides and video tutorials for all our parts. Our chat support can also help with installation questions.",
		},
		{
			Question: "Are your parts genuine/OEM?",
			Answer:   "Yes, we offer both genuine OEM parts and high-quality aftermarket alternatives. All parts are clearly labeled as either OEM or aftermarket.",
		},
		{
			Question: "What warranty do you offer?",
			Answer:   "All parts come with a minimum 90-day warranty. Many parts have extended warranties of up to one year. Warranty information is listed on each product page.",
		},
	}
}
