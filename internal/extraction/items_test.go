package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/R4mii/ORC-SYS-sub001/internal/entity"
)

var _ = Describe("extractItems", func() {
	It("decomposes qty/unit-price/amount rows", func() {
		text := Normalize("Désignation\nProduit A 10 129,99 1.299,90\nProduit B 2 50,00 100,00\nTotal TTC: 1 399,90")
		items := extractItems(text, decimal.Zero)
		Expect(items).To(HaveLen(2))
		Expect(items[0].Description).To(Equal("Produit A"))
		Expect(items[0].Quantity).To(Equal(10.0))
		Expect(items[0].UnitPrice).To(BeNumerically("~", 129.99, 1e-9))
		Expect(items[0].Amount).To(BeNumerically("~", 1299.90, 1e-9))
		Expect(items[1].Description).To(Equal("Produit B"))
		Expect(items[1].Quantity).To(Equal(2.0))
	})

	It("derives the unit price on qty/amount rows", func() {
		text := Normalize("Items\nWidget 4 100,00\nTotal: 100 DH")
		items := extractItems(text, decimal.Zero)
		Expect(items).To(HaveLen(1))
		Expect(items[0].Description).To(Equal("Widget"))
		Expect(items[0].Quantity).To(Equal(4.0))
		Expect(items[0].UnitPrice).To(Equal(25.0))
		Expect(items[0].Amount).To(Equal(100.0))
	})

	It("treats a lone trailing number as the amount of one unit", func() {
		text := Normalize("Description\nForfait livraison 49,90\nTotal 49,90 DH")
		items := extractItems(text, decimal.Zero)
		Expect(items).To(HaveLen(1))
		Expect(items[0].Description).To(Equal("Forfait livraison"))
		Expect(items[0].Quantity).To(Equal(1.0))
		Expect(items[0].Amount).To(BeNumerically("~", 49.90, 1e-9))
	})

	It("filters summary rows inside the block", func() {
		text := Normalize("Description\nStylo 2 10,00 20,00\nTVA 20% incluse 4,00\nGomme 1 5,00 5,00\nTotal 25,00 DH")
		items := extractItems(text, decimal.Zero)
		Expect(items).To(HaveLen(2))
		Expect(items[0].Description).To(Equal("Stylo"))
		Expect(items[1].Description).To(Equal("Gomme"))
	})

	It("synthesizes one item from the subtotal when no row parses", func() {
		items := extractItems("no items table here", decimal.NewFromInt(9000))
		Expect(items).To(HaveLen(1))
		Expect(items[0]).To(Equal(entity.InvoiceItem{
			Description: "Item from invoice",
			Quantity:    1,
			UnitPrice:   9000,
			Amount:      9000,
		}))
	})

	It("returns an empty non-nil slice when nothing is known", func() {
		items := extractItems("nothing to see", decimal.Zero)
		Expect(items).NotTo(BeNil())
		Expect(items).To(BeEmpty())
	})
})

var _ = Describe("parseItemLine", func() {
	It("keeps a non-numeric second-to-last token in the description", func() {
		item, ok := parseItemLine("Maintenance serveur an 1 500,00")
		Expect(ok).To(BeTrue())
		Expect(item.Quantity).To(Equal(1.0))
		Expect(item.Amount).To(Equal(500.0))
		Expect(item.Description).To(Equal("Maintenance serveur an"))
	})

	It("degrades to qty/amount when the leading number is not a quantity", func() {
		item, ok := parseItemLine("Remise 0 2 100,00")
		Expect(ok).To(BeTrue())
		Expect(item.Quantity).To(Equal(2.0))
		Expect(item.UnitPrice).To(Equal(50.0))
		Expect(item.Description).To(Equal("Remise 0"))
	})

	It("rejects rows without a trailing number", func() {
		_, ok := parseItemLine("Conditions de paiement")
		Expect(ok).To(BeFalse())
	})
})
