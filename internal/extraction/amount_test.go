package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("ParseAmount", func() {
	It("parses space-thousands comma-decimal amounts", func() {
		d, err := ParseAmount("1 800,00")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.InexactFloat64()).To(Equal(1800.00))
	})

	It("parses dot-thousands comma-decimal amounts", func() {
		d, err := ParseAmount("1.299,90")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.InexactFloat64()).To(BeNumerically("~", 1299.90, 1e-9))
	})

	It("parses comma-thousands dot-decimal amounts", func() {
		d, err := ParseAmount("1,299.90")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.InexactFloat64()).To(BeNumerically("~", 1299.90, 1e-9))
	})

	It("treats a lone comma as the decimal point", func() {
		d, err := ParseAmount("72,5")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.InexactFloat64()).To(Equal(72.5))
	})

	It("strips non-breaking-space separators", func() {
		d, err := ParseAmount("10 800,00")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.InexactFloat64()).To(Equal(10800.00))
	})

	It("parses plain integers", func() {
		d, err := ParseAmount("1200")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.InexactFloat64()).To(Equal(1200.0))
	})

	It("drops trailing separators left behind by greedy captures", func() {
		d, err := ParseAmount("1200, ")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.InexactFloat64()).To(Equal(1200.0))
	})

	It("fails on non-numeric input", func() {
		_, err := ParseAmount("Produit")
		Expect(err).To(HaveOccurred())
	})

	It("fails on empty input", func() {
		_, err := ParseAmount("   ")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("amount cascades", func() {
	Describe("totalRules", func() {
		It("matches the TTC label without a colon", func() {
			d := extractAmount("Total TTC 10 800,00", totalRules)
			Expect(d.InexactFloat64()).To(Equal(10800.00))
		})

		It("matches a generic Total only when a currency trails it", func() {
			Expect(extractAmount("Total: 1200 MAD", totalRules).InexactFloat64()).To(Equal(1200.0))
			Expect(extractAmount("Total: 1200", totalRules).IsZero()).To(BeTrue())
		})

		It("matches the amount-due phrasing", func() {
			d := extractAmount("Montant à payer : 540,50", totalRules)
			Expect(d.InexactFloat64()).To(Equal(540.50))
		})
	})

	Describe("subtotalRules", func() {
		It("matches hyphenated and spaced sub-total labels", func() {
			Expect(extractAmount("Sous-total: 1 399,90", subtotalRules).InexactFloat64()).To(BeNumerically("~", 1399.90, 1e-9))
			Expect(extractAmount("Sous total 900,00", subtotalRules).InexactFloat64()).To(Equal(900.0))
		})

		It("matches the HT label", func() {
			Expect(extractAmount("Total HT: 9 000,00", subtotalRules).InexactFloat64()).To(Equal(9000.0))
		})
	})

	Describe("taxRules", func() {
		It("matches a plain TVA line", func() {
			Expect(extractAmount("TVA: 200 MAD", taxRules).InexactFloat64()).To(Equal(200.0))
		})

		It("skips a parenthesized rate between label and amount", func() {
			Expect(extractAmount("TVA (20%) : 280,00", taxRules).InexactFloat64()).To(Equal(280.0))
		})

		It("skips a bare rate followed by a colon", func() {
			Expect(extractAmount("TVA 20% : 400,00", taxRules).InexactFloat64()).To(Equal(400.0))
			Expect(extractAmount("TVA 20%: 75,00", taxRules).InexactFloat64()).To(Equal(75.0))
		})

		It("matches the unlabelled colon-free form", func() {
			Expect(extractAmount("TVA 54,10", taxRules).InexactFloat64()).To(BeNumerically("~", 54.10, 1e-9))
		})
	})

	It("returns zero when the cascade misses", func() {
		Expect(extractAmount("Some random text without invoice data", totalRules).IsZero()).To(BeTrue())
	})
})

var _ = Describe("amount derivations", func() {
	It("estimates the subtotal by removing standard VAT", func() {
		total := decimal.NewFromInt(10800)
		Expect(estimateSubtotalFromTotal(total).InexactFloat64()).To(Equal(9000.0))
	})

	It("rounds the estimated subtotal to cents", func() {
		Expect(estimateSubtotalFromTotal(decimal.NewFromInt(100)).InexactFloat64()).To(Equal(83.33))
	})

	It("derives the tax as the gap between the totals", func() {
		got := deriveTaxFromTotals(decimal.NewFromInt(10800), decimal.NewFromInt(9000))
		Expect(got.InexactFloat64()).To(Equal(1800.0))
	})
})
