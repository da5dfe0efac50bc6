package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/R4mii/ORC-SYS-sub001/internal/entity"
)

var _ = Describe("scoreConfidence", func() {
	It("scores an empty record at zero", func() {
		Expect(scoreConfidence(&entity.ExtractedInvoice{})).To(BeZero())
	})

	It("scores a record with every tracked field at one", func() {
		inv := &entity.ExtractedInvoice{
			InvoiceNumber: "INV-1",
			Date:          "15/03/2024",
			Subtotal:      1000,
			TaxAmount:     200,
			Total:         1200,
		}
		inv.Supplier.Name = "ACME Corp"
		Expect(scoreConfidence(inv)).To(Equal(1.0))
	})

	It("weighs the six signals evenly", func() {
		inv := &entity.ExtractedInvoice{InvoiceNumber: "INV-1", Date: "15/03/2024", Total: 100}
		inv.Supplier.Name = "ACME Corp"
		Expect(scoreConfidence(inv)).To(BeNumerically("~", 4.0/6.0, 1e-9))
	})

	It("grows as fields are found", func() {
		base := &entity.ExtractedInvoice{Total: 100}
		withDate := &entity.ExtractedInvoice{Total: 100, Date: "15/03/2024"}
		Expect(scoreConfidence(withDate)).To(BeNumerically(">", scoreConfidence(base)))
	})

	It("ignores untracked fields", func() {
		inv := &entity.ExtractedInvoice{Currency: "MAD", DueDate: "15/04/2024"}
		inv.Supplier.Address = "12 Rue des Orangers"
		Expect(scoreConfidence(inv)).To(BeZero())
	})
})
