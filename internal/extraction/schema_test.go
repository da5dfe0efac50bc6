package extraction

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("record schema", func() {
	It("accepts every record the engine assembles", func() {
		engine := NewEngine(Config{}, nil)
		for _, text := range []string{"", "Some random text", frenchInvoice} {
			raw, err := json.Marshal(engine.Extract(text))
			Expect(err).NotTo(HaveOccurred())
			Expect(ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), raw)).To(Succeed())
		}
	})

	It("rejects a record missing required fields", func() {
		err := ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), []byte(`{"total": 100}`))
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown top-level fields", func() {
		engine := NewEngine(Config{}, nil)
		raw, err := json.Marshal(engine.Extract(frenchInvoice))
		Expect(err).NotTo(HaveOccurred())
		var rec map[string]any
		Expect(json.Unmarshal(raw, &rec)).To(Succeed())
		rec["vendor"] = "ACME Corp"
		raw, err = json.Marshal(rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), raw)).NotTo(Succeed())
	})

	It("rejects malformed JSON", func() {
		err := ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), []byte(`{`))
		Expect(err).To(HaveOccurred())
	})
})
