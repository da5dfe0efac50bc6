package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalize", func() {
	It("rewrites CRLF and bare CR line endings to LF", func() {
		Expect(Normalize("a\r\nb\rc")).To(Equal("a\nb\nc"))
	})

	It("collapses tabs and hard spaces into single spaces", func() {
		Expect(Normalize("Total\tTTC 1 200")).To(Equal("Total TTC 1 200"))
	})

	It("collapses runs of spaces", func() {
		Expect(Normalize("Facture    N°   42")).To(Equal("Facture N° 42"))
	})

	It("caps blank-line runs at one blank line", func() {
		Expect(Normalize("header\n\n\n\n\nbody")).To(Equal("header\n\nbody"))
	})

	It("trims trailing whitespace per line and around the document", func() {
		Expect(Normalize("  Total: 100   \n  fin  \n\n")).To(Equal("Total: 100\n fin"))
	})

	It("returns empty output for empty input", func() {
		Expect(Normalize("")).To(BeEmpty())
	})

	It("is idempotent", func() {
		raw := "A\r\n\r\n\r\nB\t\tC  "
		once := Normalize(raw)
		Expect(Normalize(once)).To(Equal(once))
	})
})
