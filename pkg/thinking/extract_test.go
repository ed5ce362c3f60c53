package thinking_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumenchat/lumen/pkg/thinking"
)

var _ = Describe("Extract", func() {
	Context("with a complete marker pair", func() {
		It("returns the trimmed content between the markers", func() {
			split := thinking.Extract("<think>plan A</think>answer text")

			Expect(split.Found).To(BeTrue())
			Expect(split.Thinking).To(Equal("plan A"))
			Expect(split.Visible).To(Equal("answer text"))
		})

		It("trims whitespace inside the thinking segment", func() {
			split := thinking.Extract("<think>\n  steps first\n</think>done")

			Expect(split.Thinking).To(Equal("steps first"))
			Expect(split.Visible).To(Equal("done"))
		})

		It("matches across embedded line breaks", func() {
			split := thinking.Extract("<think>line one\nline two\nline three</think>\nthe answer")

			Expect(split.Found).To(BeTrue())
			Expect(split.Thinking).To(Equal("line one\nline two\nline three"))
			Expect(split.Visible).To(Equal("the answer"))
		})

		It("removes the marker pair from the visible text and trims it", func() {
			split := thinking.Extract("  <think>t</think>  hello  ")

			Expect(split.Visible).To(Equal("hello"))
			Expect(split.Visible).NotTo(ContainSubstring("<think>"))
			Expect(split.Visible).NotTo(ContainSubstring("</think>"))
		})

		It("keeps text on both sides of the pair", func() {
			split := thinking.Extract("intro <think>t</think> tail")

			Expect(split.Thinking).To(Equal("t"))
			Expect(split.Visible).To(Equal("intro  tail"))
		})

		It("handles an empty thinking segment", func() {
			split := thinking.Extract("<think></think>answer")

			Expect(split.Found).To(BeTrue())
			Expect(split.Thinking).To(BeEmpty())
			Expect(split.Visible).To(Equal("answer"))
		})
	})

	Context("without a complete marker pair", func() {
		It("returns the text unchanged when no markers are present", func() {
			text := "  a plain answer \n"
			split := thinking.Extract(text)

			Expect(split.Found).To(BeFalse())
			Expect(split.Thinking).To(BeEmpty())
			Expect(split.Visible).To(Equal(text))
		})

		It("returns the text unchanged while the segment is still open", func() {
			text := "<think>still reasoning"
			split := thinking.Extract(text)

			Expect(split.Found).To(BeFalse())
			Expect(split.Visible).To(Equal(text))
		})

		It("ignores a closing marker that precedes the opening one", func() {
			text := "</think>odd<think>tail"
			split := thinking.Extract(text)

			Expect(split.Found).To(BeFalse())
			Expect(split.Visible).To(Equal(text))
		})

		It("handles the empty string", func() {
			split := thinking.Extract("")

			Expect(split.Found).To(BeFalse())
			Expect(split.Visible).To(BeEmpty())
		})
	})

	Context("with multiple marker pairs", func() {
		It("extracts only the first pair and leaves the rest visible", func() {
			split := thinking.Extract("<think>a</think>mid<think>b</think>end")

			Expect(split.Thinking).To(Equal("a"))
			Expect(split.Visible).To(Equal("mid<think>b</think>end"))
		})

		It("is deterministic over repeated calls", func() {
			text := "<think>a</think>x<think>b</think>y"
			first := thinking.Extract(text)
			second := thinking.Extract(text)

			Expect(second).To(Equal(first))
		})
	})

	Context("on a growing stream prefix", func() {
		It("is stable when recomputed fragment by fragment", func() {
			fragments := []string{"<th", "ink>pl", "an A</th", "ink>ans", "wer text"}

			var accumulated string
			var last thinking.Split
			for _, fragment := range fragments {
				accumulated += fragment
				last = thinking.Extract(accumulated)
			}

			Expect(last.Found).To(BeTrue())
			Expect(last.Thinking).To(Equal("plan A"))
			Expect(last.Visible).To(Equal("answer text"))
		})

		It("keeps rendering raw text until the pair completes", func() {
			open := thinking.Extract("<think>plan A")
			Expect(open.Found).To(BeFalse())
			Expect(open.Visible).To(Equal("<think>plan A"))

			closed := thinking.Extract("<think>plan A</think>")
			Expect(closed.Found).To(BeTrue())
			Expect(closed.Visible).To(BeEmpty())
		})
	})

	Context("with custom markers", func() {
		It("splits on the configured pair", func() {
			extractor := thinking.NewExtractor("[[reason]]", "[[/reason]]")
			split := extractor.Extract("[[reason]]why[[/reason]]because")

			Expect(split.Found).To(BeTrue())
			Expect(split.Thinking).To(Equal("why"))
			Expect(split.Visible).To(Equal("because"))
		})

		It("does not react to the default markers", func() {
			extractor := thinking.NewExtractor("[[reason]]", "[[/reason]]")
			text := "<think>ignored</think>answer"
			split := extractor.Extract(text)

			Expect(split.Found).To(BeFalse())
			Expect(split.Visible).To(Equal(text))
		})
	})
})
