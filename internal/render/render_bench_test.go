package render

import "testing"

var benchmarkContent = "## Refrigerator Door Shelf Bin\n\n" +
	"Part **PS11752778** fits most side-by-side models.\n\n" +
	"- Remove the old bin\n" +
	"- Slide the new bin into place\n\n" +
	"| Part | Price |\n" +
	"|------|-------|\n" +
	"| PS11752778 | $44.95 |\n\n" +
	"See the [installation guide](/products/PS11752778/installation-guide).\n"

func BenchmarkMarkdownNoCache(b *testing.B) {
	opts := DefaultOptions()
	for i := 0; i < b.N; i++ {
		ClearCache()
		if _, err := Markdown(benchmarkContent, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarkdownWithCache(b *testing.B) {
	opts := DefaultOptions()
	if _, err := Markdown(benchmarkContent, opts); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := Markdown(benchmarkContent, opts); err != nil {
				b.Fatal(err)
			}
		}
	})
}
