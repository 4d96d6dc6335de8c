// Package document holds the in-memory form of a parsed YAML file.
//
// Values are a closed set of variants: Null, Bool, Int, Uint, Float, String,
// Sequence and *Mapping. A Mapping keeps its keys unique and in the order they
// appeared in the source, so iterating a Document reproduces document order.
//
// Every variant implements fmt.Stringer with a deterministic rendering:
//
//	doc, err := document.New(raw)
//	for key, value := range doc.All() {
//	    fmt.Println(key, value)
//	}
package document
