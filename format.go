package cssfeatures

import (
	"fmt"
	"strings"
)

// String returns a human-readable summary of the results.
func (f *Features) String() string {
	var b strings.Builder

	b.WriteString("Features:\n")
	for _, name := range f.Names() {
		result, _ := f.Result(name)
		writeResult(&b, "  "+name, result.Value)
		for _, sub := range result.SubNames() {
			v, _ := result.Sub(sub)
			writeResult(&b, "    "+name+"."+sub, v)
		}
	}
	b.WriteString("\n")

	b.WriteString("Vendor Prefixes:\n")
	writeList(&b, "  CSSOM", f.cssom)
	writeList(&b, "  DOM", f.dom)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Classes: %s\n", strings.Join(f.Classes(), " "))
	return b.String()
}

func writeResult(b *strings.Builder, name string, v Value) {
	status := "no"
	if v.Supported() {
		status = "yes"
	}
	if prop, ok := v.Name(); ok && prop != "" {
		fmt.Fprintf(b, "%s: %s (%s)\n", name, status, prop)
	} else {
		fmt.Fprintf(b, "%s: %s\n", name, status)
	}
}

func writeList(b *strings.Builder, name string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: (none)\n", name)
		return
	}
	fmt.Fprintf(b, "%s: %s\n", name, strings.Join(items, " "))
}
