package orgfix_test

import (
	"context"
	"fmt"

	"github.com/alnah/go-orgfix"
)

// Example normalizes an org-mode table on an ordinary page.
func Example() {
	proc, err := orgfix.NewProcessor()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := proc.Process(context.Background(), orgfix.Input{
		HTML: `<table><tr><td>Name</td></tr><tr><td>---</td></tr><tr><td>Ada</td></tr></table>`,
		Path: "/People.html",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.HTML)
	// Output: <table><thead><tr><th>Name</th></tr></thead><tbody><tr><td>Ada</td></tr></tbody></table>
}

// Example_monthlyPage links day cells to their daily entries.
func Example_monthlyPage() {
	proc, err := orgfix.NewProcessor()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := proc.Process(context.Background(), orgfix.Input{
		HTML: `<table><tbody><tr><td>7 - dentist</td></tr></tbody></table>`,
		Path: "/Journal/May2025.html",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Identity)
	fmt.Println(result.HTML)
	// Output:
	// May 2025
	// <table><tbody><tr><td><a href="/Journal/2025/05-May/07-May-2025-Wednesday.html">7 - dentist</a></td></tr></tbody></table>
}

// ExampleResolvePageIdentity shows which pages count as monthly pages.
func ExampleResolvePageIdentity() {
	for _, path := range []string{
		"/Notes/january_2026-173.html",
		"/Journal/2024/July 2024.html",
		"/Journal/2025/05-May/07-May-2025-Wednesday.html",
	} {
		if id, ok := orgfix.ResolvePageIdentity(path); ok {
			fmt.Printf("%s: %s\n", path, id)
		} else {
			fmt.Printf("%s: not monthly\n", path)
		}
	}
	// Output:
	// /Notes/january_2026-173.html: January 2026
	// /Journal/2024/July 2024.html: July 2024
	// /Journal/2025/05-May/07-May-2025-Wednesday.html: not monthly
}
