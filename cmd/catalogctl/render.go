package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	v1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/storefront"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderTypes(w io.Writer, types []v1.ProductTypeWithCount) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRODUCTS\tDESCRIPTION")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.ID, t.Name, t.Count.Products, deref(t.Description))
	}
	return tw.Flush()
}

func renderCatalog(w io.Writer, st storefront.CatalogState) error {
	tabs := storefront.Tabs(st.Products, st.Types)
	labels := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s (%d)", tab.Name, tab.Count)
		if tab.Name == storefront.AllTypes {
			label = fmt.Sprintf("All Products (%d)", tab.Count)
		}
		if tab.Name == st.SelectedType {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	fmt.Fprintln(w, strings.Join(labels, "  "))
	fmt.Fprintln(w)

	if st.SelectedType != storefront.AllTypes {
		return renderProducts(w, st.Products)
	}
	for _, g := range storefront.GroupByType(st.Products) {
		fmt.Fprintf(w, "%s  %s\n", g.TypeName, plural(len(g.Products), "product"))
		if err := renderProducts(w, g.Products); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func renderProducts(w io.Writer, products []v1.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "No products found")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tPRICE\tVARIANTS\tADD-ONS")
	for i := range products {
		p := &products[i]
		addOns := "-"
		if storefront.IsFood(p) && len(p.AddOns) > 0 {
			addOns = plural(len(p.AddOns), "add-on")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID, p.Name, storefront.TypeName(p), storefront.PriceLabel(p), len(p.Variants), addOns)
	}
	return tw.Flush()
}

func renderSelection(w io.Writer, sel *storefront.Selection) error {
	p := sel.Product()
	typeName := storefront.TypeName(p)
	fmt.Fprintf(w, "%s (%s)\n", p.Name, typeName)
	desc := deref(p.Description)
	if desc == "" {
		desc = "No description available"
	}
	fmt.Fprintln(w, desc)
	fmt.Fprintln(w)

	tw := newTable(w)
	colorLabel := storefront.ColorLabel(typeName)
	switch sel.Mode() {
	case storefront.ModeNone:
		fmt.Fprintln(tw, "No variants available")
	case storefront.ModeCombined:
		fmt.Fprintf(tw, "Sizes:\t%s\n", strings.Join(storefront.Sizes(p.Variants), ", "))
		fmt.Fprintf(tw, "%ss:\t%s\n", colorLabel, strings.Join(storefront.Colors(p.Variants), ", "))
	default:
		fmt.Fprintf(tw, " \tID\tSIZE\t%s\tPRICE\tSTOCK\n", strings.ToUpper(colorLabel))
		selected := sel.Variant()
		for _, v := range p.Variants {
			mark := " "
			if selected != nil && v.ID == selected.ID {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", mark, v.ID, deref(v.Size), deref(v.Color),
				storefront.FormatINR(storefront.ConvertUSDToINR(v.Price)), storefront.StockLabel(v.Stock))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if v := sel.Variant(); v != nil {
		fmt.Fprintf(w, "\nSelected: %s %s\n", describeVariant(v, colorLabel), storefront.StockLabel(v.Stock))
	}

	if sel.ShowAddOns() {
		fmt.Fprintln(w, "\nAdd-ons:")
		tw = newTable(w)
		for _, a := range p.AddOns {
			mark := "[ ]"
			if sel.IsAddOnSelected(a.ID) {
				mark = "[x]"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t+%s\n", mark, a.ID, a.Name, storefront.FormatINR(storefront.ConvertUSDToINR(a.Price)))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nPrice Breakdown")
	tw = newTable(w)
	if v := sel.Variant(); v != nil {
		fmt.Fprintf(tw, "Base Price\t%s\n", storefront.FormatINR(storefront.ConvertUSDToINR(v.Price)))
	}
	for _, a := range sel.SelectedAddOns() {
		fmt.Fprintf(tw, "+ %s\t%s\n", a.Name, storefront.FormatINR(storefront.ConvertUSDToINR(a.Price)))
	}
	fmt.Fprintf(tw, "Total\t%s\n", storefront.FormatINR(storefront.ConvertUSDToINR(sel.Total())))
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", sel.ActionLabel())
	return err
}

func describeVariant(v *v1.Variant, colorLabel string) string {
	var parts []string
	if s := deref(v.Size); s != "" {
		parts = append(parts, "Size: "+s)
	}
	if c := deref(v.Color); c != "" {
		parts = append(parts, colorLabel+": "+c)
	}
	parts = append(parts, storefront.FormatINR(storefront.ConvertUSDToINR(v.Price)))
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
