package catalogo

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatRecordLine formats a record as a single result line: category label,
// SIGA code, item name and unit.
func FormatRecordLine(r *Record) string {
	return fmt.Sprintf("%-8s  %s  %s  [%s]", r.Category.Label(), r.SIGACode(), r.ItemName, r.UnitName)
}

// FormatRecordDetail formats every attribute of a record for the detail view.
func FormatRecordDetail(r *Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.ItemName)
	fmt.Fprintf(&b, "  Código SIGA:       %s\n", r.SIGACode())
	fmt.Fprintf(&b, "  Tipo:              %s\n", r.Category.Label())
	fmt.Fprintf(&b, "  Grupo:             %s (%s)\n", r.GroupName, r.GroupCode)
	fmt.Fprintf(&b, "  Clase:             %s (%s)\n", r.ClassName, r.ClassCode)
	fmt.Fprintf(&b, "  Familia:           %s (%s)\n", r.FamilyName, r.FamilyCode)
	fmt.Fprintf(&b, "  Ítem:              %s\n", r.ItemCode)
	fmt.Fprintf(&b, "  Unidad de medida:  %s\n", r.UnitName)
	return b.String()
}

// FormatCount formats a record count with Spanish digit grouping.
func FormatCount(n int) string {
	return message.NewPrinter(language.Spanish).Sprintf("%d", n)
}
