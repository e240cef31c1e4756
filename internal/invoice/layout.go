package invoice

import "github.com/custodia-labs/invoicename/internal/core/domain"

// DetectLayout classifies the invoice layout from its text.
//
// The full "Apellido y Nombre / Razón Social" label means the tax-authority
// layout. "Razón Social" together with type-B hints, or repeated at least
// twice, means a supplier type-B layout.
func DetectLayout(text string) domain.Layout {
	lines := Lines(text)

	hasFull := false
	razon := 0
	for _, ln := range lines {
		if nameLabels[0].re.MatchString(ln) {
			hasFull = true
			break
		}
		if nameLabels[1].re.MatchString(ln) {
			razon++
		}
	}

	switch {
	case hasFull:
		return domain.LayoutAFIP
	case razon > 0 && reProviderBHint.MatchString(NormalizeText(text)):
		return domain.LayoutProviderB
	case razon >= 2:
		return domain.LayoutProviderB
	default:
		return domain.LayoutUnknown
	}
}
