package domain

// Layout identifies the invoice layout family detected in extracted text.
type Layout string

// Known layouts.
const (
	// LayoutAFIP is the tax-authority layout carrying the full
	// "Apellido y Nombre / Razón Social" label.
	LayoutAFIP Layout = "afip"

	// LayoutProviderB is a supplier type-B layout using "Razón Social".
	LayoutProviderB Layout = "provider_b"

	// LayoutUnknown means no known layout hints were found.
	LayoutUnknown Layout = "unknown"
)

// String returns the string representation.
func (l Layout) String() string {
	return string(l)
}

// Description returns a human-readable description of the layout.
func (l Layout) Description() string {
	switch l {
	case LayoutAFIP:
		return "AFIP (Apellido y Nombre / Razón Social)"
	case LayoutProviderB:
		return "Provider type B (Razón Social)"
	case LayoutUnknown:
		return unknownDescription
	default:
		return unknownDescription
	}
}
