package invoice

import "regexp"

// label is one recognized name label.
type label struct {
	name string
	re   *regexp.Regexp
}

// nameLabels is the priority order. The first label with any occurrence wins.
var nameLabels = []label{
	{
		name: "Apellido y Nombre / Razón Social",
		re:   regexp.MustCompile(`(?i)apellido\s*y\s*nombre\s*/\s*raz[oóòö]n\s*social\s*:?`),
	},
	{
		name: "Razón Social",
		re:   regexp.MustCompile(`(?i)raz[oóòö]n\s*social\s*:?`),
	},
}

// reFieldLabel matches any field label that ends a captured name.
var reFieldLabel = regexp.MustCompile(`(?i)\b(?:cuit|domicilio|condici[oó]n|punto\s*de\s*venta|comprobante|per[ií]odo|fecha|cae|ingresos\s*brutos)\b` +
	`|\bc\.u\.i\.t\b|apellido\s*y\s*nombre|raz[oóòö]n\s*social`)

var (
	reAddress = regexp.MustCompile(`(?i)\d|,| - |\b(?:domicilio|calle|avenida|av|piso|depto|capital|buenos\s*aires|provincia|cp|c[oó]digo\s*postal)\b`)

	reCorporateSuffix = regexp.MustCompile(`(?i)\b(?:s\.?a\.?|s\.?r\.?l\.?|sas|sau|saic|saicyf|saicf|u\.?t\.?e\.?)\b`)

	reNameToken = regexp.MustCompile(`[A-Za-zÁÉÍÓÚÑÜáéíóúñü]{2,}`)

	reProviderBHint = regexp.MustCompile(`(?im)\bcomprobantes\s+asociados\b|\bc\.u\.i\.t\.|\bc[oó]digo\s*00\d|^B$|\bfactura\s+b\b`)
)

// Labels returns the recognized name labels in priority order.
func Labels() []string {
	out := make([]string, len(nameLabels))
	for i, l := range nameLabels {
		out[i] = l.name
	}
	return out
}

// cutAtFieldLabel returns s up to the first field label.
func cutAtFieldLabel(s string) string {
	if loc := reFieldLabel.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}

func hasFieldLabel(s string) bool {
	return reFieldLabel.MatchString(s)
}

func looksLikeAddress(s string) bool {
	return reAddress.MatchString(s)
}

// isViable requires at least two alphabetic tokens of two letters or more.
func isViable(s string) bool {
	return len(reNameToken.FindAllString(s, 2)) >= 2
}
