package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

const (
	// MaxFileNameBytes is the common filesystem limit for one path element.
	MaxFileNameBytes = 255

	// NoDate stands in for an unknown issue date in dated formats.
	NoDate = "SINFECHA"

	// maxDisambiguation bounds the " (n)" search.
	maxDisambiguation = 10000
)

// SplitExt splits a file name at its last dot. The extension keeps its dot
// and case; a name without a dot has no extension.
func SplitExt(fileName string) (stem, ext string) {
	i := strings.LastIndexByte(fileName, '.')
	if i < 0 {
		return fileName, ""
	}
	return fileName[:i], fileName[i:]
}

// ProposeName returns stem + " - " + name + ext.
func ProposeName(fileName, name string) string {
	stem, ext := SplitExt(fileName)
	return stem + " - " + name + ext
}

// Disambiguate inserts " (n)" before the extension.
func Disambiguate(fileName string, n int) string {
	stem, ext := SplitExt(fileName)
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// Occupancy reports whether destination holds a file other than source.
type Occupancy func(source, destination string) (bool, error)

// Planner computes rename plans for one batch. It remembers destinations
// claimed earlier in the batch so a dry-run reports the same names an apply
// run would produce.
type Planner struct {
	format    domain.FilenameFormat
	outputDir string
	occupied  Occupancy
	claimed   map[string]string
}

// NewPlanner creates a planner. An empty outputDir plans in-place renames.
// A nil occupied treats every destination as free.
func NewPlanner(format domain.FilenameFormat, outputDir string, occupied Occupancy) *Planner {
	if !format.IsValid() {
		format = domain.FormatSuffix
	}
	if occupied == nil {
		occupied = func(string, string) (bool, error) { return false, nil }
	}
	return &Planner{
		format:    format,
		outputDir: outputDir,
		occupied:  occupied,
		claimed:   make(map[string]string),
	}
}

// Plan proposes a destination for source carrying the sanitized name.
// issueDate (YYYYMMDD) is only used by dated formats.
func (p *Planner) Plan(source, name, issueDate string) (domain.RenamePlan, error) {
	if name == "" {
		return domain.RenamePlan{}, fmt.Errorf("%w: empty name", domain.ErrInvalidInput)
	}

	plan := domain.RenamePlan{
		Source: source,
		Name:   name,
		Copy:   p.outputDir != "",
	}
	dir := filepath.Dir(source)
	if plan.Copy {
		dir = p.outputDir
	}

	stem, ext := SplitExt(filepath.Base(source))
	inPlace := !plan.Copy || domain.SameDir(dir, filepath.Dir(source))
	if inPlace && alreadyNamed(stem, name) {
		plan.Copy = false
		plan.Destination = source
		return plan, nil
	}

	if issueDate == "" {
		issueDate = NoDate
	}

	for n := 1; n <= maxDisambiguation; n++ {
		reserve := 0
		if n > 1 {
			reserve = len(fmt.Sprintf(" (%d)", n))
		}

		base, fitted, err := p.compose(stem, ext, name, issueDate, reserve)
		if err != nil {
			return domain.RenamePlan{}, err
		}
		if n > 1 {
			base = Disambiguate(base, n)
		}
		dest := filepath.Join(dir, base)

		taken, err := p.taken(source, dest)
		if err != nil {
			return domain.RenamePlan{}, fmt.Errorf("%w: checking %s: %v", domain.ErrFilesystem, base, err)
		}
		if taken {
			continue
		}

		p.claimed[dest] = source
		plan.Destination = dest
		plan.Name = fitted
		return plan, nil
	}

	return domain.RenamePlan{}, fmt.Errorf("%w: no free name for %s", domain.ErrDestinationOccupied, filepath.Base(source))
}

// compose assembles the base name, shortening name at a word boundary so
// the result plus reserve bytes fits in MaxFileNameBytes. It returns the
// name actually used.
func (p *Planner) compose(stem, ext, name, date string, reserve int) (string, string, error) {
	var fixed int
	switch p.format {
	case domain.FormatDateClient, domain.FormatClientDate:
		fixed = len(date) + 2 + len(stem) + len(ext)
	default:
		fixed = len(stem) + len(" - ") + len(ext)
	}
	fixed += reserve

	if fixed+len(name) > MaxFileNameBytes {
		name = Truncate(name, MaxFileNameBytes-fixed)
		if name == "" {
			return "", "", fmt.Errorf("%w: %s%s", domain.ErrNameTooLong, stem, ext)
		}
	}

	switch p.format {
	case domain.FormatDateClient:
		return date + "_" + underscored(name) + "_" + stem + ext, name, nil
	case domain.FormatClientDate:
		return underscored(name) + "_" + date + "_" + stem + ext, name, nil
	default:
		return ProposeName(stem+ext, name), name, nil
	}
}

func (p *Planner) taken(source, dest string) (bool, error) {
	if owner, ok := p.claimed[dest]; ok && owner != source {
		return true, nil
	}
	return p.occupied(source, dest)
}

// alreadyNamed reports whether stem is already in one of the planner's
// output forms for name: "stem - NAME", "DATE_NAME_stem" or
// "NAME_DATE_stem", optionally followed by a " (n)" disambiguator.
func alreadyNamed(stem, name string) bool {
	stem = strings.ToUpper(stem)
	name = strings.ToUpper(name)
	under := regexp.QuoteMeta(underscored(name))

	suffixed := regexp.MustCompile(` - ` + regexp.QuoteMeta(name) + `(?: \(\d+\))?$`)
	dated := regexp.MustCompile(`^(?:(?:\d{8}|` + NoDate + `)_` + under + `|` + under + `_(?:\d{8}|` + NoDate + `))_`)
	return suffixed.MatchString(stem) || dated.MatchString(stem)
}

func underscored(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
