package subgroups

import (
	"slices"
	"sort"
	"strings"

	"groupcore/pkg/domain"
)

// SpecialSearch returns the first record, in label order, tagged
// "<ambient>.<kind>".
func SpecialSearch(s Set, kind string) (string, bool) {
	var found string
	s.each(func(rec *domain.SubgroupRecord) bool {
		for _, l := range rec.SpecialLabels {
			if tag, ok := domain.ParseSpecialLabel(s.ambient, l); ok && !tag.HasIndex && tag.Kind == kind {
				found = rec.Label
				return false
			}
		}
		return true
	})
	return found, found != ""
}

// Fitting returns the Fitting subgroup.
func Fitting(s Set) (string, bool) { return SpecialSearch(s, domain.TagFitting) }

// Radical returns the solvable radical.
func Radical(s Set) (string, bool) { return SpecialSearch(s, domain.TagRadical) }

// Socle returns the socle.
func Socle(s Set) (string, bool) { return SpecialSearch(s, domain.TagSocle) }

// SeriesSearch collects the records tagged "<ambient>.<kind><i>" ordered by
// i. The derived series is reversed so it reads from the whole group down.
func SeriesSearch(s Set, kind string) []string {
	type term struct {
		label string
		index int
	}
	var terms []term
	s.each(func(rec *domain.SubgroupRecord) bool {
		for _, l := range rec.SpecialLabels {
			if tag, ok := domain.ParseSpecialLabel(s.ambient, l); ok && tag.HasIndex && tag.Kind == kind {
				terms = append(terms, term{label: rec.Label, index: tag.Index})
			}
		}
		return true
	})
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].index < terms[j].index })
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.label
	}
	if kind == domain.TagDerived {
		reverse(out)
	}
	return out
}

func reverse(labels []string) {
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
}

// DerivedSeries is G, G', G'', ...
func DerivedSeries(s Set) []string { return SeriesSearch(s, domain.TagDerived) }

// ChiefSeries lists the chief series by tag index.
func ChiefSeries(s Set) []string { return SeriesSearch(s, domain.TagChief) }

// LowerCentralSeries lists the lower central series by tag index.
func LowerCentralSeries(s Set) []string { return SeriesSearch(s, domain.TagLowerCentral) }

// UpperCentralSeries lists the upper central series by tag index.
func UpperCentralSeries(s Set) []string { return SeriesSearch(s, domain.TagUpperCentral) }

// SeriesRow is one series as the group page tabulates it.
type SeriesRow struct {
	Key    string   `json:"key"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	ID     string   `json:"id"`
	Symbol string   `json:"symbol"`
}

// CloneSeriesRows copies rows and their label lists.
func CloneSeriesRows(rows []SeriesRow) []SeriesRow {
	if rows == nil {
		return nil
	}
	out := make([]SeriesRow, len(rows))
	for i, r := range rows {
		r.Labels = slices.Clone(r.Labels)
		out[i] = r
	}
	return out
}

// SeriesTable returns the derived, chief, lower central and upper central
// series. Terms are joined with \rhd, except the upper central series, which
// is listed bottom-up and joined with \lhd; ID keeps the search order.
func SeriesTable(s Set) []SeriesRow {
	series := []struct {
		key    string
		labels []string
	}{
		{"derived_series", DerivedSeries(s)},
		{"chief_series", ChiefSeries(s)},
		{"lower_central_series", LowerCentralSeries(s)},
		{"upper_central_series", UpperCentralSeries(s)},
	}
	rows := make([]SeriesRow, 0, len(series))
	for _, ser := range series {
		title := strings.ReplaceAll(ser.key, "_", " ")
		rows = append(rows, SeriesRow{
			Key:    "group." + ser.key,
			Title:  strings.ToUpper(title[:1]) + title[1:],
			Labels: append([]string(nil), ser.labels...),
			ID:     strings.Join(ser.labels, "-"),
			Symbol: `\rhd`,
		})
	}
	upper := &rows[len(rows)-1]
	upper.Symbol = `\lhd`
	reverse(upper.Labels)
	return rows
}
