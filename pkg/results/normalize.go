package results

import "sort"

// Source is one piece of evidence backing a flag, pointing at a record in
// the patient dataset.
type Source struct {
	Type    string `json:"type,omitempty"`
	ID      string `json:"id,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

// FlagResult is a named boolean detection outcome with its evidence.
type FlagResult struct {
	State   bool     `json:"state"`
	Sources []Source `json:"sources"`
}

// Row is the uniform per-encounter result shape every backend format is
// normalized into.
type Row struct {
	MRN   string                `json:"mrn"`
	CSN   string                `json:"csn"`
	Flags map[string]FlagResult `json:"flags"`
}

// LegacyRow is the older backend shape, already flag-keyed per encounter.
type LegacyRow struct {
	MRN   string                `json:"mrn"`
	CSN   string                `json:"csn"`
	Flags map[string]FlagResult `json:"flags"`
}

// OutputDefinition names one output a workflow can produce.
type OutputDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// OutputValue is one occurrence of a named output for an encounter in the
// newer definitions/values shape.
type OutputValue struct {
	MRN        string `json:"mrn"`
	CSN        string `json:"csn"`
	Name       string `json:"name"`
	SourceType string `json:"source_type,omitempty"`
	SourceID   string `json:"source_id,omitempty"`
	Excerpt    string `json:"excerpt,omitempty"`
}

// FromLegacy converts legacy rows, passing flags through and filling in the
// union of flag names so every row carries every flag.
func FromLegacy(rows []LegacyRow) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		flags := make(map[string]FlagResult, len(r.Flags))
		for name, fr := range r.Flags {
			flags[name] = fr
		}
		out = append(out, Row{MRN: r.MRN, CSN: r.CSN, Flags: flags})
	}
	fillFlagUnion(out)
	sortRows(out)
	return out
}

// FromOutputValues folds definitions/values results into rows. Each value
// occurrence counts toward its flag: state is true when at least one value
// exists, and sources holds one entry per occurrence. Input order does not
// affect the result.
func FromOutputValues(defs []OutputDefinition, values []OutputValue) []Row {
	type key struct{ mrn, csn string }

	byEncounter := make(map[key]map[string][]Source)
	for _, v := range values {
		k := key{v.MRN, v.CSN}
		if byEncounter[k] == nil {
			byEncounter[k] = make(map[string][]Source)
		}
		byEncounter[k][v.Name] = append(byEncounter[k][v.Name], Source{
			Type:    v.SourceType,
			ID:      v.SourceID,
			Excerpt: v.Excerpt,
		})
	}

	out := make([]Row, 0, len(byEncounter))
	for k, flags := range byEncounter {
		row := Row{MRN: k.mrn, CSN: k.csn, Flags: make(map[string]FlagResult, len(flags))}
		for name, sources := range flags {
			row.Flags[name] = FlagResult{State: true, Sources: sources}
		}
		out = append(out, row)
	}

	// Declared definitions count toward the flag union even when no row
	// produced a value for them.
	for _, row := range out {
		for _, def := range defs {
			if _, ok := row.Flags[def.Name]; !ok {
				row.Flags[def.Name] = FlagResult{State: false, Sources: []Source{}}
			}
		}
	}
	fillFlagUnion(out)
	sortRows(out)
	return out
}

// FlagNames returns the sorted union of flag names across rows.
func FlagNames(rows []Row) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for name := range row.Flags {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fillFlagUnion(rows []Row) {
	for _, name := range FlagNames(rows) {
		for _, row := range rows {
			if _, ok := row.Flags[name]; !ok {
				row.Flags[name] = FlagResult{State: false, Sources: []Source{}}
			}
		}
	}
}

func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MRN != rows[j].MRN {
			return rows[i].MRN < rows[j].MRN
		}
		return rows[i].CSN < rows[j].CSN
	})
}
