package params

// Multiplexer produces parameter-set variants, either filtered to one test
// identifier or globally in its native order.
type Multiplexer interface {
	// DictsFor returns the variants matching the given identifier, in
	// declaration order. An identifier with no matching variants yields nil.
	DictsFor(identifier string) []*Set
	// Dicts returns every variant the source declares, in declaration order.
	Dicts() []*Set
}

// Build turns an identifier list and an optional multiplexer into the ordered
// sequence of parameter sets to execute.
//
// Precedence:
//   - no multiplexer: one bare {shortname: identifier} set per identifier;
//   - multiplexer and identifiers: each identifier expands to its variants,
//     falling back to a single bare set when the multiplexer yields none for
//     it, so no identifier is ever silently dropped;
//   - multiplexer alone: every variant the source produces, unfiltered.
//
// Variants from different identifiers never merge. Order is identifier order,
// then variant order within an identifier.
func Build(identifiers []string, m Multiplexer) []*Set {
	if m == nil {
		sets := make([]*Set, 0, len(identifiers))
		for _, id := range identifiers {
			sets = append(sets, Bare(id))
		}
		return sets
	}

	if len(identifiers) == 0 {
		return m.Dicts()
	}

	var sets []*Set
	for _, id := range identifiers {
		dicts := m.DictsFor(id)
		if len(dicts) == 0 {
			sets = append(sets, Bare(id))
			continue
		}
		sets = append(sets, dicts...)
	}
	return sets
}
