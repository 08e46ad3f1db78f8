package docmodel

// Merge combines freshly extracted classes with a previously curated prior
// document. Structural facts (parameter lists, writability) follow fresh
// extraction; prose (descriptions, examples, aliases) and explicit overrides
// (property types, return types) follow the prior document when present.
// Classes and entries found only in the prior document are preserved and
// appended after the fresh ones, in their original order. Merge is a pure
// function and is idempotent: merging its own output changes nothing.
func Merge(fresh, prior *Document) *Document {
	merged := &Document{Meta: fresh.Meta}

	for _, fc := range fresh.Classes {
		var pc *Class
		if prior != nil {
			pc = prior.Class(fc.Name)
		}
		merged.Classes = append(merged.Classes, mergeClass(fc, pc))
	}

	if prior != nil {
		for _, pc := range prior.Classes {
			if fresh.Class(pc.Name) == nil {
				merged.Classes = append(merged.Classes, pc)
			}
		}
	}
	return merged
}

func mergeClass(fresh Class, prior *Class) Class {
	out := Class{
		Name:        fresh.Name,
		Description: pick(priorString(prior, func(c *Class) string { return c.Description }), fresh.Description, ClassPlaceholder(fresh.Name)),
		Source:      fresh.Source,
	}

	for _, fe := range fresh.Properties {
		var pe *Entry
		if prior != nil {
			pe = prior.Property(fe.Name)
		}
		out.Properties = append(out.Properties, mergeEntry(fe, pe))
	}
	for _, fe := range fresh.Methods {
		var pe *Entry
		if prior != nil {
			pe = prior.Method(fe.Name)
		}
		out.Methods = append(out.Methods, mergeEntry(fe, pe))
	}

	if prior != nil {
		for _, pe := range prior.Properties {
			if findEntry(fresh.Properties, pe.Name) == nil {
				out.Properties = append(out.Properties, pe)
			}
		}
		for _, pe := range prior.Methods {
			if findEntry(fresh.Methods, pe.Name) == nil {
				out.Methods = append(out.Methods, pe)
			}
		}
	}
	return out
}

func mergeEntry(fresh Entry, prior *Entry) Entry {
	out := Entry{
		Name:      fresh.Name,
		Writable:  fresh.Writable,
		Signature: fresh.Signature,
	}

	p := func(get func(*Entry) string) string {
		if prior == nil {
			return ""
		}
		return get(prior)
	}

	out.Description = pick(p(func(e *Entry) string { return e.Description }), fresh.Description, PlaceholderDescription)
	out.Type = pick(p(func(e *Entry) string { return e.Type }), fresh.Type, "")
	out.Returns = pick(p(func(e *Entry) string { return e.Returns }), fresh.Returns, "")
	out.ReturnDescription = pick(p(func(e *Entry) string { return e.ReturnDescription }), fresh.ReturnDescription, "")
	out.Example = pick(p(func(e *Entry) string { return e.Example }), fresh.Example, "")

	if prior != nil && len(prior.Aliases) > 0 {
		out.Aliases = prior.Aliases
	} else {
		out.Aliases = fresh.Aliases
	}

	// The fresh parameter list is authoritative for arity and names; prior
	// type and description annotations are carried over per parameter.
	for _, fp := range fresh.Params {
		mp := fp
		if prior != nil {
			if pp := priorParam(prior.Params, fp.Name); pp != nil {
				if pp.Type != "" {
					mp.Type = pp.Type
				}
				if pp.Description != "" {
					mp.Description = pp.Description
				}
			}
		}
		if mp.Description == "" {
			mp.Description = PlaceholderDescription
		}
		out.Params = append(out.Params, mp)
	}
	return out
}

func priorParam(params []Param, name string) *Param {
	for i := range params {
		if params[i].Name == name {
			return &params[i]
		}
	}
	return nil
}

func priorString(prior *Class, get func(*Class) string) string {
	if prior == nil {
		return ""
	}
	return get(prior)
}

// pick returns the first non-empty choice, falling back to the placeholder.
func pick(prior, fresh, placeholder string) string {
	if prior != "" {
		return prior
	}
	if fresh != "" {
		return fresh
	}
	return placeholder
}
