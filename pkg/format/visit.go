package format

// Visit walks f depth-first, calling fn on every node before descending into
// its children. Traversal stops at TypeName references (they route to their
// own container's methods, so their shape is not part of this format) and at
// the first error fn returns.
func Visit(f Format, fn func(Format) error) error {
	if err := fn(f); err != nil {
		return err
	}
	switch t := f.(type) {
	case Option:
		return Visit(t.Inner, fn)
	case Seq:
		return Visit(t.Element, fn)
	case Array:
		return Visit(t.Element, fn)
	case Map:
		if err := Visit(t.Key, fn); err != nil {
			return err
		}
		return Visit(t.Value, fn)
	case Tuple:
		for _, element := range t.Elements {
			if err := Visit(element, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// VisitContainer walks every format reachable from a container definition in
// field declaration order.
func VisitContainer(container ContainerFormat, fn func(Format) error) error {
	switch t := container.(type) {
	case UnitStruct:
		return nil
	case NewTypeStruct:
		return Visit(t.Value, fn)
	case TupleStruct:
		return visitAll(t.Fields, fn)
	case Struct:
		return visitNamed(t.Fields, fn)
	case Enum:
		for _, variant := range t.Variants {
			if err := VisitVariant(variant.Value, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// VisitVariant walks every format reachable from one enum variant.
func VisitVariant(variant VariantFormat, fn func(Format) error) error {
	switch t := variant.(type) {
	case VariantUnit:
		return nil
	case VariantNewType:
		return Visit(t.Value, fn)
	case VariantTuple:
		return visitAll(t.Fields, fn)
	case VariantStruct:
		return visitNamed(t.Fields, fn)
	}
	return nil
}

// Visit walks every format reachable from every container in the registry, in
// registry order.
func (r *Registry) Visit(fn func(Format) error) error {
	for _, name := range r.names {
		if err := VisitContainer(r.containers[name], fn); err != nil {
			return err
		}
	}
	return nil
}

func visitAll(formats []Format, fn func(Format) error) error {
	for _, f := range formats {
		if err := Visit(f, fn); err != nil {
			return err
		}
	}
	return nil
}

func visitNamed(fields []Named, fn func(Format) error) error {
	for _, field := range fields {
		if err := Visit(field.Value, fn); err != nil {
			return err
		}
	}
	return nil
}
