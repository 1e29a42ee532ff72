package edi

// Element is one data element of a segment. Simple elements carry a single
// component; composite elements carry several. X12 element repetition is
// stored in Repeats, one entry per occurrence after the first.
type Element struct {
	Components []string
	Repeats    []Element
}

// Value returns the scalar value of a simple element (the first component
// of a composite one).
func (e Element) Value() string {
	if len(e.Components) == 0 {
		return ""
	}
	return e.Components[0]
}

// Component returns the n-th component, 1-based, or "" when absent.
func (e Element) Component(n int) string {
	if n < 1 || n > len(e.Components) {
		return ""
	}
	return e.Components[n-1]
}

// Segment is one delimited data segment, e.g. a PO1 line or the ISA header.
type Segment struct {
	ID       string
	Elements []Element
	Pos      Position
}

// Elem returns the value of the n-th element using EDI's 1-based numbering
// (BEG03 is Elem(3)). Missing elements read as "".
func (s *Segment) Elem(n int) string {
	if s == nil || n < 1 || n > len(s.Elements) {
		return ""
	}
	return s.Elements[n-1].Value()
}

// Comp returns component c of element n, both 1-based.
func (s *Segment) Comp(n, c int) string {
	if s == nil || n < 1 || n > len(s.Elements) {
		return ""
	}
	return s.Elements[n-1].Component(c)
}

// NewSegment builds a segment from simple element values. Useful for
// envelope construction and outbound mapping; composite elements can be
// set on Elements directly.
func NewSegment(id string, values ...string) *Segment {
	s := &Segment{ID: id, Elements: make([]Element, len(values))}
	for i, v := range values {
		s.Elements[i] = Element{Components: []string{v}}
	}
	return s
}

// TransactionSet is one business document: an X12 ST/SE transaction set or
// an EDIFACT UNH/UNT message. Segments holds the body only; the envelope
// pair lives in Header and Trailer.
type TransactionSet struct {
	Header   *Segment
	Trailer  *Segment
	Segments []*Segment
}

// Find returns the first body segment with the given identifier, or nil.
func (t *TransactionSet) Find(id string) *Segment {
	for _, s := range t.Segments {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FindAll returns all body segments with the given identifier in order.
func (t *TransactionSet) FindAll(id string) []*Segment {
	var out []*Segment
	for _, s := range t.Segments {
		if s.ID == id {
			out = append(out, s)
		}
	}
	return out
}

// FunctionalGroup is an X12 GS/GE functional group or an EDIFACT UNG/UNE
// message group.
type FunctionalGroup struct {
	Header       *Segment
	Trailer      *Segment
	Transactions []*TransactionSet
}

// Interchange is the outermost envelope. Transactions holds messages that
// sit directly under the interchange (EDIFACT permits this); grouped
// documents live under Groups. Both may be empty on a partial tree.
type Interchange struct {
	Standard Standard
	Delims   Delimiters
	Header   *Segment
	Trailer  *Segment
	Groups   []*FunctionalGroup
	// Transactions are ungrouped messages directly under the interchange.
	Transactions []*TransactionSet
}

// ControlNumber returns the interchange control reference from the header.
func (ic *Interchange) ControlNumber() string {
	d := dialectFor(ic.Standard)
	return ic.Header.Elem(d.icRefHeader)
}

// AllTransactions returns every transaction set in document order,
// grouped or not.
func (ic *Interchange) AllTransactions() []*TransactionSet {
	out := make([]*TransactionSet, 0, len(ic.Transactions))
	for _, g := range ic.Groups {
		out = append(out, g.Transactions...)
	}
	out = append(out, ic.Transactions...)
	return out
}
