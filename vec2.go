package sortedvec

// Vec2 is a two-level container of rows stored by value. Rows are grouped
// into partitions by PrimaryKey() and ordered by SecondaryKey() within their
// partition. Len is O(1).
//
// The zero value is not usable, create instances with New2 or New2WithConfig.
type Vec2[V TwoKeyed] struct {
	twoLevel[V]
}

func primaryOfValue[V TwoKeyed](item V) string   { return item.PrimaryKey() }
func secondaryOfValue[V TwoKeyed](item V) string { return item.SecondaryKey() }

// New2 creates an empty two-level container with default configuration.
func New2[V TwoKeyed]() *Vec2[V] {
	return &Vec2[V]{
		twoLevel: makeTwoLevel(primaryOfValue[V], secondaryOfValue[V], Config{}),
	}
}

// New2WithConfig creates an empty two-level container.
func New2WithConfig[V TwoKeyed](cfg Config) (*Vec2[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Vec2[V]{
		twoLevel: makeTwoLevel(primaryOfValue[V], secondaryOfValue[V], cfg),
	}, nil
}

// Check validates the structural invariants of the container: partitions are
// non-empty and ordered, rows carry their partition's primary key and are
// ordered, and the row counter is consistent.
func (v *Vec2[V]) Check() error {
	return v.check()
}

// ArcVec2 is a two-level container of shared rows. It stores pointers, so the
// same row may be held by other containers at the same time.
type ArcVec2[V TwoKeyed] struct {
	twoLevel[*V]
}

func primaryOfShared[V TwoKeyed](item *V) string {
	assert(item != nil, "sortedvec: nil entry in shared container")
	return (*item).PrimaryKey()
}

func secondaryOfShared[V TwoKeyed](item *V) string {
	assert(item != nil, "sortedvec: nil entry in shared container")
	return (*item).SecondaryKey()
}

// NewArc2 creates an empty shared two-level container with default
// configuration.
func NewArc2[V TwoKeyed]() *ArcVec2[V] {
	return &ArcVec2[V]{
		twoLevel: makeTwoLevel(primaryOfShared[V], secondaryOfShared[V], Config{}),
	}
}

// NewArc2WithConfig creates an empty shared two-level container.
func NewArc2WithConfig[V TwoKeyed](cfg Config) (*ArcVec2[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &ArcVec2[V]{
		twoLevel: makeTwoLevel(primaryOfShared[V], secondaryOfShared[V], cfg),
	}, nil
}

// Check validates the structural invariants of the container, see Vec2.Check.
func (v *ArcVec2[V]) Check() error {
	for _, p := range v.parts.items {
		if p == nil {
			break // reported by check
		}
		if err := checkShared(p.rows.items); err != nil {
			return err
		}
	}
	return v.check()
}
