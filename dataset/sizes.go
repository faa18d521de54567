package dataset

// Canonical split names, in rendering order.
const (
	SplitTrain = "train"
	SplitVal   = "val"
	SplitTest  = "test"
)

// Sizes enumerates the recognized dataset splits and their frame counts.
// The original NeRF synthetic layout uses 100/100/200.
type Sizes struct {
	Train int
	Val   int
	Test  int
}

func DefaultSizes() Sizes {
	return Sizes{Train: 100, Val: 100, Test: 200}
}

func (s Sizes) Validate() error {
	if s.Train < 0 || s.Val < 0 || s.Test < 0 || s.Total() == 0 {
		return ErrInvalidSizes
	}
	return nil
}

func (s Sizes) Total() int {
	return s.Train + s.Val + s.Test
}

// Names returns the split names in rendering order.
func (s Sizes) Names() []string {
	return []string{SplitTrain, SplitVal, SplitTest}
}

// A Split is a contiguous slice of the sampled pose list: poses
// [Offset, Offset+Count) belong to it.
type Split struct {
	Name   string
	Offset int
	Count  int
}

// Partition assigns total poses to splits contiguously and in order:
// train first, then val, then test. The pose count must match the
// configured total exactly so that a mismatch surfaces before any
// rendering starts.
func (s Sizes) Partition(total int) ([]Split, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if total != s.Total() {
		return nil, ErrSizeMismatch
	}

	splits := make([]Split, 0, 3)
	offset := 0
	for _, spec := range []struct {
		name  string
		count int
	}{
		{SplitTrain, s.Train},
		{SplitVal, s.Val},
		{SplitTest, s.Test},
	} {
		splits = append(splits, Split{Name: spec.name, Offset: offset, Count: spec.count})
		offset += spec.count
	}

	return splits, nil
}
