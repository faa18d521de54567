package dataset

import (
	"testing"
)

func TestPartition(t *testing.T) {
	sizes := Sizes{Train: 3, Val: 2, Test: 1}

	splits, err := sizes.Partition(6)
	if err != nil {
		t.Fatal(err)
	}

	exp := []Split{
		{Name: SplitTrain, Offset: 0, Count: 3},
		{Name: SplitVal, Offset: 3, Count: 2},
		{Name: SplitTest, Offset: 5, Count: 1},
	}
	if len(splits) != len(exp) {
		t.Fatalf("expected %d splits; got %d", len(exp), len(splits))
	}
	for i, split := range splits {
		if split != exp[i] {
			t.Errorf("[split %d] expected %+v; got %+v", i, exp[i], split)
		}
	}

	// Exhaustive and non-overlapping coverage of the pose list.
	covered := 0
	for _, split := range splits {
		if split.Offset != covered {
			t.Fatalf("expected split %q to start at pose %d; got %d", split.Name, covered, split.Offset)
		}
		covered += split.Count
	}
	if covered != 6 {
		t.Fatalf("expected splits to cover all 6 poses; got %d", covered)
	}
}

func TestPartitionSizeMismatch(t *testing.T) {
	sizes := Sizes{Train: 3, Val: 2, Test: 1}

	for _, total := range []int{0, 5, 7} {
		if _, err := sizes.Partition(total); err != ErrSizeMismatch {
			t.Errorf("expected ErrSizeMismatch for total %d; got %v", total, err)
		}
	}
}

func TestSizesValidate(t *testing.T) {
	specs := []struct {
		sizes  Sizes
		expErr error
	}{
		{Sizes{Train: 100, Val: 100, Test: 200}, nil},
		{Sizes{Train: 1}, nil},
		{Sizes{}, ErrInvalidSizes},
		{Sizes{Train: -1, Val: 2, Test: 2}, ErrInvalidSizes},
	}

	for index, spec := range specs {
		if err := spec.sizes.Validate(); err != spec.expErr {
			t.Errorf("[spec %d] expected error %v; got %v", index, spec.expErr, err)
		}
	}
}

func TestDefaultSizes(t *testing.T) {
	if total := DefaultSizes().Total(); total != 400 {
		t.Fatalf("expected default total of 400 frames; got %d", total)
	}
}
