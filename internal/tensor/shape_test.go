package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("NumElements(%v) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate({2,3}) = %v, want nil", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate({2,0}) = nil, want error")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("Validate({-1,3}) = nil, want error")
	}
}

func TestShapeStrides(t *testing.T) {
	got := Shape{2, 3, 4}.Strides()
	want := []int{12, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Strides({2,3,4}) = %v, want %v", got, want)
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Shape
		want    Shape
		needed  bool
		wantErr bool
	}{
		{"equal", Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false, false},
		{"row vector", Shape{3, 1}, Shape{3, 4}, Shape{3, 4}, true, false},
		{"rank expand", Shape{4}, Shape{2, 3, 4}, Shape{2, 3, 4}, true, false},
		{"scalar-like", Shape{1}, Shape{5, 5}, Shape{5, 5}, true, false},
		{"mismatch", Shape{2, 3}, Shape{2, 4}, nil, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, needed, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BroadcastShapes(%v, %v) = %v, want error", tt.a, tt.b, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("shape = %v, want %v", got, tt.want)
			}
			if needed != tt.needed {
				t.Errorf("needed = %v, want %v", needed, tt.needed)
			}
		})
	}
}
