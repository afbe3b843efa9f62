package htable

import "testing"

func TestCost_Add(t *testing.T) {
	tests := []struct {
		name string
		c, k Cost
		want Cost
	}{
		{"finite", 3, 4, 7},
		{"either infinite", Inf, 5, Inf},
		{"both infinite", Inf, Inf, Inf},
		{"sum reaches inf", Inf - 1, 2, Inf},
		{"zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Add(tt.k); got != tt.want {
				t.Errorf("%v.Add(%v) = %v, want %v", tt.c, tt.k, got, tt.want)
			}
		})
	}
}

func TestCost_Max(t *testing.T) {
	if got := Cost(3).Max(5); got != 5 {
		t.Errorf("Max = %v, want 5", got)
	}
	if got := Cost(5).Max(3); got != 5 {
		t.Errorf("Max = %v, want 5", got)
	}
}

func TestCost_AddNeverWraps(t *testing.T) {
	c := Inf
	for i := 0; i < 100; i++ {
		c = c.Add(Inf)
	}
	if c != Inf {
		t.Errorf("repeated Add(Inf) = %v, want Inf", c)
	}
}
