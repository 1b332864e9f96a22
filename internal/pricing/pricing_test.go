package pricing

import (
	"math"
	"testing"
)

type line float64

func (l line) GrossPrice() float64 { return float64(l) }

func TestCompute_OrderViewScenario(t *testing.T) {
	b := Compute([]line{50, 30}, OrderViewRate)

	if b.Total != 80 {
		t.Errorf("expected total 80, got %v", b.Total)
	}

	d := b.Display()
	if d.Total != "80.00" || d.Subtotal != "70.18" || d.Tax != "9.82" {
		t.Errorf("unexpected display %+v", d)
	}
	if d.Rate != "14%" {
		t.Errorf("expected rate 14%%, got %q", d.Rate)
	}
}

func TestCompute_CheckoutScenario(t *testing.T) {
	d := Compute([]line{50, 30}, CheckoutRate).Display()

	// 80 / 1.16 = 68.9655..., 80 * 16/116 = 11.0344...
	if d.Subtotal != "68.97" || d.Tax != "11.03" || d.Total != "80.00" {
		t.Errorf("unexpected display %+v", d)
	}
}

func TestCompute_EmptyCart(t *testing.T) {
	b := Compute([]line{}, OrderViewRate)
	if b.Total != 0 || b.Subtotal != 0 || b.Tax != 0 {
		t.Errorf("expected zero breakdown, got %+v", b)
	}
}

func TestDecompose_SubtotalPlusTaxIsTotal(t *testing.T) {
	totals := []float64{0, 0.01, 1, 9.99, 55, 80, 123.45, 999.99, 1e6}

	for _, rate := range []float64{OrderViewRate, CheckoutRate} {
		for _, total := range totals {
			b := Decompose(total, rate)
			if diff := math.Abs(b.Subtotal + b.Tax - b.Total); diff > 1e-9*math.Max(1, total) {
				t.Errorf("rate %v total %v: subtotal+tax off by %g", rate, total, diff)
			}
			if b.Subtotal < 0 || b.Tax < 0 {
				t.Errorf("rate %v total %v: negative component %+v", rate, total, b)
			}
		}
	}
}

func TestDecompose_KeepsFullPrecision(t *testing.T) {
	b := Decompose(80, OrderViewRate)
	if b.Subtotal == 70.18 {
		t.Error("stored subtotal must not be rounded")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{70, "EGP 70.00"},
		{9.824561403508772, "EGP 9.82"},
		{0.005, "EGP 0.01"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
