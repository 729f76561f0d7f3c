package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// 仕様どおりの代表例：
// 割引率21%、50.00×5 + 20.00×3 = 310.00
// 割引 65.10 → 小計 244.90 → 300未満なので送料9.90 → 合計 254.80
func TestCompute_WorkedExample(t *testing.T) {
	lines := []Line{
		{UnitPriceHT: d("50.00"), UnitPriceTTC: d("60.00"), Quantity: 5},
		{UnitPriceHT: d("20.00"), UnitPriceTTC: d("24.00"), Quantity: 3},
	}

	got := Compute(lines, d("21"))

	assert.True(t, got.TotalBeforeDiscount.Equal(d("310.00")), "gross=%s", got.TotalBeforeDiscount)
	assert.True(t, got.DiscountAmount.Equal(d("65.10")), "discount=%s", got.DiscountAmount)
	assert.True(t, got.NetSubtotal.Equal(d("244.90")), "net=%s", got.NetSubtotal)
	assert.True(t, got.ShippingAmount.Equal(d("9.90")), "shipping=%s", got.ShippingAmount)
	assert.True(t, got.TotalAmount.Equal(d("254.80")), "total=%s", got.TotalAmount)
}

// 割引後小計がちょうど300.00なら送料無料、299.99なら送料あり。
func TestCompute_FrancoThresholdBoundary(t *testing.T) {
	tests := []struct {
		name         string
		unitPrice    string
		wantShipping string
		wantTotal    string
	}{
		{"just below threshold", "299.99", "9.90", "309.89"},
		{"exactly at threshold", "300.00", "0", "300.00"},
		{"above threshold", "300.01", "0", "300.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []Line{{UnitPriceHT: d(tt.unitPrice), Quantity: 1}}
			got := Compute(lines, decimal.Zero)

			assert.True(t, got.ShippingAmount.Equal(d(tt.wantShipping)), "shipping=%s", got.ShippingAmount)
			assert.True(t, got.TotalAmount.Equal(d(tt.wantTotal)), "total=%s", got.TotalAmount)
		})
	}
}

// 閾値判定は割引後で行う。グロス310でも21%引き後は244.90なので送料がかかる。
func TestCompute_ThresholdUsesNetSubtotal(t *testing.T) {
	lines := []Line{{UnitPriceHT: d("310.00"), Quantity: 1}}

	withDiscount := Compute(lines, d("21"))
	withoutDiscount := Compute(lines, decimal.Zero)

	assert.True(t, withDiscount.ShippingAmount.Equal(d("9.90")))
	assert.True(t, withoutDiscount.ShippingAmount.Equal(decimal.Zero))
}

// 同じ入力なら結果は常に同一（冪等）。
func TestCompute_Idempotent(t *testing.T) {
	lines := []Line{
		{UnitPriceHT: d("12.35"), Quantity: 7},
		{UnitPriceHT: d("3.33"), Quantity: 13},
		{UnitPriceHT: d("0.05"), Quantity: 999},
	}
	rate := d("12.5")

	first := Compute(lines, rate)
	second := Compute(lines, rate)

	assert.Equal(t, first.TotalBeforeDiscount.String(), second.TotalBeforeDiscount.String())
	assert.Equal(t, first.DiscountAmount.String(), second.DiscountAmount.String())
	assert.Equal(t, first.NetSubtotal.String(), second.NetSubtotal.String())
	assert.Equal(t, first.ShippingAmount.String(), second.ShippingAmount.String())
	assert.Equal(t, first.TotalAmount.String(), second.TotalAmount.String())
}

// 不変条件: total == (gross - discount) + shipping
func TestCompute_TotalInvariant(t *testing.T) {
	cases := [][]Line{
		{{UnitPriceHT: d("19.99"), Quantity: 3}},
		{{UnitPriceHT: d("50.00"), Quantity: 5}, {UnitPriceHT: d("20.00"), Quantity: 3}},
		{{UnitPriceHT: d("1234.56"), Quantity: 2}},
	}
	rates := []string{"0", "5", "21", "33.33", "100"}

	for _, lines := range cases {
		for _, r := range rates {
			got := Compute(lines, d(r))
			want := got.TotalBeforeDiscount.Sub(got.DiscountAmount).Add(got.ShippingAmount)
			assert.True(t, got.TotalAmount.Equal(want),
				"rate=%s total=%s want=%s", r, got.TotalAmount, want)
		}
	}
}

// 割引額は2桁丸め。100.05の10%は10.005 → 10.01（half up）。
func TestCompute_DiscountRounding(t *testing.T) {
	lines := []Line{{UnitPriceHT: d("100.05"), Quantity: 1}}

	got := Compute(lines, d("10"))

	assert.True(t, got.DiscountAmount.Equal(d("10.01")), "discount=%s", got.DiscountAmount)
	assert.True(t, got.NetSubtotal.Equal(d("90.04")), "net=%s", got.NetSubtotal)
}

// 空の明細でも計算自体は成立する（0 < 300なので送料はかかる）。
// 空カートの提出はusecase側で拒否されるので、この結果が保存されることはない。
func TestCompute_EmptyLines(t *testing.T) {
	got := Compute(nil, d("21"))

	assert.True(t, got.TotalBeforeDiscount.Equal(decimal.Zero))
	assert.True(t, got.DiscountAmount.Equal(decimal.Zero))
	assert.True(t, got.ShippingAmount.Equal(ShippingFee))
	assert.True(t, got.TotalAmount.Equal(ShippingFee))
}

// 明細合計は unitPrice × quantity ぴったり（中間丸めなし）。
func TestLineTotalHT(t *testing.T) {
	l := Line{UnitPriceHT: d("2.95"), Quantity: 6}
	assert.True(t, LineTotalHT(l).Equal(d("17.70")))
}
