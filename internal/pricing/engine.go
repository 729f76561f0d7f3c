// Package pricing は注文金額の計算エンジン。
// 入力（明細＋割引率）から合計を決める純関数のみで、I/Oも副作用もない。
// 入力の検証（数量・最低注文数など）は呼び出し側（カートusecase）の責務。
package pricing

import "github.com/shopspring/decimal"

var (
	//送料（固定）
	ShippingFee = decimal.RequireFromString("9.90")

	//フランコ閾値。割引後小計がこれ未満なら送料がかかる。
	//割引前ではなく割引後で判定する点に注意（大きい割引を持つ薬局でも、
	//割引後の金額で300€を超えないと送料無料にならない）。
	FrancoThreshold = decimal.NewFromInt(300)

	oneHundred = decimal.NewFromInt(100)
)

// Line は計算に必要な明細情報だけを持つ。
type Line struct {
	UnitPriceHT  decimal.Decimal
	UnitPriceTTC decimal.Decimal
	Quantity     int64
}

// Totals は注文に保存する金額一式。
type Totals struct {
	//割引前合計HT（グロス明細合計、丸めなしの正確な和）
	TotalBeforeDiscount decimal.Decimal

	//割引額（グロス合計×率÷100を小数2桁に丸めたもの）
	DiscountAmount decimal.Decimal

	//割引後小計（送料判定の基準）
	NetSubtotal decimal.Decimal

	ShippingAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// LineTotalHT は明細のグロス合計HT。中間丸めはしない。
func LineTotalHT(l Line) decimal.Decimal {
	return l.UnitPriceHT.Mul(decimal.NewFromInt(l.Quantity))
}

// LineTotalTTC は明細の参考合計TTC。
func LineTotalTTC(l Line) decimal.Decimal {
	return l.UnitPriceTTC.Mul(decimal.NewFromInt(l.Quantity))
}

// Compute は明細と割引率から合計を計算する。
// 同じ入力なら常に同じ結果（冪等）。エラーは返さない。
func Compute(lines []Line, discountRate decimal.Decimal) Totals {
	gross := decimal.Zero
	for _, l := range lines {
		gross = gross.Add(LineTotalHT(l))
	}

	discount := gross.Mul(discountRate).Div(oneHundred).Round(2)
	net := gross.Sub(discount)

	shipping := decimal.Zero
	if net.LessThan(FrancoThreshold) {
		shipping = ShippingFee
	}

	return Totals{
		TotalBeforeDiscount: gross,
		DiscountAmount:      discount,
		NetSubtotal:         net,
		ShippingAmount:      shipping,
		TotalAmount:         net.Add(shipping),
	}
}
