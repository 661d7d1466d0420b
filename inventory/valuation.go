package inventory

import "options-maker-go/instrument"

// PriceFn 期权估值函数，由定价层注入。
type PriceFn func(o instrument.Option, u instrument.Underlying) float64

// Valuation 基于最新快照对台账做 mark-to-model 估值。
// 标的按当前估值计价，期权按注入的定价函数计价；
// 快照中找不到对应标的时立即返回错误。
func (p *Position) Valuation(book instrument.Book, price PriceFn) (float64, error) {
	total := 0.0
	for id, qty := range p.UnderlyingQuantities() {
		u, err := book.UnderlyingByID(id)
		if err != nil {
			return 0, err
		}
		total += qty * u.Valuation
	}
	optQty := p.OptionQuantities()
	for _, o := range book.Options {
		qty := optQty[o.ID]
		if qty == 0 {
			continue
		}
		u, err := book.UnderlyingFor(o)
		if err != nil {
			return 0, err
		}
		total += float64(qty) * price(o, u)
	}
	return total, nil
}
