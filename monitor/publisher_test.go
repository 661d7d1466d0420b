package monitor

import "testing"

func TestPublisherFanOut(t *testing.T) {
	p := NewPublisher()
	quotes := p.SubscribeQuotes()
	marks := p.SubscribeMarks()

	p.PublishQuote(QuoteEvent{Step: 1, Option: "1 (2s T 100C)", Bid: 0.4, Offer: 0.6})
	p.PublishMark(MarkEvent{Step: 1, Underlying: "T", Valuation: 101})

	q := <-quotes
	if q.Bid != 0.4 || q.Offer != 0.6 {
		t.Fatalf("unexpected quote event: %+v", q)
	}
	m := <-marks
	if m.Valuation != 101 {
		t.Fatalf("unexpected mark event: %+v", m)
	}
}

func TestPublisherDropsWhenSubscriberSlow(t *testing.T) {
	p := NewPublisher()
	_ = p.SubscribeQuotes()
	// 订阅方不消费时发布不得阻塞
	for i := 0; i < 100; i++ {
		p.PublishQuote(QuoteEvent{Step: i})
	}
}
