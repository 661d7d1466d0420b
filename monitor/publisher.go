package monitor

// QuoteEvent 一次双边报价。
type QuoteEvent struct {
	Step   int     `json:"step"`
	Option string  `json:"option"`
	Bid    float64 `json:"bid"`
	Offer  float64 `json:"offer"`
}

// MarkEvent 一步推进后的标的估值。
type MarkEvent struct {
	Step       int     `json:"step"`
	Underlying string  `json:"underlying"`
	Valuation  float64 `json:"valuation"`
}

// Publisher 一个轻量事件分发器，订阅方消费不及时则丢弃。
type Publisher struct {
	quoteSubs []chan QuoteEvent
	markSubs  []chan MarkEvent
}

func NewPublisher() *Publisher {
	return &Publisher{
		quoteSubs: make([]chan QuoteEvent, 0),
		markSubs:  make([]chan MarkEvent, 0),
	}
}

func (p *Publisher) SubscribeQuotes() <-chan QuoteEvent {
	ch := make(chan QuoteEvent, 16)
	p.quoteSubs = append(p.quoteSubs, ch)
	return ch
}

func (p *Publisher) SubscribeMarks() <-chan MarkEvent {
	ch := make(chan MarkEvent, 16)
	p.markSubs = append(p.markSubs, ch)
	return ch
}

func (p *Publisher) PublishQuote(e QuoteEvent) {
	for _, ch := range p.quoteSubs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (p *Publisher) PublishMark(e MarkEvent) {
	for _, ch := range p.markSubs {
		select {
		case ch <- e:
		default:
		}
	}
}
