// Package metrics provides Prometheus metrics for the options maker
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// 报价指标
	QuotesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "om_quotes_generated_total",
		Help: "生成报价总数",
	}, []string{"side"})
	QuoteFills = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "om_quote_fills_total",
		Help: "报价被动成交总数",
	}, []string{"side"})
	QuoteSpread = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "om_quote_spread",
		Help: "最近一次报价的价差",
	})
	FairValue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "om_fair_value",
		Help: "最近一次定价的公允价值",
	})

	// 对冲指标
	HedgeTrades = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "om_hedge_trades_total",
		Help: "对冲成交总数",
	}, []string{"side"})
	NetDelta = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "om_net_delta",
		Help: "对冲前的净 delta 敞口",
	}, []string{"underlying"})

	// 行情/仓位指标
	UnderlyingValuation = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "om_underlying_valuation",
		Help: "标的当前估值",
	}, []string{"underlying"})
	UnderlyingPosition = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "om_underlying_position",
		Help: "标的净持仓",
	}, []string{"underlying"})
	BookValuation = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "om_book_valuation",
		Help: "台账 mark-to-model 估值",
	})
	SimSteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "om_sim_steps_total",
		Help: "模拟推进步数",
	})
)

// IncrementQuotesGenerated 记录一次报价。
func IncrementQuotesGenerated(side string) {
	QuotesGenerated.WithLabelValues(side).Inc()
}

// IncrementFills 记录一次被动成交。
func IncrementFills(side string) {
	QuoteFills.WithLabelValues(side).Inc()
}

// UpdateQuoteMetrics 更新最近一次报价的公允价值与价差。
func UpdateQuoteMetrics(fair, spread float64) {
	FairValue.Set(fair)
	QuoteSpread.Set(spread)
}

// UpdateHedgeMetrics 更新某标的对冲前净敞口。
func UpdateHedgeMetrics(underlying string, netDelta float64) {
	NetDelta.WithLabelValues(underlying).Set(netDelta)
}

// RecordHedgeTrade 记录一次对冲成交。
func RecordHedgeTrade(side string) {
	HedgeTrades.WithLabelValues(side).Inc()
}

// UpdateMarketMetrics 更新标的估值与净持仓。
func UpdateMarketMetrics(underlying string, valuation, position float64) {
	UnderlyingValuation.WithLabelValues(underlying).Set(valuation)
	UnderlyingPosition.WithLabelValues(underlying).Set(position)
}

// StartMetricsServer 启动Prometheus指标服务器
func StartMetricsServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}
