package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterScope = "cardbot/domain/services"

// Metric names
const (
	LedgerTransactionsTotal = "cardbot.ledger.transactions_total"
	LedgerPointsMoved       = "cardbot.ledger.points_moved"
	TradesSettledTotal      = "cardbot.trades.settled_total"
	LotteriesSettledTotal   = "cardbot.lotteries.settled_total"
)

// Label keys
const (
	LabelGuild   = "guild_id"
	LabelType    = "type"
	LabelOutcome = "outcome"
)

// serviceMetrics holds the instruments recorded by the domain services.
// Until a meter provider is installed the global one drops every measurement.
type serviceMetrics struct {
	ledgerTransactions metric.Int64Counter
	ledgerPoints       metric.Int64Counter
	tradesSettled      metric.Int64Counter
	lotteriesSettled   metric.Int64Counter
}

var metrics = newServiceMetrics(otel.Meter(meterScope))

func newServiceMetrics(meter metric.Meter) *serviceMetrics {
	m := &serviceMetrics{}
	// Creation only fails on invalid names and still returns a usable instrument
	var err error
	if m.ledgerTransactions, err = meter.Int64Counter(LedgerTransactionsTotal,
		metric.WithDescription("Total number of balance changes"),
		metric.WithUnit("1"),
	); err != nil {
		otel.Handle(err)
	}
	if m.ledgerPoints, err = meter.Int64Counter(LedgerPointsMoved,
		metric.WithDescription("Absolute points credited or debited"),
		metric.WithUnit("{point}"),
	); err != nil {
		otel.Handle(err)
	}
	if m.tradesSettled, err = meter.Int64Counter(TradesSettledTotal,
		metric.WithDescription("Total number of accepted trades"),
		metric.WithUnit("1"),
	); err != nil {
		otel.Handle(err)
	}
	if m.lotteriesSettled, err = meter.Int64Counter(LotteriesSettledTotal,
		metric.WithDescription("Total number of lotteries closed by a win or an admin"),
		metric.WithUnit("1"),
	); err != nil {
		otel.Handle(err)
	}
	return m
}

func (m *serviceMetrics) recordLedgerTransaction(ctx context.Context, guildID int64, txType string, change int64) {
	if change < 0 {
		change = -change
	}
	attrs := metric.WithAttributes(
		attribute.Int64(LabelGuild, guildID),
		attribute.String(LabelType, txType),
	)
	m.ledgerTransactions.Add(ctx, 1, attrs)
	m.ledgerPoints.Add(ctx, change, attrs)
}

func (m *serviceMetrics) recordTradeSettled(ctx context.Context, guildID int64) {
	m.tradesSettled.Add(ctx, 1, metric.WithAttributes(attribute.Int64(LabelGuild, guildID)))
}

func (m *serviceMetrics) recordLotterySettled(ctx context.Context, guildID int64, prizeType, outcome string) {
	m.lotteriesSettled.Add(ctx, 1, metric.WithAttributes(
		attribute.Int64(LabelGuild, guildID),
		attribute.String(LabelType, prizeType),
		attribute.String(LabelOutcome, outcome),
	))
}
