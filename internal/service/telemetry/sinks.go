package telemetry

import (
	"context"

	telemetryclient "github.com/mamadbah2/inumeshi/pkg/clients/telemetry"

	"github.com/mamadbah2/inumeshi/internal/repository/mongodb"
	"github.com/mamadbah2/inumeshi/internal/repository/sheets"
)

// Sink receives calculation records. Implementations must honour ctx.
type Sink interface {
	Name() string
	Send(ctx context.Context, rec Record) error
}

type webhookSink struct {
	client telemetryclient.Client
}

// NewWebhookSink posts records to the HTTP collector.
func NewWebhookSink(client telemetryclient.Client) Sink {
	return &webhookSink{client: client}
}

func (s *webhookSink) Name() string { return "webhook" }

func (s *webhookSink) Send(ctx context.Context, rec Record) error {
	return s.client.PostCalculation(ctx, rec)
}

type sheetsSink struct {
	repo sheets.Repository
}

// NewSheetsSink appends one spreadsheet row per record.
func NewSheetsSink(repo sheets.Repository) Sink {
	return &sheetsSink{repo: repo}
}

func (s *sheetsSink) Name() string { return "sheets" }

func (s *sheetsSink) Send(ctx context.Context, rec Record) error {
	return s.repo.WriteRow(ctx, sheets.CalculationsRange, sheets.CalculationRow(rec))
}

type archiveSink struct {
	repo mongodb.Repository
}

// NewArchiveSink stores records in MongoDB.
func NewArchiveSink(repo mongodb.Repository) Sink {
	return &archiveSink{repo: repo}
}

func (s *archiveSink) Name() string { return "mongodb" }

func (s *archiveSink) Send(ctx context.Context, rec Record) error {
	return s.repo.SaveCalculation(ctx, rec)
}
